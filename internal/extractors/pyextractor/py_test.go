package pyextractor

import (
	"errors"
	"strings"
	"testing"

	"srcfacts/internal/config"
	"srcfacts/internal/facts"
)

// --- helpers ---

func extract(t *testing.T, src string) facts.FileFact {
	t.Helper()
	ext := New(config.Default())
	fact, err := ext.Extract("app.py", []byte(src))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	return fact
}

func pyStructures(t *testing.T, f facts.FileFact) *Structures {
	t.Helper()
	s, ok := f.Structures.(*Structures)
	if !ok {
		t.Fatalf("Structures has type %T", f.Structures)
	}
	return s
}

func pySignals(t *testing.T, f facts.FileFact) *Signals {
	t.Helper()
	s, ok := f.Signals.(*Signals)
	if !ok {
		t.Fatalf("Signals has type %T", f.Signals)
	}
	return s
}

// --- imports ---

func TestImportResolution(t *testing.T) {
	src := `import os
import numpy as np
from flask import Flask, request as req
from . import helpers
import os
`
	sg := pySignals(t, extract(t, src))

	want := []string{"os", "numpy", "flask", "."}
	if len(sg.Imports) != len(want) {
		t.Fatalf("imports = %v, want %v", sg.Imports, want)
	}
	for i, imp := range want {
		if sg.Imports[i] != imp {
			t.Errorf("imports[%d] = %q, want %q", i, sg.Imports[i], imp)
		}
	}
}

func TestImportAliasMapFeedsCallClassification(t *testing.T) {
	src := `import requests as rq

def fetch(url):
    return rq.get(url)
`
	sg := pySignals(t, extract(t, src))

	if len(sg.ExternalUsage) != 1 || sg.ExternalUsage[0] != facts.UsageNetwork {
		t.Fatalf("external_usage = %v, want [network]", sg.ExternalUsage)
	}
	if len(sg.CallsSample) != 1 {
		t.Fatalf("calls_sample = %v, want one entry", sg.CallsSample)
	}
	if sg.CallsSample[0].Call != "rq.get" {
		t.Errorf("call = %q, want rq.get", sg.CallsSample[0].Call)
	}
}

func TestAliasResolutionIdempotent(t *testing.T) {
	set := newImportSet()
	set.addAlias("np", "numpy")

	first, ok1 := set.Resolve("np")
	second, ok2 := set.Resolve("np")
	if !ok1 || !ok2 || first != second || first != "numpy" {
		t.Errorf("Resolve not idempotent: %q/%v then %q/%v", first, ok1, second, ok2)
	}
}

// --- declarations ---

func TestClassExtraction(t *testing.T) {
	src := `class Worker(Base, mixins.Retry):
    """Processes queued jobs.

    Longer description that should not appear in the summary.
    """

    def run(self, job: str) -> bool:
        """Run one job."""
        return True

    def _stop(self):
        pass
`
	st := pyStructures(t, extract(t, src))

	if len(st.Classes) != 1 {
		t.Fatalf("classes = %d, want 1", len(st.Classes))
	}
	cls := st.Classes[0]
	if cls.Name != "Worker" {
		t.Errorf("name = %q", cls.Name)
	}
	if len(cls.Bases) != 2 || cls.Bases[0] != "Base" || cls.Bases[1] != "mixins.Retry" {
		t.Errorf("bases = %v", cls.Bases)
	}
	if cls.Doc != "Processes queued jobs." {
		t.Errorf("doc = %q", cls.Doc)
	}
	if len(cls.Methods) != 2 {
		t.Fatalf("methods = %v", cls.Methods)
	}
	if cls.Methods[0].Name != "run" || cls.Methods[0].Doc != "Run one job." {
		t.Errorf("method[0] = %+v", cls.Methods[0])
	}
}

func TestSignatureRendering(t *testing.T) {
	src := `def handler(event, retries: int = 3, *args, **kwargs) -> dict:
    pass

@cached
def decorated(x):
    pass
`
	st := pyStructures(t, extract(t, src))

	if len(st.Functions) != 2 {
		t.Fatalf("functions = %v", st.Functions)
	}
	got := st.Functions[0].Signature
	want := "(event, retries: int, *args, **kwargs) -> dict"
	if got != want {
		t.Errorf("signature = %q, want %q", got, want)
	}
	if st.Functions[1].Name != "decorated" {
		t.Errorf("decorated function not unwrapped: %+v", st.Functions[1])
	}
}

func TestGlobals(t *testing.T) {
	src := `VERSION = "1.0"
_private = 1
retries = 3
`
	st := pyStructures(t, extract(t, src))

	if len(st.Globals) != 2 || st.Globals[0] != "VERSION" || st.Globals[1] != "retries" {
		t.Errorf("globals = %v", st.Globals)
	}
}

// --- entry point ---

func TestEntryPointDetection(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want bool
	}{
		{"guard", "if __name__ == \"__main__\":\n    main()\n", true},
		{"guard single quotes", "if __name__ == '__main__':\n    main()\n", true},
		{"reversed operands", "if '__main__' == __name__:\n    main()\n", true},
		{"no guard", "def main():\n    pass\n", false},
		{"different comparison", "if name == 'main':\n    pass\n", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sg := pySignals(t, extract(t, tc.src))
			if sg.EntryPoint != tc.want {
				t.Errorf("entry_point = %v, want %v", sg.EntryPoint, tc.want)
			}
		})
	}
}

// --- docstrings ---

func TestModuleDocEvidence(t *testing.T) {
	src := `"""Queue worker utilities."""

def run():
    pass
`
	fact := extract(t, src)
	sg := pySignals(t, fact)

	if sg.ModuleDoc != "Queue worker utilities." {
		t.Errorf("module_doc = %q", sg.ModuleDoc)
	}
	if sg.ModuleDocLine != 1 {
		t.Errorf("module_doc_lineno = %d", sg.ModuleDocLine)
	}

	found := false
	for _, ev := range fact.Evidence {
		if ev.SignalType == "module_docstring" && ev.Snippet == sg.ModuleDoc {
			found = true
		}
	}
	if !found {
		t.Errorf("missing module_docstring evidence: %+v", fact.Evidence)
	}
}

func TestDocTruncation(t *testing.T) {
	long := strings.Repeat("word ", 60)
	src := "\"\"\"" + long + "\"\"\"\n"
	sg := pySignals(t, extract(t, src))

	if len(sg.ModuleDoc) > 160 {
		t.Errorf("module_doc not truncated: %d chars", len(sg.ModuleDoc))
	}
	if !strings.HasSuffix(sg.ModuleDoc, "...") {
		t.Errorf("module_doc missing ellipsis: %q", sg.ModuleDoc)
	}
}

// --- call classification ---

func TestCallClassification(t *testing.T) {
	src := `import requests
import sqlalchemy
import subprocess
import logging

log = logging.getLogger(__name__)

def work():
    print("start")
    log.info("working")
    requests.post("http://x")
    sqlalchemy.create_engine("sqlite://")
    subprocess.run(["ls"])
    data = open("f.txt")
`
	sg := pySignals(t, extract(t, src))

	want := []string{facts.UsageDatabase, facts.UsageIO, facts.UsageNetwork, facts.UsageSubprocess}
	if len(sg.ExternalUsage) != len(want) {
		t.Fatalf("external_usage = %v, want %v", sg.ExternalUsage, want)
	}
	for i, cat := range want {
		if sg.ExternalUsage[i] != cat {
			t.Errorf("external_usage[%d] = %q, want %q", i, sg.ExternalUsage[i], cat)
		}
	}

	for _, cs := range sg.CallsSample {
		root := strings.SplitN(cs.Call, ".", 2)[0]
		if root == "print" || root == "logging" {
			t.Errorf("noise call recorded: %+v", cs)
		}
	}
}

// --- error policy ---

func TestParseFailure(t *testing.T) {
	ext := New(config.Default())
	_, err := ext.Extract("broken.py", []byte("def broken(:\n"))
	if !errors.Is(err, facts.ErrParseFailure) {
		t.Fatalf("err = %v, want ErrParseFailure", err)
	}
}

func TestEmptyFile(t *testing.T) {
	fact := extract(t, "")
	st := pyStructures(t, fact)
	sg := pySignals(t, fact)

	classes, functions := st.DeclCounts()
	if classes != 0 || functions != 0 {
		t.Errorf("decl counts = %d, %d", classes, functions)
	}
	if len(sg.Imports) != 0 || sg.EntryPoint {
		t.Errorf("signals = %+v", sg)
	}
}

// --- framework tags ---

func TestFrameworkTags(t *testing.T) {
	sg := pySignals(t, extract(t, "import flask\n"))
	tags := sg.FrameworkTags()
	if len(tags) != 1 || tags[0] != "flask" {
		t.Errorf("framework tags = %v", tags)
	}
}
