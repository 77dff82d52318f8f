package pyextractor

// Structures holds the declarations found in a Python file.
type Structures struct {
	Classes   []Class  `json:"classes"`
	Functions []Func   `json:"functions"`
	Globals   []string `json:"globals"`
}

// Class is a class definition with its bases, doc summary, and methods.
type Class struct {
	Name    string   `json:"name"`
	Line    int      `json:"lineno"`
	Bases   []string `json:"bases"`
	Doc     string   `json:"doc,omitempty"`
	Methods []Func   `json:"methods"`
}

// Func is a function or method with its inferred signature string.
type Func struct {
	Name      string `json:"name"`
	Line      int    `json:"lineno"`
	Signature string `json:"signature"`
	Doc       string `json:"doc,omitempty"`
}

// DeclCounts returns the number of classes and top-level functions.
func (s *Structures) DeclCounts() (classes, functions int) {
	return len(s.Classes), len(s.Functions)
}

// FunctionNames returns the names of the top-level functions.
func (s *Structures) FunctionNames() []string {
	names := make([]string, 0, len(s.Functions))
	for _, f := range s.Functions {
		names = append(names, f.Name)
	}
	return names
}

// CallSample is one recorded call site kept as evidence.
type CallSample struct {
	Call   string `json:"call"`
	Line   int    `json:"lineno"`
	Sample string `json:"sample"`
}

// Signals holds the behavioral evidence found in a Python file.
type Signals struct {
	Imports       []string     `json:"imports"`
	EntryPoint    bool         `json:"entry_point"`
	ExternalUsage []string     `json:"external_usage"`
	CallsSample   []CallSample `json:"calls_sample"`
	ModuleDoc     string       `json:"module_doc,omitempty"`
	ModuleDocLine int          `json:"module_doc_lineno,omitempty"`
}

// ImportList returns the deduplicated import roots in source order.
func (s *Signals) ImportList() []string { return s.Imports }

// IsEntryPoint reports whether the file has a __main__ guard.
func (s *Signals) IsEntryPoint() bool { return s.EntryPoint }

// UsageCategories returns the external-usage categories observed.
func (s *Signals) UsageCategories() []string { return s.ExternalUsage }

// Python web frameworks surfaced as module capabilities.
var frameworkImports = map[string]string{
	"flask":   "flask",
	"django":  "django",
	"fastapi": "fastapi",
	"tornado": "tornado",
}

// FrameworkTags names web frameworks the file imports.
func (s *Signals) FrameworkTags() []string {
	var tags []string
	for _, imp := range s.Imports {
		if tag, ok := frameworkImports[imp]; ok {
			tags = append(tags, tag)
		}
	}
	return tags
}
