package javaextractor

import "testing"

func TestJavaExtraction(t *testing.T) {
	src := `import java.util.List;
import com.example.service.Handler;

public class Main {
    public static void main(String[] args) {
        run();
    }

    private void run() {}
}
`
	fact, err := New().Extract("Main.java", []byte(src))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	st := fact.Structures.(*JavaStructures)
	if len(st.Classes) != 1 || st.Classes[0] != "Main" {
		t.Errorf("classes = %v", st.Classes)
	}
	// "public static void main" is flagged through the entry-point signal,
	// not the method list (the modifier regex takes a single type token).
	if len(st.Methods) != 1 || st.Methods[0] != "run" {
		t.Errorf("methods = %v", st.Methods)
	}

	sg := fact.Signals.(*JavaSignals)
	if !sg.IsEntryPoint() {
		t.Error("entry_point = false")
	}
	if len(sg.Imports) != 2 || sg.Imports[0] != "java.util.List" {
		t.Errorf("imports = %v", sg.Imports)
	}
}

func TestJavaWithoutMain(t *testing.T) {
	fact, err := New().Extract("Util.java", []byte("class Util {}\n"))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if fact.Signals.IsEntryPoint() {
		t.Error("entry_point = true for class without main")
	}
}
