package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writePrompts(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadPrompts_Missing(t *testing.T) {
	pack, err := LoadPrompts("/nonexistent/prompts.yaml")
	if err != nil {
		t.Fatalf("missing file must yield an empty pack, got: %v", err)
	}
	if len(pack) != 0 {
		t.Errorf("expected empty pack, got %v", pack)
	}
}

func TestLoadPrompts_Valid(t *testing.T) {
	path := writePrompts(t, "tagged: |\n  Custom prompt.\n  Tools: {tools}\n")

	pack, err := LoadPrompts(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := pack["tagged"]; !ok {
		t.Fatal("expected a tagged override")
	}
}

func TestLoadPrompts_MissingPlaceholder(t *testing.T) {
	path := writePrompts(t, "fenced: no placeholder at all\n")

	if _, err := LoadPrompts(path); err == nil {
		t.Fatal("expected an error for an override without the placeholder")
	}
}

func TestLoadPrompts_BadYAML(t *testing.T) {
	path := writePrompts(t, ":\tnot yaml")

	if _, err := LoadPrompts(path); err == nil {
		t.Fatal("expected a parse error")
	}
}
