package dependency

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestContainer_DefaultGraph(t *testing.T) {
	c, err := New(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("wiring failed: %v", err)
	}

	cfg, err := c.Config()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Agent.Dialect != "tagged" {
		t.Errorf("expected default dialect, got %q", cfg.Agent.Dialect)
	}

	p, err := c.Parser()
	if err != nil {
		t.Fatal(err)
	}
	if p.Name() != "tagged" {
		t.Errorf("parser dialect mismatch: %q", p.Name())
	}

	reg, err := c.Registry()
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"clock", "web_fetch", "exec"} {
		if reg.Get(name) == nil {
			t.Errorf("expected tool %q in default registry", name)
		}
	}
}

func TestContainer_DisabledToolsOmitted(t *testing.T) {
	path := writeConfig(t, `{
		"tools": {
			"exec": {"enabled": false},
			"web": {"enabled": false}
		}
	}`)
	c, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	reg, err := c.Registry()
	if err != nil {
		t.Fatal(err)
	}
	if reg.Get("exec") != nil || reg.Get("web_fetch") != nil {
		t.Error("disabled tools must not be registered")
	}
	if reg.Get("clock") == nil {
		t.Error("clock is always registered")
	}
}

func TestContainer_DialectSelection(t *testing.T) {
	path := writeConfig(t, `{"agent": {"dialect": "fenced"}}`)
	c, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	p, err := c.Parser()
	if err != nil {
		t.Fatal(err)
	}
	if p.Name() != "fenced" {
		t.Errorf("got %q", p.Name())
	}
}

func TestContainer_UnknownDialectFailsAtResolve(t *testing.T) {
	path := writeConfig(t, `{"agent": {"dialect": "morse"}}`)
	c, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Parser(); err == nil {
		t.Fatal("expected an error for an unknown dialect")
	}
}

func TestContainer_CoordinatorsAreIndependent(t *testing.T) {
	c, err := New(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatal(err)
	}
	a, err := c.NewCoordinator()
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.NewCoordinator()
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("each conversation needs its own coordinator")
	}
}
