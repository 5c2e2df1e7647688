package tools

import (
	"context"
	"strings"
	"testing"
)

func TestExec_Echo(t *testing.T) {
	out, err := NewExecTool("", 0).Execute(context.Background(), map[string]any{"command": "echo hello"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "hello" {
		t.Errorf("got %q", out)
	}
}

func TestExec_WorkingDir(t *testing.T) {
	dir := t.TempDir()
	out, err := NewExecTool(dir, 0).Execute(context.Background(), map[string]any{"command": "pwd"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, dir) {
		t.Errorf("expected output under %q, got %q", dir, out)
	}
}

func TestExec_DeniedCommands(t *testing.T) {
	tool := NewExecTool("", 0)
	for _, cmd := range []string{
		"rm -rf /",
		"sudo shutdown now",
		"dd if=/dev/zero of=/dev/sda",
	} {
		out, err := tool.Execute(context.Background(), map[string]any{"command": cmd})
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(out, "blocked by safety policy") {
			t.Errorf("command %q must be blocked, got %q", cmd, out)
		}
	}
}

func TestExec_FailureIncludesExitStatus(t *testing.T) {
	out, err := NewExecTool("", 0).Execute(context.Background(), map[string]any{"command": "ls /definitely-not-here-0451"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "(exit:") {
		t.Errorf("expected exit status in output, got %q", out)
	}
}

func TestExec_MissingCommand(t *testing.T) {
	out, err := NewExecTool("", 0).Execute(context.Background(), map[string]any{})
	if err != nil {
		t.Fatal(err)
	}
	if out != "Error: command is required" {
		t.Errorf("got %q", out)
	}
}

func TestExec_Timeout(t *testing.T) {
	tool := NewExecTool("", 1)
	out, err := tool.Execute(context.Background(), map[string]any{"command": "sleep 5"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "timed out") {
		t.Errorf("expected a timeout result, got %q", out)
	}
}
