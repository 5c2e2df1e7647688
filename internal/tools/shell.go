package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"time"
)

// denyPatterns blocks obviously destructive commands before execution.
var denyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\brm\s+-[rf]{1,2}\b`),
	regexp.MustCompile(`(?i)\b(mkfs|diskpart)\b`),
	regexp.MustCompile(`(?i)\bdd\s+if=`),
	regexp.MustCompile(`(?i)>\s*/dev/sd`),
	regexp.MustCompile(`(?i)\b(shutdown|reboot|poweroff)\b`),
	regexp.MustCompile(`:\(\)\s*\{.*\};\s*:`), // fork bomb
}

// ExecTool runs a shell command and returns its combined output.
type ExecTool struct {
	timeout    time.Duration
	workingDir string
}

// NewExecTool creates an ExecTool. workingDir empty means the process CWD;
// timeoutSeconds defaults to 60.
func NewExecTool(workingDir string, timeoutSeconds int) *ExecTool {
	t := 60
	if timeoutSeconds > 0 {
		t = timeoutSeconds
	}
	return &ExecTool{
		timeout:    time.Duration(t) * time.Second,
		workingDir: workingDir,
	}
}

func (e *ExecTool) Name() string { return "exec" }

func (e *ExecTool) Description() string {
	return "Execute a shell command and return its output. Use with caution."
}

func (e *ExecTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"command": {
				"type": "string",
				"description": "The shell command to execute"
			}
		},
		"required": ["command"]
	}`)
}

func (e *ExecTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	command, _ := params["command"].(string)
	if command == "" {
		return "Error: command is required", nil
	}
	for _, pat := range denyPatterns {
		if pat.MatchString(command) {
			return fmt.Sprintf("Error: command blocked by safety policy: %s", command), nil
		}
	}

	cwd := e.workingDir
	if cwd == "" {
		cwd, _ = os.Getwd()
	}

	cmdCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	cmd := exec.CommandContext(cmdCtx, "sh", "-c", command)
	cmd.Dir = cwd

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	var sb strings.Builder
	if stdout.Len() > 0 {
		sb.WriteString(stdout.String())
	}
	if stderr.Len() > 0 {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(stderr.String())
	}
	if runErr != nil {
		if cmdCtx.Err() == context.DeadlineExceeded {
			return fmt.Sprintf("Error: command timed out after %s", e.timeout), nil
		}
		if sb.Len() > 0 {
			return fmt.Sprintf("%s\n(exit: %v)", strings.TrimRight(sb.String(), "\n"), runErr), nil
		}
		return fmt.Sprintf("Error: %v", runErr), nil
	}
	if sb.Len() == 0 {
		return "(no output)", nil
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}
