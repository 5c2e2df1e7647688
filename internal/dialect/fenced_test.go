package dialect

import (
	"context"
	"strings"
	"testing"
)

func TestFencedParse_Success_Fenced(t *testing.T) {
	tool := newWeatherTool()
	p := NewFenced()

	resp := p.Parse(context.Background(), "```json\n{\"name\": \"get_weather\", \"arguments\": {\"city\": \"Hanoi\"}}\n```", "m", registryWith(tool))
	if !resp.Ok {
		t.Fatalf("expected success, got %q", resp.Message.Content)
	}
	// Raw result, no wrapping markers.
	if resp.Message.Content != "22C" {
		t.Errorf("expected bare result, got %q", resp.Message.Content)
	}
	if got := tool.lastParams["city"]; got != "Hanoi" {
		t.Errorf("expected city=Hanoi, got %v", got)
	}
}

func TestFencedParse_Success_Unfenced(t *testing.T) {
	p := NewFenced()

	resp := p.Parse(context.Background(), `  {"name": "get_weather", "arguments": {}}  `, "m", registryWith(newWeatherTool()))
	if !resp.Ok {
		t.Fatalf("expected success without fences, got %q", resp.Message.Content)
	}
}

func TestFencedParse_UnknownTool(t *testing.T) {
	p := NewFenced()

	resp := p.Parse(context.Background(), "```json\n{\"name\":\"missing\",\"arguments\":{}}\n```", "m", emptyRegistry())
	if resp.Ok {
		t.Fatal("expected failure for unknown tool")
	}
	if resp.Message.Content != "Tool not found" {
		t.Errorf("content must be exactly %q, got %q", "Tool not found", resp.Message.Content)
	}
}

func TestFencedParse_MalformedJSON_BareDiagnostic(t *testing.T) {
	p := NewFenced()

	resp := p.Parse(context.Background(), "not json at all", "m", registryWith(newWeatherTool()))
	if resp.Ok {
		t.Fatal("expected failure")
	}
	if strings.Contains(resp.Message.Content, "<tool_response>") {
		t.Errorf("fenced feedback must not be wrapped in tags, got %q", resp.Message.Content)
	}
	if !strings.Contains(resp.Message.Content, "invalid character") {
		t.Errorf("expected the parser diagnostic, got %q", resp.Message.Content)
	}
}

func TestFencedParse_ToolFailure(t *testing.T) {
	tool := newWeatherTool()
	tool.err = errBoom
	p := NewFenced()

	resp := p.Parse(context.Background(), `{"name": "get_weather", "arguments": {}}`, "m", registryWith(tool))
	if resp.Ok {
		t.Fatal("expected failure when the tool errors")
	}
	if resp.Message.Content != "backend unavailable" {
		t.Errorf("expected the bare tool error, got %q", resp.Message.Content)
	}
}

func TestStripFences(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"  ```json{\"a\":1}```  ", `{"a":1}`},
		{`{"a":1}`, `{"a":1}`},
		{"\n\t{\"a\":1}\n", `{"a":1}`},
	}
	for _, c := range cases {
		if got := stripFences(c.in); got != c.want {
			t.Errorf("stripFences(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFencedFormatHooks_AreIdentity(t *testing.T) {
	p := NewFenced()
	if got := p.FormatQuery("hello"); got != "hello" {
		t.Errorf("FormatQuery must be identity, got %q", got)
	}
	if got := p.FormatResponse("world"); got != "world" {
		t.Errorf("FormatResponse must be identity, got %q", got)
	}
}

func TestFencedContainsCall(t *testing.T) {
	p := NewFenced()
	if !p.ContainsCall("```json\n{\"name\":\"x\"}\n```") {
		t.Error("expected call detection for fenced JSON")
	}
	if p.ContainsCall("just words") {
		t.Error("plain text must not be detected as a call")
	}
}
