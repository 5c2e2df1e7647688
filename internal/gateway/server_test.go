package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/parlance-ai/parlance/internal/agent"
	"github.com/parlance-ai/parlance/internal/dialect"
	"github.com/parlance-ai/parlance/internal/schema"
	"github.com/parlance-ai/parlance/internal/tools"
)

// echoClient answers every chat with a fixed reply.
type echoClient struct{ reply string }

func (c echoClient) Chat(context.Context, string, schema.Messages) (string, error) {
	return c.reply, nil
}

func testFactory(t *testing.T, reply string) ConversationFactory {
	t.Helper()
	return func() (*agent.Coordinator, error) {
		return agent.New(agent.Params{
			Client:   echoClient{reply: reply},
			Parser:   dialect.NewTagged(),
			Registry: tools.NewRegistryBuilder().Build(),
			Model:    "test-model",
		})
	}
}

func dialTestServer(t *testing.T, s *Server) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(s.handleWS))
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestGateway_EchoTurn(t *testing.T) {
	s := New(":0", testFactory(t, "All clear."))
	conn := dialTestServer(t, s)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("status?")); err != nil {
		t.Fatal(err)
	}
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	if got := string(payload); got != "All clear." {
		t.Errorf("got %q", got)
	}
}

func TestGateway_MultipleTurnsShareConversation(t *testing.T) {
	var factoryCalls int
	inner := testFactory(t, "ok")
	s := New(":0", func() (*agent.Coordinator, error) {
		factoryCalls++
		return inner()
	})
	conn := dialTestServer(t, s)

	for i := 0; i < 3; i++ {
		if err := conn.WriteMessage(websocket.TextMessage, []byte("hi")); err != nil {
			t.Fatal(err)
		}
		if _, _, err := conn.ReadMessage(); err != nil {
			t.Fatal(err)
		}
	}
	if factoryCalls != 1 {
		t.Errorf("expected one conversation per connection, factory ran %d times", factoryCalls)
	}
}

func TestGateway_FactoryFailureReported(t *testing.T) {
	s := New(":0", func() (*agent.Coordinator, error) {
		return nil, context.DeadlineExceeded
	})
	conn := dialTestServer(t, s)

	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(payload), "error: ") {
		t.Errorf("expected an error frame, got %q", payload)
	}
}
