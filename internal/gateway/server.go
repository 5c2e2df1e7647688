// Package gateway exposes the agent over a websocket endpoint.
//
// Each connection gets its own conversation: every inbound text frame runs
// one coordinator turn and the reply is written back as a text frame.
package gateway

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/parlance-ai/parlance/internal/agent"
)

// ConversationFactory builds a fresh Coordinator for one connection.
type ConversationFactory func() (*agent.Coordinator, error)

// Server serves the websocket gateway.
type Server struct {
	addr     string
	newConvo ConversationFactory
	upgrader websocket.Upgrader
}

// New creates a Server listening on addr.
func New(addr string, factory ConversationFactory) *Server {
	return &Server{
		addr:     addr,
		newConvo: factory,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
}

// Start serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)

	srv := &http.Server{Addr: s.addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("gateway: listening", "addr", s.addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("gateway: upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	convo, err := s.newConvo()
	if err != nil {
		slog.Error("gateway: conversation setup failed", "err", err)
		_ = conn.WriteMessage(websocket.TextMessage, []byte("error: "+err.Error()))
		return
	}

	slog.Info("gateway: client connected", "remote", conn.RemoteAddr().String())
	for {
		msgType, payload, err := conn.ReadMessage()
		if err != nil {
			slog.Info("gateway: client disconnected", "remote", conn.RemoteAddr().String())
			return
		}
		if msgType != websocket.TextMessage || len(payload) == 0 {
			continue
		}

		resp, err := convo.Run(r.Context(), string(payload))
		if err != nil {
			_ = conn.WriteMessage(websocket.TextMessage, []byte("error: "+err.Error()))
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, []byte(resp.Message.Content)); err != nil {
			return
		}
	}
}
