package server

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"

	"go.uber.org/zap"

	"tycoon/internal/store"
)

// Server ties together HTTP serving and WebSocket handling.
type Server struct {
	handlers *Handlers
	port     int
	static   embed.FS
	log      *zap.Logger
}

func New(port int, static embed.FS, st *store.Store, log *zap.Logger) *Server {
	return &Server{
		handlers: NewHandlers(st, log),
		port:     port,
		static:   static,
		log:      log,
	}
}

func (s *Server) Start() error {
	mux := http.NewServeMux()

	sub, err := fs.Sub(s.static, "web/static")
	if err != nil {
		return fmt.Errorf("static fs: %w", err)
	}
	mux.Handle("/", http.FileServer(http.FS(sub)))

	mux.HandleFunc("/api/create", s.handlers.HandleCreateGame)
	mux.HandleFunc("/api/qr", s.handlers.HandleQR)
	mux.HandleFunc("/api/player-id", s.handlers.HandleParticipantID)
	mux.HandleFunc("/api/saves", s.handlers.HandleSavedGames)
	mux.HandleFunc("/api/resume", s.handlers.HandleResume)
	mux.HandleFunc("/ws", s.handlers.HandleWS)

	addr := fmt.Sprintf(":%d", s.port)
	s.log.Info("server starting", zap.String("addr", addr))
	return http.ListenAndServe(addr, mux)
}
