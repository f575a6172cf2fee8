package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"tycoon/internal/engine"
	"tycoon/internal/lobby"
	qr "tycoon/internal/qrcode"
	"tycoon/internal/store"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handlers holds HTTP handler dependencies. Hubs is shared between
// concurrent request goroutines and is guarded by mu.
type Handlers struct {
	LobbyMgr *lobby.Manager
	Store    *store.Store
	Log      *zap.Logger

	mu   sync.Mutex
	Hubs map[string]*Hub
}

func NewHandlers(st *store.Store, log *zap.Logger) *Handlers {
	return &Handlers{
		LobbyMgr: lobby.NewManager(),
		Hubs:     make(map[string]*Hub),
		Store:    st,
		Log:      log,
	}
}

// HandleCreateGame creates a new game lobby and redirects to the board page.
func (h *Handlers) HandleCreateGame(w http.ResponseWriter, r *http.Request) {
	gameID := h.LobbyMgr.Create()
	lob := h.LobbyMgr.Get(gameID)
	hub := NewHub(gameID, lob, h.Store, h.Log)
	h.mu.Lock()
	h.Hubs[gameID] = hub
	h.mu.Unlock()
	go hub.Run()

	http.Redirect(w, r, fmt.Sprintf("/board.html?game=%s", gameID), http.StatusSeeOther)
}

// HandleQR generates a QR code PNG for joining the game.
func (h *Handlers) HandleQR(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	if gameID == "" {
		http.Error(w, "missing game parameter", http.StatusBadRequest)
		return
	}
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	url := fmt.Sprintf("http://%s/lobby.html?game=%s", r.Host, gameID)
	png, err := qr.Generate(url, size)
	if err != nil {
		http.Error(w, "QR generation failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// HandleWS handles WebSocket connections.
func (h *Handlers) HandleWS(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	participantID := r.URL.Query().Get("player")
	clientType := r.URL.Query().Get("type") // "board" or "player"

	if gameID == "" {
		http.Error(w, "missing game parameter", http.StatusBadRequest)
		return
	}
	h.mu.Lock()
	hub, ok := h.Hubs[gameID]
	h.mu.Unlock()
	if !ok {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	ct := ClientPlayer
	if clientType == "board" {
		ct = ClientBoard
	}

	client := NewClient(hub, conn, participantID, ct)
	hub.register <- client

	go client.WritePump()
	go client.ReadPump()
}

// HandleParticipantID returns a new participant ID.
func (h *Handlers) HandleParticipantID(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(GenerateParticipantID()))
}

// HandleSavedGames lists resumable games.
func (h *Handlers) HandleSavedGames(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		http.Error(w, "persistence disabled", http.StatusNotFound)
		return
	}
	games, err := h.Store.List(r.Context())
	if err != nil {
		h.Log.Error("list saved games failed", zap.Error(err))
		http.Error(w, "listing failed", http.StatusInternalServerError)
		return
	}
	type saved struct {
		GameID  string `json:"game_id"`
		SavedAt string `json:"saved_at"`
	}
	out := make([]saved, len(games))
	for i, g := range games {
		out[i] = saved{GameID: g.GameID, SavedAt: g.SavedAt.Format("2006-01-02 15:04:05")}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// HandleResume restores a saved game into a fresh hub and redirects to the
// board page. Participants rejoin over the usual websocket flow with their
// original IDs.
func (h *Handlers) HandleResume(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		http.Error(w, "persistence disabled", http.StatusNotFound)
		return
	}
	gameID := r.URL.Query().Get("game")
	if gameID == "" {
		http.Error(w, "missing game parameter", http.StatusBadRequest)
		return
	}
	h.mu.Lock()
	_, exists := h.Hubs[gameID]
	h.mu.Unlock()
	if exists {
		http.Redirect(w, r, fmt.Sprintf("/board.html?game=%s", gameID), http.StatusSeeOther)
		return
	}

	data, err := h.Store.Load(r.Context(), gameID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "game not found", http.StatusNotFound)
			return
		}
		h.Log.Error("load saved game failed", zap.String("game", gameID), zap.Error(err))
		http.Error(w, "load failed", http.StatusInternalServerError)
		return
	}
	snap, err := engine.UnmarshalSnapshot(data)
	if err != nil {
		h.Log.Error("saved game corrupt", zap.String("game", gameID), zap.Error(err))
		http.Error(w, "saved game corrupt", http.StatusInternalServerError)
		return
	}

	lob := lobby.NewLobby(gameID)
	lob.Started = true
	hub, err := NewHubFromSnapshot(gameID, lob, h.Store, h.Log, snap)
	if err != nil {
		h.Log.Error("restore failed", zap.String("game", gameID), zap.Error(err))
		http.Error(w, "restore failed", http.StatusInternalServerError)
		return
	}
	// A concurrent resume of the same game may have won the race while the
	// snapshot was loading.
	h.mu.Lock()
	if _, exists := h.Hubs[gameID]; !exists {
		h.Hubs[gameID] = hub
		go hub.Run()
	}
	h.mu.Unlock()

	http.Redirect(w, r, fmt.Sprintf("/board.html?game=%s", gameID), http.StatusSeeOther)
}
