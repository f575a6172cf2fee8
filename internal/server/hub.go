package server

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"tycoon/internal/bot"
	"tycoon/internal/engine"
	"tycoon/internal/lobby"
	"tycoon/internal/protocol"
	"tycoon/internal/store"
)

// Hub manages WebSocket connections and game state for one game room.
// The Run loop owns the engine: every action funnels through the incoming
// channel, so the game itself never needs a lock.
type Hub struct {
	mu         sync.Mutex
	gameID     string
	lobby      *lobby.Lobby
	game       *engine.Game
	store      *store.Store
	log        *zap.Logger
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	incoming   chan IncomingMessage
	timeLimit  <-chan time.Time
	quit       chan struct{}
}

func NewHub(gameID string, lob *lobby.Lobby, st *store.Store, log *zap.Logger) *Hub {
	return &Hub{
		gameID:     gameID,
		lobby:      lob,
		store:      st,
		log:        log.With(zap.String("game", gameID)),
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan IncomingMessage, 256),
		quit:       make(chan struct{}),
	}
}

// NewHubFromSnapshot rebuilds a hub around a previously saved game.
func NewHubFromSnapshot(gameID string, lob *lobby.Lobby, st *store.Store, log *zap.Logger, snap *engine.Snapshot) (*Hub, error) {
	game, err := engine.Restore(snap, bot.New())
	if err != nil {
		return nil, err
	}
	h := NewHub(gameID, lob, st, log)
	h.game = game
	return h, nil
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.sendLobbyUpdate()
			if h.game != nil {
				h.sendStateToClient(client)
			}

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case msg := <-h.incoming:
			h.handleMessage(msg)

		case <-h.timeLimit:
			if h.game != nil {
				events := h.game.EndByTimeLimit()
				h.broadcastEvents(events)
				h.broadcastState()
				h.persist()
			}

		case <-h.quit:
			return
		}
	}
}

func (h *Hub) handleMessage(msg IncomingMessage) {
	switch msg.Envelope.Type {
	case protocol.MsgJoin:
		h.handleJoin(msg)
	case protocol.MsgReady:
		h.handleReady(msg)
	case protocol.MsgAddBot:
		h.handleAddBot(msg)
	case protocol.MsgStartGame:
		h.handleStartGame(msg)
	default:
		h.handleGameAction(msg)
	}
}

func (h *Hub) handleJoin(msg IncomingMessage) {
	var join protocol.JoinMsg
	if err := json.Unmarshal(msg.Envelope.Payload, &join); err != nil {
		h.sendError(msg.Client, "invalid join message")
		return
	}
	msg.Client.ParticipantID = join.PlayerID
	if err := h.lobby.Join(join.PlayerID, join.Name, join.Token); err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}
	h.log.Info("participant joined", zap.String("participant", join.PlayerID), zap.String("name", join.Name))
	h.sendLobbyUpdate()
}

func (h *Hub) handleReady(msg IncomingMessage) {
	var ready protocol.ReadyMsg
	if err := json.Unmarshal(msg.Envelope.Payload, &ready); err != nil {
		h.sendError(msg.Client, "invalid ready message")
		return
	}
	h.lobby.SetReady(msg.Client.ParticipantID, ready.Ready)
	h.sendLobbyUpdate()
}

func (h *Hub) handleAddBot(msg IncomingMessage) {
	var add protocol.AddBotMsg
	if len(msg.Envelope.Payload) > 0 {
		if err := json.Unmarshal(msg.Envelope.Payload, &add); err != nil {
			h.sendError(msg.Client, "invalid add_bot message")
			return
		}
	}
	if err := h.lobby.AddBot(GenerateParticipantID(), add.Name); err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}
	h.sendLobbyUpdate()
}

func (h *Hub) handleStartGame(msg IncomingMessage) {
	var start protocol.StartGameMsg
	if len(msg.Envelope.Payload) > 0 {
		if err := json.Unmarshal(msg.Envelope.Payload, &start); err != nil {
			h.sendError(msg.Client, "invalid start_game message")
			return
		}
	}
	if !h.lobby.CanStart() {
		h.sendError(msg.Client, "not all players ready")
		return
	}
	if err := h.lobby.Start(); err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}

	cfg := engine.DefaultConfig()
	cfg.Seed = randomSeed()

	seats := h.lobby.GetSeats()
	participants := make([]*engine.Participant, len(seats))
	for i, s := range seats {
		kind := engine.KindHuman
		if s.Bot {
			kind = engine.KindBot
		}
		participants[i] = engine.NewParticipant(s.ID, s.Name, s.Token, kind, cfg.StartingBalance)
	}

	h.game = engine.NewGame(participants, cfg, bot.New())
	if start.TimeLimitMinutes > 0 {
		h.timeLimit = time.After(time.Duration(start.TimeLimitMinutes) * time.Minute)
	}

	h.log.Info("game started",
		zap.Int("participants", len(participants)),
		zap.Int("time_limit_minutes", start.TimeLimitMinutes))

	events := h.game.Start()
	h.broadcastEvents(events)
	h.broadcastState()
	h.persist()
}

func (h *Hub) handleGameAction(msg IncomingMessage) {
	if h.game == nil {
		h.sendError(msg.Client, "game not started")
		return
	}

	var action engine.Action
	if len(msg.Envelope.Payload) > 0 {
		if err := json.Unmarshal(msg.Envelope.Payload, &action); err != nil {
			h.sendError(msg.Client, "invalid action payload")
			return
		}
	}
	action.Type = engine.ActionType(msg.Envelope.Type)

	events, err := h.game.Apply(msg.Client.ParticipantID, action)
	if err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}

	h.broadcastEvents(events)
	h.broadcastState()
	h.persist()
}

// persist autosaves the running game so it can be resumed after a restart.
func (h *Hub) persist() {
	if h.store == nil || h.game == nil {
		return
	}
	data, err := h.game.Snapshot().Marshal()
	if err != nil {
		h.log.Error("snapshot marshal failed", zap.Error(err))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.store.Save(ctx, h.gameID, data); err != nil {
		h.log.Error("snapshot save failed", zap.Error(err))
	}
}

func (h *Hub) broadcastEvents(events []engine.Event) {
	for _, ev := range events {
		env := protocol.MustEnvelope(protocol.MsgEvent, ev)
		h.broadcastAll(env)
	}
}

func (h *Hub) broadcastState() {
	if h.game == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		h.sendStateToClient(client)
	}
}

func (h *Hub) sendStateToClient(client *Client) {
	if h.game == nil {
		return
	}
	env := protocol.MustEnvelope(protocol.MsgGameState, h.game.View())
	client.SendEnvelope(env)
}

func (h *Hub) sendLobbyUpdate() {
	seats := h.lobby.GetSeats()
	ls := make([]protocol.LobbySeat, len(seats))
	for i, s := range seats {
		ls[i] = protocol.LobbySeat{ID: s.ID, Name: s.Name, Token: s.Token, Bot: s.Bot, Ready: s.Ready}
	}
	env := protocol.MustEnvelope(protocol.MsgLobbyUpdate, protocol.LobbyUpdate{
		GameID:  h.gameID,
		Seats:   ls,
		Started: h.lobby.Started,
	})
	h.broadcastAll(env)
}

func (h *Hub) broadcastAll(env protocol.Envelope) {
	h.mu.Lock()
	defer h.mu.Unlock()

	data, err := json.Marshal(env)
	if err != nil {
		h.log.Error("broadcast marshal failed", zap.Error(err))
		return
	}
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			h.log.Warn("client buffer full", zap.String("participant", client.ParticipantID))
		}
	}
}

func (h *Hub) sendError(client *Client, message string) {
	env := protocol.MustEnvelope(protocol.MsgError, protocol.ErrorMsg{Message: message})
	client.SendEnvelope(env)
}

func randomSeed() uint64 {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return binary.LittleEndian.Uint64(b[:])
}
