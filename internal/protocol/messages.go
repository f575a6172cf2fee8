package protocol

// Message types: Server -> Client
const (
	MsgLobbyUpdate = "lobby_update"
	MsgGameState   = "game_state"
	MsgEvent       = "event"
	MsgError       = "error"
)

// Message types: Client -> Server
const (
	MsgJoin      = "join"
	MsgReady     = "ready"
	MsgAddBot    = "add_bot"
	MsgStartGame = "start_game"
	// In-game actions use the same names as engine ActionType: roll, buy,
	// decline, bid, exit_auction, jail_choice, build, sell_houses,
	// mortgage, unmortgage, sell_property, pay_debt, bankruptcy.
)

// LobbyUpdate is sent to all clients when lobby state changes.
type LobbyUpdate struct {
	GameID  string      `json:"game_id"`
	Seats   []LobbySeat `json:"seats"`
	Started bool        `json:"started"`
}

type LobbySeat struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Token string `json:"token"`
	Bot   bool   `json:"bot"`
	Ready bool   `json:"ready"`
}

// JoinMsg is sent by a player to claim a seat.
type JoinMsg struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Token    string `json:"token,omitempty"`
}

// ReadyMsg toggles a player's ready state.
type ReadyMsg struct {
	Ready bool `json:"ready"`
}

// AddBotMsg asks the lobby to fill a seat with a bot.
type AddBotMsg struct {
	Name string `json:"name,omitempty"`
}

// StartGameMsg begins the game. A positive time limit schedules a
// net-worth finish instead of playing to the last solvent participant.
type StartGameMsg struct {
	TimeLimitMinutes int `json:"time_limit_minutes,omitempty"`
}

// ErrorMsg is sent to a client on error.
type ErrorMsg struct {
	Message string `json:"message"`
}
