package lobby

import (
	"fmt"
	"sync"
)

// Tokens lists the playing pieces, claimed first come first served.
var Tokens = []string{"boot", "smartphone", "goblet", "hatstand", "cat", "spoon"}

// SeatInfo holds lobby-level information for one seat.
type SeatInfo struct {
	ID    string
	Name  string
	Token string
	Bot   bool
	Ready bool
}

// Lobby represents a game room waiting for players. Bots occupy seats
// like anyone else and are always ready.
type Lobby struct {
	mu       sync.Mutex
	ID       string
	Seats    []*SeatInfo
	MaxSeats int
	MinSeats int
	Started  bool
}

// NewLobby creates a new lobby.
func NewLobby(id string) *Lobby {
	return &Lobby{
		ID:       id,
		MaxSeats: len(Tokens),
		MinSeats: 2,
	}
}

// Join claims a seat. Joining again with the same ID updates the name,
// so a reconnect is not an error.
func (l *Lobby) Join(id, name, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Started {
		return fmt.Errorf("game already started")
	}
	for _, s := range l.Seats {
		if s.ID == id {
			s.Name = name
			return nil
		}
	}
	if len(l.Seats) >= l.MaxSeats {
		return fmt.Errorf("lobby is full")
	}
	token, err := l.claimToken(token)
	if err != nil {
		return err
	}
	l.Seats = append(l.Seats, &SeatInfo{ID: id, Name: name, Token: token})
	return nil
}

// AddBot fills the next seat with a bot.
func (l *Lobby) AddBot(id, name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Started {
		return fmt.Errorf("game already started")
	}
	if len(l.Seats) >= l.MaxSeats {
		return fmt.Errorf("lobby is full")
	}
	if name == "" {
		name = fmt.Sprintf("Bot %d", len(l.Seats)+1)
	}
	token, err := l.claimToken("")
	if err != nil {
		return err
	}
	l.Seats = append(l.Seats, &SeatInfo{ID: id, Name: name, Token: token, Bot: true, Ready: true})
	return nil
}

// claimToken reserves the requested token, or the next free one when the
// request is empty. Caller holds the lock.
func (l *Lobby) claimToken(want string) (string, error) {
	taken := make(map[string]bool, len(l.Seats))
	for _, s := range l.Seats {
		taken[s.Token] = true
	}
	if want != "" {
		for _, t := range Tokens {
			if t == want {
				if taken[t] {
					return "", fmt.Errorf("token %s is already taken", t)
				}
				return t, nil
			}
		}
		return "", fmt.Errorf("unknown token %s", want)
	}
	for _, t := range Tokens {
		if !taken[t] {
			return t, nil
		}
	}
	return "", fmt.Errorf("no tokens left")
}

// Leave frees a seat.
func (l *Lobby) Leave(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, s := range l.Seats {
		if s.ID == id {
			l.Seats = append(l.Seats[:i], l.Seats[i+1:]...)
			return
		}
	}
}

// SetReady toggles a seat's ready state.
func (l *Lobby) SetReady(id string, ready bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, s := range l.Seats {
		if s.ID == id {
			s.Ready = ready
			return
		}
	}
}

// CanStart reports whether every seat is ready and enough are filled.
func (l *Lobby) CanStart() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.Seats) < l.MinSeats {
		return false
	}
	humans := 0
	for _, s := range l.Seats {
		if !s.Ready {
			return false
		}
		if !s.Bot {
			humans++
		}
	}
	return humans >= 1
}

// Start marks the lobby as started.
func (l *Lobby) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Started {
		return fmt.Errorf("already started")
	}
	if len(l.Seats) < l.MinSeats {
		return fmt.Errorf("not enough players")
	}
	l.Started = true
	return nil
}

// GetSeats returns a copy of the seat list.
func (l *Lobby) GetSeats() []SeatInfo {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]SeatInfo, len(l.Seats))
	for i, s := range l.Seats {
		out[i] = *s
	}
	return out
}
