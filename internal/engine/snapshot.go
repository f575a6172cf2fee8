package engine

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
)

// Snapshot is a flat, self-contained serialization of a game. Ownership is
// recorded by participant ID so the graph of back-references rebuilds on
// restore. The dice stream restarts from the configured seed.
type Snapshot struct {
	Config       GameConfig            `json:"config"`
	Phase        GamePhase             `json:"phase"`
	CurrentIndex int                   `json:"current_index"`
	LastRoll     [2]int                `json:"last_roll"`
	Participants []ParticipantSnapshot `json:"participants"`
	Assets       []AssetSnapshot       `json:"assets"`
	BankBalance  int                   `json:"bank_balance"`
	TaxPool      int                   `json:"tax_pool"`
	PotLuck      []Card                `json:"pot_luck"`
	Opportunity  []Card                `json:"opportunity"`
	Auction      *AuctionState         `json:"auction,omitempty"`
	PendingDebt  *PendingDebt          `json:"pending_debt,omitempty"`
	Standings    []Standing            `json:"standings,omitempty"`
}

type ParticipantSnapshot struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Token        string `json:"token"`
	Kind         Kind   `json:"kind"`
	Balance      int    `json:"balance"`
	Position     int    `json:"position"`
	PassedOrigin bool   `json:"passed_origin"`
	InJail       bool   `json:"in_jail"`
	JailTurns    int    `json:"jail_turns"`
	JailTokens   int    `json:"jail_tokens"`
	Doubles      int    `json:"doubles"`
	TurnsTaken   int    `json:"turns_taken"`
	Bankrupt     bool   `json:"bankrupt"`
}

type AssetSnapshot struct {
	Position         int    `json:"position"`
	OwnerID          string `json:"owner_id,omitempty"`
	Houses           int    `json:"houses"`
	Mortgaged        bool   `json:"mortgaged"`
	AlreadyAuctioned bool   `json:"already_auctioned"`
}

// Snapshot captures the current state of the game.
func (g *Game) Snapshot() *Snapshot {
	s := &Snapshot{
		Config:       g.Config,
		Phase:        g.Phase,
		CurrentIndex: g.CurrentIndex,
		LastRoll:     g.LastRoll,
		BankBalance:  g.Bank.Balance,
		TaxPool:      g.Bank.TaxPool,
		PotLuck:      g.PotLuck.Cards(),
		Opportunity:  g.Opportunity.Cards(),
		Auction:      g.Auction,
		PendingDebt:  g.PendingDebt,
		Standings:    g.Standings,
	}

	for _, p := range g.Participants {
		s.Participants = append(s.Participants, ParticipantSnapshot{
			ID:           p.ID,
			Name:         p.Name,
			Token:        p.Token,
			Kind:         p.Kind,
			Balance:      p.Balance,
			Position:     p.Position,
			PassedOrigin: p.PassedOrigin,
			InJail:       p.InJail,
			JailTurns:    p.JailTurns,
			JailTokens:   p.JailTokens,
			Doubles:      p.Doubles,
			TurnsTaken:   p.TurnsTaken,
			Bankrupt:     p.Bankrupt,
		})
	}

	for pos := 1; pos <= BoardSize; pos++ {
		a := g.Bank.AssetAt(pos)
		if a == nil {
			continue
		}
		as := AssetSnapshot{
			Position:         a.Position,
			Houses:           a.Houses,
			Mortgaged:        a.Mortgaged,
			AlreadyAuctioned: a.AlreadyAuctioned,
		}
		if a.Owner != nil {
			as.OwnerID = a.Owner.ID
		}
		s.Assets = append(s.Assets, as)
	}

	return s
}

// Marshal serializes the snapshot to JSON.
func (s *Snapshot) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// UnmarshalSnapshot parses a snapshot from JSON.
func UnmarshalSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &s, nil
}

// Restore rebuilds a playable game from a snapshot.
func Restore(s *Snapshot, strategy BotStrategy) (*Game, error) {
	g := &Game{
		Config:       s.Config,
		Strategy:     strategy,
		Phase:        s.Phase,
		CurrentIndex: s.CurrentIndex,
		LastRoll:     s.LastRoll,
		Auction:      s.Auction,
		PendingDebt:  s.PendingDebt,
		Standings:    s.Standings,
		Bank:         NewBank(s.Config),
		PotLuck:      &Deck{Name: "Pot Luck", cards: s.PotLuck},
		Opportunity:  &Deck{Name: "Opportunity Knocks", cards: s.Opportunity},
		// Offset the seed so a restored game does not replay the dice
		// stream already consumed before the save.
		rng: rand.New(rand.NewPCG(s.Config.Seed+1, s.Config.Seed)),
	}
	g.Bank.Balance = s.BankBalance
	g.Bank.TaxPool = s.TaxPool

	for _, ps := range s.Participants {
		p := NewParticipant(ps.ID, ps.Name, ps.Token, ps.Kind, ps.Balance)
		p.Position = ps.Position
		p.PassedOrigin = ps.PassedOrigin
		p.InJail = ps.InJail
		p.JailTurns = ps.JailTurns
		p.JailTokens = ps.JailTokens
		p.Doubles = ps.Doubles
		p.TurnsTaken = ps.TurnsTaken
		p.Bankrupt = ps.Bankrupt
		g.Participants = append(g.Participants, p)
	}

	if s.CurrentIndex < 0 || s.CurrentIndex >= len(g.Participants) {
		return nil, fmt.Errorf("snapshot current index %d out of range", s.CurrentIndex)
	}

	for _, as := range s.Assets {
		a := g.Bank.AssetAt(as.Position)
		if a == nil {
			return nil, fmt.Errorf("snapshot references unknown asset position %d", as.Position)
		}
		a.Houses = as.Houses
		a.Mortgaged = as.Mortgaged
		a.AlreadyAuctioned = as.AlreadyAuctioned
		if as.OwnerID != "" {
			owner := g.GetParticipant(as.OwnerID)
			if owner == nil {
				return nil, fmt.Errorf("snapshot references unknown owner %q", as.OwnerID)
			}
			owner.AddAsset(a)
		}
	}
	for group := range groupSizes {
		g.Bank.refreshGroupCompletion(group)
	}

	return g, nil
}
