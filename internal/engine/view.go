package engine

// ViewData is the full game state serialized for clients. Nothing in the
// game is hidden, so every participant sees the same view plus a pending
// decision marker telling whose input the game waits on.
type ViewData struct {
	Phase        string            `json:"phase"`
	CurrentID    string            `json:"current_id"`
	LastRoll     [2]int            `json:"last_roll"`
	Participants []ParticipantView `json:"participants"`
	Assets       []AssetView       `json:"assets"`
	BankBalance  int               `json:"bank_balance"`
	TaxPool      int               `json:"tax_pool"`
	Auction      *AuctionView      `json:"auction,omitempty"`
	PendingDebt  *PendingDebt      `json:"pending_debt,omitempty"`
	Decision     *DecisionView     `json:"decision,omitempty"`
	Standings    []Standing        `json:"standings,omitempty"`
}

type ParticipantView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Token      string `json:"token"`
	Kind       string `json:"kind"`
	Balance    int    `json:"balance"`
	Position   int    `json:"position"`
	InJail     bool   `json:"in_jail"`
	JailTokens int    `json:"jail_tokens"`
	Bankrupt   bool   `json:"bankrupt"`
	NetWorth   int    `json:"net_worth"`
}

type AssetView struct {
	Position  int    `json:"position"`
	Name      string `json:"name"`
	Group     string `json:"group"`
	Price     int    `json:"price"`
	OwnerID   string `json:"owner_id,omitempty"`
	Houses    int    `json:"houses"`
	Mortgaged bool   `json:"mortgaged"`
}

type AuctionView struct {
	Asset      string `json:"asset"`
	HighestBid int    `json:"highest_bid"`
	BidderID   string `json:"bidder_id"`
	Remaining  int    `json:"remaining"`
}

// DecisionView names the participant the game is waiting on and what for.
type DecisionView struct {
	ParticipantID string `json:"participant_id"`
	Kind          string `json:"kind"`
}

func (g *Game) View() ViewData {
	v := ViewData{
		Phase:       g.Phase.String(),
		CurrentID:   g.Current().ID,
		LastRoll:    g.LastRoll,
		BankBalance: g.Bank.Balance,
		TaxPool:     g.Bank.TaxPool,
		PendingDebt: g.PendingDebt,
		Standings:   g.Standings,
	}

	for _, p := range g.Participants {
		worth := 0
		if !p.Bankrupt {
			worth = p.NetWorth()
		}
		v.Participants = append(v.Participants, ParticipantView{
			ID:         p.ID,
			Name:       p.Name,
			Token:      p.Token,
			Kind:       p.Kind.String(),
			Balance:    p.Balance,
			Position:   p.Position,
			InJail:     p.InJail,
			JailTokens: p.JailTokens,
			Bankrupt:   p.Bankrupt,
			NetWorth:   worth,
		})
	}

	for pos := 1; pos <= BoardSize; pos++ {
		a := g.Bank.AssetAt(pos)
		if a == nil {
			continue
		}
		av := AssetView{
			Position:  a.Position,
			Name:      a.Name,
			Group:     a.Group,
			Price:     a.Price,
			Houses:    a.Houses,
			Mortgaged: a.Mortgaged,
		}
		if a.Owner != nil {
			av.OwnerID = a.Owner.ID
		}
		v.Assets = append(v.Assets, av)
	}

	if g.Auction != nil {
		a := g.Bank.AssetAt(g.Auction.AssetPos)
		v.Auction = &AuctionView{
			Asset:      a.Name,
			HighestBid: g.Auction.HighestBid,
			BidderID:   g.Auction.Queue[0],
			Remaining:  len(g.Auction.Queue),
		}
	}

	v.Decision = g.pendingDecision()
	return v
}

func (g *Game) pendingDecision() *DecisionView {
	switch g.Phase {
	case PhaseAwaitRoll:
		return &DecisionView{ParticipantID: g.Current().ID, Kind: "roll"}
	case PhaseAwaitJail:
		return &DecisionView{ParticipantID: g.Current().ID, Kind: "jail"}
	case PhaseAwaitPurchase:
		return &DecisionView{ParticipantID: g.Current().ID, Kind: "purchase"}
	case PhaseAuction:
		if g.Auction != nil && len(g.Auction.Queue) > 0 {
			return &DecisionView{ParticipantID: g.Auction.Queue[0], Kind: "bid"}
		}
	case PhaseAwaitDebt:
		if g.PendingDebt != nil {
			return &DecisionView{ParticipantID: g.PendingDebt.DebtorID, Kind: "debt"}
		}
	}
	return nil
}
