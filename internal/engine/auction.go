package engine

// AuctionState tracks a running auction for a declined asset. Queue holds
// the remaining bidders in turn order; the front bidder acts next. Leaving
// the auction is permanent, so the queue only ever shrinks until one
// bidder remains.
type AuctionState struct {
	AssetPos        int      `json:"asset_pos"`
	Queue           []string `json:"queue"`
	HighestBid      int      `json:"highest_bid"`
	HighestBidderID string   `json:"highest_bidder_id,omitempty"`
}

// startAuction opens bidding on the asset at pos. Eligible bidders are
// active participants who have lapped the board at least once, queued in
// turn order starting from the current participant. With fewer than two
// eligible bidders the asset simply stays with the bank.
func (g *Game) startAuction(pos int) []Event {
	g.Phase = PhaseAwaitRoll

	a := g.Bank.AssetAt(pos)
	if a == nil {
		return nil
	}

	var queue []string
	n := len(g.Participants)
	for i := 0; i < n; i++ {
		p := g.Participants[(g.CurrentIndex+i)%n]
		if !p.Bankrupt && p.PassedOrigin {
			queue = append(queue, p.ID)
		}
	}
	if len(queue) < 2 {
		a.AlreadyAuctioned = true
		return nil
	}

	g.Auction = &AuctionState{AssetPos: pos, Queue: queue}
	events := []Event{
		{Type: EventAuctionStarted, Data: map[string]interface{}{
			"asset": a.Name, "bidders": len(queue),
		}},
	}
	return append(events, g.advanceAuction()...)
}

// advanceAuction drives the bidding queue until a human has to bid or a
// winner is found. Bots bid at most once per visit to the front; a bidder
// who cannot beat the running high bid is dropped. The highest bidder goes
// to the back on every bid, so they only return to the front once the
// queue has shrunk to them alone, and the settle check catches that first.
func (g *Game) advanceAuction() []Event {
	var events []Event
	au := g.Auction
	a := g.Bank.AssetAt(au.AssetPos)

	for {
		if len(au.Queue) == 1 {
			return append(events, g.settleAuction()...)
		}

		p := g.GetParticipant(au.Queue[0])
		if p == nil || p.Bankrupt || p.Balance <= au.HighestBid {
			events = append(events, g.dropBidder(p)...)
			continue
		}

		if p.Kind == KindBot {
			bid, ok := 0, false
			if g.Strategy != nil {
				bid, ok = g.Strategy.Bid(p, au.HighestBid, a)
			}
			if !ok || bid <= au.HighestBid || bid > p.Balance {
				events = append(events, g.dropBidder(p)...)
				continue
			}
			events = append(events, g.recordBid(p, bid)...)
			continue
		}

		g.Phase = PhaseAuction
		events = append(events, Event{
			Type: EventDecisionPending, Participant: p.ID,
			Data: map[string]interface{}{
				"decision": "bid", "asset": a.Name, "highest_bid": au.HighestBid,
			},
		})
		return events
	}
}

func (g *Game) recordBid(p *Participant, bid int) []Event {
	au := g.Auction
	au.HighestBid = bid
	au.HighestBidderID = p.ID
	au.Queue = append(au.Queue[1:], p.ID)
	return []Event{
		{Type: EventBidPlaced, Participant: p.ID, Data: map[string]interface{}{
			"amount": bid,
		}},
	}
}

func (g *Game) dropBidder(p *Participant) []Event {
	g.Auction.Queue = g.Auction.Queue[1:]
	if p == nil {
		return nil
	}
	return []Event{
		{Type: EventBidderLeft, Participant: p.ID, Data: nil},
	}
}

// settleAuction hands the asset to the last bidder standing at the highest
// bid, which is zero when nobody bid at all.
func (g *Game) settleAuction() []Event {
	au := g.Auction
	a := g.Bank.AssetAt(au.AssetPos)
	winner := g.GetParticipant(au.Queue[0])

	g.Auction = nil
	g.Phase = PhaseAwaitRoll
	a.AlreadyAuctioned = true

	if winner == nil || winner.Bankrupt {
		return nil
	}

	winner.Balance -= au.HighestBid
	g.Bank.Balance += au.HighestBid
	g.Bank.TransferAsset(a, winner)

	return []Event{
		{Type: EventAuctionWon, Participant: winner.ID, Data: map[string]interface{}{
			"asset": a.Name, "amount": au.HighestBid,
		}},
	}
}

func (g *Game) applyBid(p *Participant, amount int) ([]Event, error) {
	if g.Phase != PhaseAuction {
		return nil, ErrWrongPhase
	}
	au := g.Auction
	if au == nil || au.Queue[0] != p.ID {
		return nil, ErrNotYourTurn
	}
	if amount <= au.HighestBid {
		return nil, ErrInvalidAction
	}
	if amount > p.Balance {
		return nil, ErrInsufficientFunds
	}

	events := g.recordBid(p, amount)
	events = append(events, g.advanceAuction()...)
	if !g.decisionPending() {
		events = append(events, g.finishTurn(g.Current())...)
	}
	return append(events, g.runBots()...), nil
}

func (g *Game) applyExitAuction(p *Participant) ([]Event, error) {
	if g.Phase != PhaseAuction {
		return nil, ErrWrongPhase
	}
	au := g.Auction
	if au == nil || au.Queue[0] != p.ID {
		return nil, ErrNotYourTurn
	}

	g.Phase = PhaseAwaitRoll
	events := g.dropBidder(p)
	events = append(events, g.advanceAuction()...)
	if !g.decisionPending() {
		events = append(events, g.finishTurn(g.Current())...)
	}
	return append(events, g.runBots()...), nil
}
