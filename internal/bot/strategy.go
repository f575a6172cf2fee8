package bot

import (
	"sort"

	"tycoon/internal/engine"
)

// Basic is a deterministic strategy modelled on a cautious casual player.
// It buys whatever it can strictly afford, bids in small increments up to
// one and a half times list price, and always pays its way out of jail
// when the money is there.
type Basic struct{}

// New returns the default strategy for bot seats.
func New() engine.BotStrategy {
	return Basic{}
}

// Buy purchases only when the price leaves some cash in hand.
func (Basic) Buy(p *engine.Participant, a *engine.Asset) bool {
	return p.Balance > a.Price
}

// Bid raises the running bid by a tenth of the gap to list price, plus one
// so the raise is never zero. The bot folds once the price runs away past
// 1.5x list or past its own balance.
func (Basic) Bid(p *engine.Participant, highestBid int, a *engine.Asset) (int, bool) {
	bid := highestBid + (a.Price-highestBid)/10 + 1
	if bid <= highestBid || bid > p.Balance || bid > a.Price*3/2 {
		return 0, false
	}
	return bid, true
}

func (Basic) PayJailFine(p *engine.Participant, fine int) bool {
	return p.Balance >= fine
}

// LiquidationOrder sells cheapest holdings first so the expensive,
// high-rent assets survive the longest.
func (Basic) LiquidationOrder(p *engine.Participant) []*engine.Asset {
	order := append([]*engine.Asset(nil), p.Assets...)
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].Price < order[j].Price
	})
	return order
}
