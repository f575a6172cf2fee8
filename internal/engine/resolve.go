package engine

// Movement and tile resolution. Every landing funnels through resolveTile,
// card effects included, so chained moves resolve the same way as dice moves.

// moveBy advances a participant one step at a time, emitting a step event
// per tile so a renderer can animate the walk. Every crossing of the origin
// tile pays out, however long the move.
func (g *Game) moveBy(p *Participant, steps int) []Event {
	var events []Event
	for i := 0; i < steps; i++ {
		p.Position++
		if p.Position > BoardSize {
			p.Position = 1
		}
		events = append(events, Event{
			Type: EventMoved, Participant: p.ID, Data: map[string]interface{}{
				"position": p.Position, "tile": TileName(p.Position, g.Bank.Assets),
			},
		})
		if p.Position == OriginPosition {
			events = append(events, g.passOrigin(p)...)
		}
	}
	return events
}

// moveBackBy walks a participant backwards, one step event per tile.
// Passing the origin tile in reverse pays nothing.
func (g *Game) moveBackBy(p *Participant, steps int) []Event {
	var events []Event
	for i := 0; i < steps; i++ {
		p.Position--
		if p.Position < 1 {
			p.Position = BoardSize
		}
		events = append(events, Event{
			Type: EventMoved, Participant: p.ID, Data: map[string]interface{}{
				"position": p.Position, "tile": TileName(p.Position, g.Bank.Assets),
			},
		})
	}
	return events
}

// moveTo advances forward to an exact position, collecting the origin
// reward along the way.
func (g *Game) moveTo(p *Participant, pos int) []Event {
	steps := pos - p.Position
	if steps <= 0 {
		steps += BoardSize
	}
	return g.moveBy(p, steps)
}

func (g *Game) passOrigin(p *Participant) []Event {
	p.PassedOrigin = true
	g.Bank.Balance -= g.Config.OriginReward
	p.Balance += g.Config.OriginReward
	return []Event{
		{Type: EventPassedOrigin, Participant: p.ID, Data: map[string]interface{}{
			"reward": g.Config.OriginReward,
		}},
	}
}

// resolveTile applies the effect of the tile the participant stands on.
// diceTotal feeds utility rent; pass 0 when the landing did not come from
// a dice roll.
func (g *Game) resolveTile(p *Participant, diceTotal int) []Event {
	events := []Event{
		{Type: EventLanded, Participant: p.ID, Data: map[string]interface{}{
			"position": p.Position, "tile": TileName(p.Position, g.Bank.Assets),
		}},
	}

	switch TileAt(p.Position) {
	case TileAsset:
		events = append(events, g.resolveAssetTile(p, diceTotal)...)
	case TileTax:
		amount := taxAmounts[p.Position]
		ev, paid := g.incurDebt(p, "", true, amount, "tax")
		events = append(events, ev...)
		if paid {
			events = append(events, Event{
				Type: EventTaxPaid, Participant: p.ID,
				Data: map[string]interface{}{"amount": amount},
			})
		}
	case TileFreeParking:
		if g.Bank.TaxPool > 0 {
			amount := g.Bank.TaxPool
			g.Bank.TaxPool = 0
			p.Balance += amount
			events = append(events, Event{
				Type: EventTaxPoolPaidOut, Participant: p.ID,
				Data: map[string]interface{}{"amount": amount},
			})
		}
	case TileGoToJail:
		events = append(events, g.sendToJail(p)...)
	case TilePotLuck:
		events = append(events, g.drawCard(p, g.PotLuck)...)
	case TileOpportunity:
		events = append(events, g.drawCard(p, g.Opportunity)...)
	case TileOrigin, TileJailVisit:
		// Nothing to do.
	}
	return events
}

func (g *Game) resolveAssetTile(p *Participant, diceTotal int) []Event {
	a := g.Bank.AssetAt(p.Position)
	if a == nil {
		return nil
	}

	if a.Owner == nil {
		// Purchase is only open after a first lap of the board.
		if !p.PassedOrigin {
			return nil
		}
		if p.Kind == KindBot {
			return g.botPurchase(p, a)
		}
		g.Phase = PhaseAwaitPurchase
		return []Event{
			{Type: EventDecisionPending, Participant: p.ID, Data: map[string]interface{}{
				"decision": "purchase", "asset": a.Name, "price": a.Price,
			}},
		}
	}

	if a.Owner == p || a.Mortgaged || a.Owner.InJail {
		// Jailed owners collect no rent.
		return nil
	}

	rent := a.Rent(diceTotal)
	if rent == 0 {
		return nil
	}
	events, paid := g.incurDebt(p, a.Owner.ID, false, rent, "rent")
	if paid {
		events = append(events, Event{
			Type: EventRentPaid, Participant: p.ID, Data: map[string]interface{}{
				"asset": a.Name, "owner": a.Owner.ID, "amount": rent,
			},
		})
	}
	return events
}

func (g *Game) botPurchase(p *Participant, a *Asset) []Event {
	if g.Strategy != nil && g.Strategy.Buy(p, a) && g.Bank.BuyProperty(p, a) == nil {
		return []Event{
			{Type: EventPropertyBought, Participant: p.ID, Data: map[string]interface{}{
				"asset": a.Name, "price": a.Price,
			}},
		}
	}
	return g.startAuction(a.Position)
}

func (g *Game) drawCard(p *Participant, deck *Deck) []Event {
	card, ok := deck.Draw()
	if !ok {
		return nil
	}
	events := []Event{
		{Type: EventCardDrawn, Participant: p.ID, Data: map[string]interface{}{
			"deck": deck.Name, "text": card.Text,
		}},
	}
	events = append(events, g.applyEffect(p, card.Effect)...)
	deck.Recycle(card)
	return events
}

func (g *Game) applyEffect(p *Participant, e Effect) []Event {
	switch e.Kind {
	case EffectReward:
		g.Bank.Balance -= e.Amount
		p.Balance += e.Amount
		return nil
	case EffectCharge:
		ev, _ := g.incurDebt(p, "", false, e.Amount, e.Reason)
		return ev
	case EffectMoveTo:
		events := g.moveTo(p, e.Position)
		return append(events, g.resolveTile(p, 0)...)
	case EffectMoveBack:
		events := g.moveBackBy(p, e.Amount)
		return append(events, g.resolveTile(p, 0)...)
	case EffectGrantJailToken:
		p.JailTokens++
		return nil
	case EffectSendToJail:
		return g.sendToJail(p)
	case EffectRepairs:
		total := 0
		for _, a := range p.Assets {
			if a.Houses == 5 {
				total += e.PerHotel
			} else {
				total += e.PerHouse * a.Houses
			}
		}
		if total == 0 {
			return nil
		}
		ev, _ := g.incurDebt(p, "", true, total, e.Reason)
		return ev
	}
	return nil
}
