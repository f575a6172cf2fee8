package engine

// Debt resolution. A charge that cannot be paid on the spot suspends the
// game for a human debtor, or triggers automatic liquidation for a bot.
// Every path ends with the money transferred in full or the debtor
// bankrupt, never with a partial payment.

// incurDebt charges a participant. It returns the events produced and
// whether the debt was settled immediately. An empty creditorID means the
// bank; toPool redirects the money to the tax pool instead.
func (g *Game) incurDebt(debtor *Participant, creditorID string, toPool bool, amount int, reason string) ([]Event, bool) {
	if amount <= 0 {
		return nil, true
	}
	if debtor.Balance >= amount {
		return g.settleDebt(debtor, creditorID, toPool, amount, reason), true
	}

	events := []Event{
		{Type: EventDebtIncurred, Participant: debtor.ID, Data: map[string]interface{}{
			"amount": amount, "creditor": creditorID, "reason": reason,
		}},
	}

	if debtor.Kind == KindBot {
		events = append(events, g.liquidate(debtor, amount)...)
		if debtor.Balance >= amount {
			return append(events, g.settleDebt(debtor, creditorID, toPool, amount, reason)...), true
		}
		return append(events, g.declareBankruptcy(debtor, creditorID, toPool)...), false
	}

	g.PendingDebt = &PendingDebt{
		DebtorID:   debtor.ID,
		CreditorID: creditorID,
		ToPool:     toPool,
		Amount:     amount,
		Reason:     reason,
	}
	g.Phase = PhaseAwaitDebt
	events = append(events, Event{
		Type: EventDecisionPending, Participant: debtor.ID,
		Data: map[string]interface{}{"decision": "debt", "amount": amount},
	})
	return events, false
}

func (g *Game) settleDebt(debtor *Participant, creditorID string, toPool bool, amount int, reason string) []Event {
	debtor.Balance -= amount
	switch {
	case toPool:
		g.Bank.TaxPool += amount
	case creditorID != "":
		if creditor := g.GetParticipant(creditorID); creditor != nil && !creditor.Bankrupt {
			creditor.Balance += amount
		} else {
			g.Bank.Balance += amount
		}
	default:
		g.Bank.Balance += amount
	}
	return []Event{
		{Type: EventDebtSettled, Participant: debtor.ID, Data: map[string]interface{}{
			"amount": amount, "creditor": creditorID, "reason": reason,
		}},
	}
}

// liquidate sells a bot's holdings until the target amount is covered or
// nothing is left. Houses come off a group one at a time to respect the
// even-selling rule, then assets are mortgaged, then sold outright.
func (g *Game) liquidate(p *Participant, target int) []Event {
	var events []Event
	order := g.liquidationOrder(p)

	for sold := true; sold && p.Balance < target; {
		sold = false
		for _, a := range order {
			if p.Balance >= target {
				break
			}
			if a.Houses > 0 {
				if value, err := g.Bank.SellHouses(p, a, 1); err == nil {
					sold = true
					events = append(events, Event{
						Type: EventHousesSold, Participant: p.ID,
						Data: map[string]interface{}{"asset": a.Name, "count": 1, "value": value},
					})
				}
			}
		}
	}

	for _, a := range order {
		if p.Balance >= target {
			return events
		}
		if !a.Mortgaged && a.Houses == 0 {
			if err := g.Bank.MortgageProperty(p, a); err == nil {
				events = append(events, Event{
					Type: EventMortgaged, Participant: p.ID,
					Data: map[string]interface{}{"asset": a.Name, "value": a.Price / 2},
				})
			}
		}
	}

	for _, a := range order {
		if p.Balance >= target {
			return events
		}
		if value, err := g.Bank.SellPropertyToBank(p, a); err == nil {
			events = append(events, Event{
				Type: EventPropertySold, Participant: p.ID,
				Data: map[string]interface{}{"asset": a.Name, "value": value},
			})
		}
	}

	return events
}

func (g *Game) liquidationOrder(p *Participant) []*Asset {
	if g.Strategy != nil {
		if order := g.Strategy.LiquidationOrder(p); order != nil {
			return order
		}
	}
	return append([]*Asset(nil), p.Assets...)
}

// declareBankruptcy removes the debtor from play. Holdings pass to the
// creditor with mortgages intact, or back to the bank when the creditor
// was the bank or the tax pool. The remaining balance follows the assets.
func (g *Game) declareBankruptcy(p *Participant, creditorID string, toPool bool) []Event {
	var creditor *Participant
	if creditorID != "" {
		if c := g.GetParticipant(creditorID); c != nil && !c.Bankrupt {
			creditor = c
		}
	}

	for len(p.Assets) > 0 {
		a := p.Assets[0]
		a.Houses = 0
		g.Bank.TransferAsset(a, creditor)
	}

	remaining := p.Balance
	p.Balance = 0
	switch {
	case creditor != nil:
		creditor.Balance += remaining
	case toPool:
		g.Bank.TaxPool += remaining
	default:
		g.Bank.Balance += remaining
	}

	p.Bankrupt = true
	p.InJail = false
	g.PendingDebt = nil

	events := []Event{
		{Type: EventBankruptcy, Participant: p.ID, Data: map[string]interface{}{
			"creditor": creditorID, "surrendered": remaining,
		}},
	}

	if g.ActiveCount() <= 1 {
		events = append(events, g.endGame()...)
	}
	return events
}
