package engine

import "fmt"

// Bank owns the currency reserve, the asset registry and the tax pool.
// Every operation checks all its preconditions before mutating anything, so
// a returned error always means nothing changed.
type Bank struct {
	Balance int
	TaxPool int
	Assets  map[int]*Asset
}

func NewBank(cfg GameConfig) *Bank {
	return &Bank{
		Balance: cfg.BankBalance,
		Assets:  BoardAssets(),
	}
}

// AssetAt returns the asset at a board position, or nil for special tiles.
func (b *Bank) AssetAt(pos int) *Asset {
	return b.Assets[pos]
}

// BuyProperty sells an unowned asset to the participant at list price.
func (b *Bank) BuyProperty(p *Participant, a *Asset) error {
	if a.Owner != nil {
		return fmt.Errorf("%s is already owned by %s", a.Name, a.Owner.Name)
	}
	if p.Balance < a.Price {
		return fmt.Errorf("%s can't afford %s", p.Name, a.Name)
	}
	p.Balance -= a.Price
	b.Balance += a.Price
	b.TransferAsset(a, p)
	return nil
}

// SellPropertyToBank buys an asset back from its owner. A mortgaged asset
// pays half price and the mortgage is cleared as part of the sale.
// Returns the amount paid out.
func (b *Bank) SellPropertyToBank(p *Participant, a *Asset) (int, error) {
	if a.Owner != p {
		return 0, fmt.Errorf("%s is not owned by %s", a.Name, p.Name)
	}
	if a.Houses > 0 {
		return 0, fmt.Errorf("%s still has %d house(s), sell them before selling the property", a.Name, a.Houses)
	}
	value := a.Price
	if a.Mortgaged {
		value = a.Price / 2
	}
	p.Balance += value
	b.Balance -= value
	a.Mortgaged = false
	p.RemoveAsset(a)
	b.refreshGroupCompletion(a.Group)
	return value, nil
}

// MortgageProperty pays the owner half the asset price against its title.
func (b *Bank) MortgageProperty(p *Participant, a *Asset) error {
	if a.Owner != p {
		return fmt.Errorf("%s is not owned by %s", a.Name, p.Name)
	}
	if a.Mortgaged {
		return fmt.Errorf("%s is already mortgaged", a.Name)
	}
	if a.Houses != 0 {
		return fmt.Errorf("%s has houses built on it and cannot be mortgaged", a.Name)
	}
	value := a.Price / 2
	a.Mortgaged = true
	p.Balance += value
	b.Balance -= value
	return nil
}

// UnmortgageProperty reverses a mortgage for half the asset price.
func (b *Bank) UnmortgageProperty(p *Participant, a *Asset) error {
	if a.Owner != p {
		return fmt.Errorf("%s is not owned by %s", a.Name, p.Name)
	}
	value := a.Price / 2
	if !a.Mortgaged {
		return fmt.Errorf("%s is not mortgaged", a.Name)
	}
	if p.Balance < value {
		return fmt.Errorf("%s can't afford to unmortgage %s", p.Name, a.Name)
	}
	a.Mortgaged = false
	p.Balance -= value
	b.Balance += value
	return nil
}

// SellHouses sells count houses back for half the build cost each. The
// group must stay balanced: no asset may end up more than one house below
// the group's maximum.
func (b *Bank) SellHouses(p *Participant, a *Asset, count int) (int, error) {
	if a.Owner != p {
		return 0, fmt.Errorf("%s is not owned by %s", a.Name, p.Name)
	}
	if count < 1 || a.Houses < count {
		return 0, fmt.Errorf("no %d house(s) available to sell on %s", count, a.Name)
	}
	max := 0
	for _, held := range p.Assets {
		if held.Group == a.Group && held.Houses > max {
			max = held.Houses
		}
	}
	if a.Houses-count < max-1 {
		return 0, fmt.Errorf("houses in the %s group must stay within one of each other", a.Group)
	}
	value := (a.HouseCost / 2) * count
	a.Houses -= count
	p.Balance += value
	b.Balance -= value
	return value, nil
}

// Build adds count houses to an asset. The owner's group must be complete,
// the result must not exceed five houses, and building must stay balanced
// across the group (at most one above the group minimum).
func (b *Bank) Build(count int, a *Asset, p *Participant) error {
	if a.Owner != p {
		return fmt.Errorf("%s is not owned by %s", a.Name, p.Name)
	}
	if a.Category != CategoryStandard {
		return fmt.Errorf("houses cannot be built on %s", a.Name)
	}
	if !p.OwnsGroup(a.Group) {
		return fmt.Errorf("%s group is not complete, %s can't build on %s", a.Group, p.Name, a.Name)
	}
	cost := count * a.HouseCost
	if p.Balance < cost {
		return fmt.Errorf("%s doesn't have enough money to build %d house(s) on %s", p.Name, count, a.Name)
	}
	if a.Houses+count > 5 {
		return fmt.Errorf("%s can hold at most 5 houses", a.Name)
	}
	min := 6
	for _, held := range p.Assets {
		if held.Group == a.Group && held.Houses < min {
			min = held.Houses
		}
	}
	if a.Houses+count > min+1 {
		return fmt.Errorf("houses in the %s group must stay within one of each other", a.Group)
	}
	a.Houses += count
	p.Balance -= cost
	b.Balance += cost
	return nil
}

// TransferAsset moves ownership to newOwner (nil returns it to the bank
// pool) and refreshes group completion flags. Mortgage state persists.
func (b *Bank) TransferAsset(a *Asset, newOwner *Participant) {
	if a.Owner != nil {
		a.Owner.RemoveAsset(a)
	}
	if newOwner != nil {
		newOwner.AddAsset(a)
	}
	b.refreshGroupCompletion(a.Group)
}

// refreshGroupCompletion recomputes the complete flag for a whole group.
func (b *Bank) refreshGroupCompletion(group string) {
	size := groupSizes[group]
	for _, a := range b.Assets {
		if a.Group != group {
			continue
		}
		a.GroupComplete = a.Owner != nil && a.Owner.GroupCount(group) == size
	}
}
