package engine

import "math/rand/v2"

// EffectKind enumerates what a drawn card can do.
type EffectKind int

const (
	EffectReward         EffectKind = iota // bank pays the participant
	EffectCharge                           // participant pays the bank
	EffectMoveTo                           // move to a fixed tile, rewarding an origin pass
	EffectMoveBack                         // step back without passing origin
	EffectGrantJailToken                   // hold a get-out-of-jail token
	EffectSendToJail                       // straight to jail
	EffectRepairs                          // pay per house and per hotel into the tax pool
)

// Effect is the serializable action a card performs when drawn.
type Effect struct {
	Kind     EffectKind `json:"kind"`
	Amount   int        `json:"amount,omitempty"`    // reward/charge value, or steps for MoveBack
	Position int        `json:"position,omitempty"`  // destination for MoveTo
	PerHouse int        `json:"per_house,omitempty"` // repairs rate
	PerHotel int        `json:"per_hotel,omitempty"` // repairs rate
	Reason   string     `json:"reason,omitempty"`
}

// Card pairs a printed description with its effect.
type Card struct {
	Text   string `json:"text"`
	Effect Effect `json:"effect"`
}

// Deck is a cyclic FIFO of cards: drawing pops the front, and the card is
// re-appended at the back after its effect runs. Shuffled once at
// construction, deterministic thereafter.
type Deck struct {
	Name  string
	cards []Card
}

// NewDeck creates a deck shuffled with the given source.
func NewDeck(name string, cards []Card, rng *rand.Rand) *Deck {
	d := &Deck{Name: name, cards: make([]Card, len(cards))}
	copy(d.cards, cards)
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
	return d
}

// Draw removes and returns the front card. Returns false if the deck is empty.
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	c := d.cards[0]
	d.cards = d.cards[1:]
	return c, true
}

// Recycle puts a drawn card at the back of the deck.
func (d *Deck) Recycle(c Card) {
	d.cards = append(d.cards, c)
}

// Len returns the number of cards remaining.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Cards returns the current ordering, front first.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// PotLuckCards returns the Pot Luck deck contents.
func PotLuckCards() []Card {
	return []Card{
		{Text: "You inherit £200", Effect: Effect{Kind: EffectReward, Amount: 200, Reason: "inheritance"}},
		{Text: "You have won 2nd prize in a beauty contest, collect £50", Effect: Effect{Kind: EffectReward, Amount: 50, Reason: "beauty contest"}},
		{Text: "Go back to the Old Creek", Effect: Effect{Kind: EffectMoveTo, Position: 2}},
		{Text: "Student loan refund. Collect £20", Effect: Effect{Kind: EffectReward, Amount: 20, Reason: "student loan refund"}},
		{Text: "Bank error in your favour. Collect £200", Effect: Effect{Kind: EffectReward, Amount: 200, Reason: "bank error"}},
		{Text: "Pay bill for textbooks of £100", Effect: Effect{Kind: EffectCharge, Amount: 100, Reason: "textbooks"}},
		{Text: "Advance to GO", Effect: Effect{Kind: EffectMoveTo, Position: OriginPosition}},
		{Text: "Get out of jail free", Effect: Effect{Kind: EffectGrantJailToken}},
		{Text: "Go to jail. Do not pass GO, do not collect £200", Effect: Effect{Kind: EffectSendToJail}},
	}
}

// OpportunityKnocksCards returns the Opportunity Knocks deck contents.
func OpportunityKnocksCards() []Card {
	return []Card{
		{Text: "Bank pays you a dividend of £50", Effect: Effect{Kind: EffectReward, Amount: 50, Reason: "dividend"}},
		{Text: "Advance to Turing Heights", Effect: Effect{Kind: EffectMoveTo, Position: 40}},
		{Text: "Advance to Han Xin Gardens. If you pass GO, collect £200", Effect: Effect{Kind: EffectMoveTo, Position: 25}},
		{Text: "Fined £15 for speeding", Effect: Effect{Kind: EffectCharge, Amount: 15, Reason: "speeding"}},
		{Text: "Pay university fees of £150", Effect: Effect{Kind: EffectCharge, Amount: 150, Reason: "university fees"}},
		{Text: "Take a trip to Hove station. If you pass GO collect £200", Effect: Effect{Kind: EffectMoveTo, Position: 16}},
		{Text: "You are assessed for repairs, £40/house, £115/hotel", Effect: Effect{Kind: EffectRepairs, PerHouse: 40, PerHotel: 115, Reason: "repairs"}},
		{Text: "Go back 3 spaces", Effect: Effect{Kind: EffectMoveBack, Amount: 3}},
		{Text: "Drunk in charge of a hoverboard. Fine £30", Effect: Effect{Kind: EffectCharge, Amount: 30, Reason: "hoverboard fine"}},
		{Text: "Get out of jail free", Effect: Effect{Kind: EffectGrantJailToken}},
		{Text: "Go to jail. Do not pass GO, do not collect £200", Effect: Effect{Kind: EffectSendToJail}},
	}
}
