package engine

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

var (
	ErrNotYourTurn         = errors.New("not your turn")
	ErrInvalidAction       = errors.New("invalid action")
	ErrWrongPhase          = errors.New("wrong phase for this action")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrInsufficientFunds   = errors.New("insufficient funds")
)

// PendingDebt tracks money a participant owes but could not pay on the
// spot. The debtor must raise funds or declare bankruptcy before the game
// continues.
type PendingDebt struct {
	DebtorID   string `json:"debtor_id"`
	CreditorID string `json:"creditor_id,omitempty"` // empty means the bank
	ToPool     bool   `json:"to_pool"`               // money goes to the tax pool instead
	Amount     int    `json:"amount"`
	Reason     string `json:"reason"`
}

// Game holds the entire game state.
type Game struct {
	Participants []*Participant `json:"participants"`
	Bank         *Bank          `json:"bank"`
	PotLuck      *Deck          `json:"-"`
	Opportunity  *Deck          `json:"-"`
	Config       GameConfig     `json:"-"`
	Strategy     BotStrategy    `json:"-"`

	Phase        GamePhase `json:"phase"`
	CurrentIndex int       `json:"current_index"`
	LastRoll     [2]int    `json:"last_roll"`

	Auction     *AuctionState `json:"auction,omitempty"`
	PendingDebt *PendingDebt  `json:"pending_debt,omitempty"`

	Standings []Standing `json:"standings,omitempty"`

	rng *rand.Rand
}

// NewGame creates a new game with the given participants and config. The
// strategy drives every decision a bot makes; it may be nil when all
// participants are human.
func NewGame(participants []*Participant, config GameConfig, strategy BotStrategy) *Game {
	seed := config.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed))
	return &Game{
		Participants: participants,
		Bank:         NewBank(config),
		PotLuck:      NewDeck("Pot Luck", PotLuckCards(), rng),
		Opportunity:  NewDeck("Opportunity Knocks", OpportunityKnocksCards(), rng),
		Config:       config,
		Strategy:     strategy,
		Phase:        PhaseLobby,
		rng:          rng,
	}
}

// Start begins the game with the first participant to act.
func (g *Game) Start() []Event {
	g.Phase = PhaseAwaitRoll
	events := []Event{
		{Type: EventGameStarted, Data: map[string]interface{}{
			"participants": len(g.Participants),
		}},
		{Type: EventPhaseChange, Data: map[string]interface{}{
			"phase": g.Phase.String(),
		}},
	}
	return append(events, g.runBots()...)
}

// Apply is the single entry point for participant actions.
func (g *Game) Apply(participantID string, action Action) ([]Event, error) {
	if g.Phase == PhaseGameOver {
		return nil, ErrWrongPhase
	}
	p := g.GetParticipant(participantID)
	if p == nil {
		return nil, ErrParticipantNotFound
	}
	if p.Bankrupt {
		return nil, ErrInvalidAction
	}

	switch action.Type {
	case ActionRoll:
		return g.applyRoll(p)
	case ActionBuy:
		return g.applyBuy(p)
	case ActionDecline:
		return g.applyDecline(p)
	case ActionBid:
		return g.applyBid(p, action.Amount)
	case ActionExitAuction:
		return g.applyExitAuction(p)
	case ActionJailChoice:
		return g.applyJailChoice(p, action.Choice)
	case ActionBuild:
		return g.applyManage(p, action, g.manageBuild)
	case ActionSellHouses:
		return g.applyManage(p, action, g.manageSellHouses)
	case ActionMortgage:
		return g.applyManage(p, action, g.manageMortgage)
	case ActionUnmortgage:
		return g.applyManage(p, action, g.manageUnmortgage)
	case ActionSellProperty:
		return g.applyManage(p, action, g.manageSellProperty)
	case ActionPayDebt:
		return g.applyPayDebt(p)
	case ActionBankruptcy:
		return g.applyBankruptcy(p)
	default:
		return nil, ErrInvalidAction
	}
}

// Current returns the participant whose turn it is.
func (g *Game) Current() *Participant {
	return g.Participants[g.CurrentIndex]
}

// GetParticipant finds a participant by ID.
func (g *Game) GetParticipant(id string) *Participant {
	for _, p := range g.Participants {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// ActiveCount returns the number of participants still in the game.
func (g *Game) ActiveCount() int {
	n := 0
	for _, p := range g.Participants {
		if !p.Bankrupt {
			n++
		}
	}
	return n
}

func (g *Game) rollDice() (int, int) {
	d1 := g.rng.IntN(6) + 1
	d2 := g.rng.IntN(6) + 1
	g.LastRoll = [2]int{d1, d2}
	return d1, d2
}

func (g *Game) applyRoll(p *Participant) ([]Event, error) {
	if g.Phase != PhaseAwaitRoll {
		return nil, ErrWrongPhase
	}
	if g.Current() != p {
		return nil, ErrNotYourTurn
	}
	events := g.playRoll(p)
	return append(events, g.runBots()...), nil
}

// playRoll performs one dice roll and everything that follows from it,
// up to either a pending decision or the end of the turn.
func (g *Game) playRoll(p *Participant) []Event {
	d1, d2 := g.rollDice()
	p.TurnsTaken++

	events := []Event{
		{Type: EventDiceRolled, Participant: p.ID, Data: map[string]interface{}{
			"dice": []int{d1, d2}, "total": d1 + d2,
		}},
	}

	if d1 == d2 {
		p.Doubles++
		if p.Doubles >= 3 {
			p.Doubles = 0
			events = append(events, g.sendToJail(p)...)
			return append(events, g.finishTurn(p)...)
		}
	} else {
		p.Doubles = 0
	}

	events = append(events, g.moveBy(p, d1+d2)...)
	events = append(events, g.resolveTile(p, d1+d2)...)

	if g.decisionPending() {
		return events
	}
	return append(events, g.finishTurn(p)...)
}

// decisionPending reports whether the game is waiting on someone's input
// before the current turn can complete.
func (g *Game) decisionPending() bool {
	switch g.Phase {
	case PhaseAwaitPurchase, PhaseAuction, PhaseAwaitDebt, PhaseAwaitJail, PhaseGameOver:
		return true
	}
	return false
}

// finishTurn closes out the current participant's turn and hands the dice
// to whoever rolls next. A doubles roll keeps the dice with the same
// participant unless it landed them in jail.
func (g *Game) finishTurn(p *Participant) []Event {
	if g.Phase == PhaseGameOver {
		return nil
	}
	if g.ActiveCount() <= 1 {
		return g.endGame()
	}

	next := p
	if p.Bankrupt || p.InJail || p.Doubles == 0 {
		for {
			g.CurrentIndex = (g.CurrentIndex + 1) % len(g.Participants)
			next = g.Participants[g.CurrentIndex]
			if !next.Bankrupt {
				break
			}
		}
		next.Doubles = 0
	}

	events := []Event{
		{Type: EventTurnAdvanced, Participant: next.ID, Data: map[string]interface{}{
			"position": next.Position,
		}},
	}

	if next.InJail && next.Kind == KindHuman {
		g.Phase = PhaseAwaitJail
		events = append(events, Event{
			Type: EventDecisionPending, Participant: next.ID,
			Data: map[string]interface{}{"decision": "jail", "choices": g.jailChoices(next)},
		})
		return events
	}

	g.Phase = PhaseAwaitRoll
	return events
}

func (g *Game) jailChoices(p *Participant) []string {
	choices := []string{string(JailRoll), string(JailWait)}
	if p.Balance >= g.Config.JailFine {
		choices = append(choices, string(JailPayFine))
	}
	if p.JailTokens > 0 {
		choices = append(choices, string(JailUseToken))
	}
	return choices
}

// maxConsecutiveBotTurns bounds an all-bot stretch of play. A table of
// cautious bots can circle the board forever without anyone going broke,
// so after this many turns the game is settled on net worth.
const maxConsecutiveBotTurns = 1000

// runBots plays out bot turns until a human has to act or the game ends.
func (g *Game) runBots() []Event {
	var events []Event
	for turns := 0; g.Phase == PhaseAwaitRoll; turns++ {
		p := g.Current()
		if p.Kind != KindBot {
			break
		}
		if turns >= maxConsecutiveBotTurns {
			events = append(events, g.endGame()...)
			break
		}
		events = append(events, g.playBotTurn(p)...)
	}
	return events
}

func (g *Game) playBotTurn(p *Participant) []Event {
	if p.InJail {
		return g.botJailTurn(p)
	}
	return g.playRoll(p)
}

func (g *Game) botJailTurn(p *Participant) []Event {
	var events []Event
	switch {
	case p.JailTokens > 0:
		p.JailTokens--
		events = append(events, g.leaveJail(p, "token")...)
	case g.Strategy != nil && g.Strategy.PayJailFine(p, g.Config.JailFine) && p.Balance >= g.Config.JailFine:
		p.Balance -= g.Config.JailFine
		g.Bank.TaxPool += g.Config.JailFine
		events = append(events, g.leaveJail(p, "fine")...)
	default:
		d1, d2 := g.rollDice()
		events = append(events, Event{
			Type: EventDiceRolled, Participant: p.ID,
			Data: map[string]interface{}{"dice": []int{d1, d2}, "total": d1 + d2},
		})
		if d1 == d2 || p.JailTurns+1 >= g.Config.MaxJailAttempts {
			events = append(events, g.leaveJail(p, "roll")...)
			events = append(events, g.moveBy(p, d1+d2)...)
			events = append(events, g.resolveTile(p, d1+d2)...)
			if g.decisionPending() {
				return events
			}
		} else {
			p.JailTurns++
		}
		return append(events, g.finishTurn(p)...)
	}
	// Out of jail with the turn still to play.
	return append(events, g.playRoll(p)...)
}

func (g *Game) applyJailChoice(p *Participant, choice JailChoice) ([]Event, error) {
	if g.Phase != PhaseAwaitJail {
		return nil, ErrWrongPhase
	}
	if g.Current() != p {
		return nil, ErrNotYourTurn
	}

	var events []Event
	switch choice {
	case JailPayFine:
		if p.Balance < g.Config.JailFine {
			return nil, ErrInsufficientFunds
		}
		p.Balance -= g.Config.JailFine
		g.Bank.TaxPool += g.Config.JailFine
		events = append(events, g.leaveJail(p, "fine")...)
		g.Phase = PhaseAwaitRoll
	case JailUseToken:
		if p.JailTokens == 0 {
			return nil, ErrInvalidAction
		}
		p.JailTokens--
		events = append(events, g.leaveJail(p, "token")...)
		g.Phase = PhaseAwaitRoll
	case JailRoll:
		d1, d2 := g.rollDice()
		p.TurnsTaken++
		events = append(events, Event{
			Type: EventDiceRolled, Participant: p.ID,
			Data: map[string]interface{}{"dice": []int{d1, d2}, "total": d1 + d2},
		})
		if d1 == d2 || p.JailTurns+1 >= g.Config.MaxJailAttempts {
			events = append(events, g.leaveJail(p, "roll")...)
			events = append(events, g.moveBy(p, d1+d2)...)
			events = append(events, g.resolveTile(p, d1+d2)...)
			if g.decisionPending() {
				return events, nil
			}
		} else {
			p.JailTurns++
		}
		events = append(events, g.finishTurn(p)...)
	case JailWait:
		p.JailTurns++
		p.TurnsTaken++
		events = append(events, g.finishTurn(p)...)
	default:
		return nil, ErrInvalidAction
	}

	return append(events, g.runBots()...), nil
}

func (g *Game) leaveJail(p *Participant, how string) []Event {
	p.InJail = false
	p.JailTurns = 0
	return []Event{
		{Type: EventJailLeft, Participant: p.ID, Data: map[string]interface{}{"how": how}},
	}
}

func (g *Game) sendToJail(p *Participant) []Event {
	p.InJail = true
	p.Position = JailPosition
	p.JailTurns = 0
	p.Doubles = 0
	return []Event{
		{Type: EventJailEntered, Participant: p.ID, Data: map[string]interface{}{
			"position": JailPosition,
		}},
	}
}

// applyManage runs a property management action. Management is open to the
// current participant before rolling and to a debtor raising funds.
func (g *Game) applyManage(p *Participant, action Action, fn func(*Participant, Action) ([]Event, error)) ([]Event, error) {
	switch g.Phase {
	case PhaseAwaitRoll, PhaseAwaitJail:
		if g.Current() != p {
			return nil, ErrNotYourTurn
		}
	case PhaseAwaitDebt:
		if g.PendingDebt == nil || g.PendingDebt.DebtorID != p.ID {
			return nil, ErrNotYourTurn
		}
	default:
		return nil, ErrWrongPhase
	}
	return fn(p, action)
}

func (g *Game) manageBuild(p *Participant, action Action) ([]Event, error) {
	a := g.Bank.AssetAt(action.Position)
	if a == nil {
		return nil, ErrInvalidAction
	}
	count := action.Count
	if count == 0 {
		count = 1
	}
	if err := g.Bank.Build(count, a, p); err != nil {
		return nil, err
	}
	return []Event{
		{Type: EventHousesBuilt, Participant: p.ID, Data: map[string]interface{}{
			"asset": a.Name, "count": count, "houses": a.Houses,
		}},
	}, nil
}

func (g *Game) manageSellHouses(p *Participant, action Action) ([]Event, error) {
	a := g.Bank.AssetAt(action.Position)
	if a == nil {
		return nil, ErrInvalidAction
	}
	count := action.Count
	if count == 0 {
		count = 1
	}
	value, err := g.Bank.SellHouses(p, a, count)
	if err != nil {
		return nil, err
	}
	return []Event{
		{Type: EventHousesSold, Participant: p.ID, Data: map[string]interface{}{
			"asset": a.Name, "count": count, "value": value,
		}},
	}, nil
}

func (g *Game) manageMortgage(p *Participant, action Action) ([]Event, error) {
	a := g.Bank.AssetAt(action.Position)
	if a == nil {
		return nil, ErrInvalidAction
	}
	if err := g.Bank.MortgageProperty(p, a); err != nil {
		return nil, err
	}
	return []Event{
		{Type: EventMortgaged, Participant: p.ID, Data: map[string]interface{}{
			"asset": a.Name, "value": a.Price / 2,
		}},
	}, nil
}

func (g *Game) manageUnmortgage(p *Participant, action Action) ([]Event, error) {
	a := g.Bank.AssetAt(action.Position)
	if a == nil {
		return nil, ErrInvalidAction
	}
	if err := g.Bank.UnmortgageProperty(p, a); err != nil {
		return nil, err
	}
	return []Event{
		{Type: EventUnmortgaged, Participant: p.ID, Data: map[string]interface{}{
			"asset": a.Name, "cost": a.Price / 2,
		}},
	}, nil
}

func (g *Game) manageSellProperty(p *Participant, action Action) ([]Event, error) {
	a := g.Bank.AssetAt(action.Position)
	if a == nil {
		return nil, ErrInvalidAction
	}
	value, err := g.Bank.SellPropertyToBank(p, a)
	if err != nil {
		return nil, err
	}
	return []Event{
		{Type: EventPropertySold, Participant: p.ID, Data: map[string]interface{}{
			"asset": a.Name, "value": value,
		}},
	}, nil
}

func (g *Game) applyBuy(p *Participant) ([]Event, error) {
	if g.Phase != PhaseAwaitPurchase {
		return nil, ErrWrongPhase
	}
	if g.Current() != p {
		return nil, ErrNotYourTurn
	}
	a := g.Bank.AssetAt(p.Position)
	if a == nil {
		return nil, fmt.Errorf("no asset at position %d", p.Position)
	}
	if err := g.Bank.BuyProperty(p, a); err != nil {
		return nil, err
	}
	events := []Event{
		{Type: EventPropertyBought, Participant: p.ID, Data: map[string]interface{}{
			"asset": a.Name, "price": a.Price,
		}},
	}
	g.Phase = PhaseAwaitRoll
	events = append(events, g.finishTurn(p)...)
	return append(events, g.runBots()...), nil
}

func (g *Game) applyDecline(p *Participant) ([]Event, error) {
	if g.Phase != PhaseAwaitPurchase {
		return nil, ErrWrongPhase
	}
	if g.Current() != p {
		return nil, ErrNotYourTurn
	}
	events := g.startAuction(p.Position)
	if !g.decisionPending() {
		events = append(events, g.finishTurn(p)...)
	}
	return append(events, g.runBots()...), nil
}

func (g *Game) applyPayDebt(p *Participant) ([]Event, error) {
	if g.Phase != PhaseAwaitDebt {
		return nil, ErrWrongPhase
	}
	debt := g.PendingDebt
	if debt == nil || debt.DebtorID != p.ID {
		return nil, ErrNotYourTurn
	}
	if p.Balance < debt.Amount {
		return nil, ErrInsufficientFunds
	}
	events := g.settleDebt(p, debt.CreditorID, debt.ToPool, debt.Amount, debt.Reason)
	g.PendingDebt = nil
	g.Phase = PhaseAwaitRoll
	events = append(events, g.finishTurn(p)...)
	return append(events, g.runBots()...), nil
}

func (g *Game) applyBankruptcy(p *Participant) ([]Event, error) {
	if g.Phase != PhaseAwaitDebt {
		return nil, ErrWrongPhase
	}
	debt := g.PendingDebt
	if debt == nil || debt.DebtorID != p.ID {
		return nil, ErrNotYourTurn
	}
	events := g.declareBankruptcy(p, debt.CreditorID, debt.ToPool)
	if g.Phase != PhaseGameOver {
		g.Phase = PhaseAwaitRoll
		events = append(events, g.finishTurn(p)...)
	}
	return append(events, g.runBots()...), nil
}

func (g *Game) endGame() []Event {
	g.Phase = PhaseGameOver
	g.Standings = g.ComputeStandings()
	return []Event{
		{Type: EventGameOver, Data: map[string]interface{}{"standings": g.Standings}},
		{Type: EventPhaseChange, Data: map[string]interface{}{"phase": PhaseGameOver.String()}},
	}
}

// EndByTimeLimit stops the game immediately and ranks everyone by net
// worth. Used for the timed game variant.
func (g *Game) EndByTimeLimit() []Event {
	if g.Phase == PhaseGameOver {
		return nil
	}
	return g.endGame()
}
