package engine

import "testing"

func newGame(t *testing.T, humans, bots int, strategy BotStrategy) *Game {
	t.Helper()
	cfg := DefaultConfig()
	var participants []*Participant
	for i := 0; i < humans; i++ {
		participants = append(participants, NewParticipant(
			string(rune('A'+i)), "Human"+string(rune('1'+i)), "boot", KindHuman, cfg.StartingBalance))
	}
	for i := 0; i < bots; i++ {
		participants = append(participants, NewParticipant(
			string(rune('a'+i)), "Bot"+string(rune('1'+i)), "cat", KindBot, cfg.StartingBalance))
	}
	return NewGame(participants, cfg, strategy)
}

func TestMoveByPaysOriginReward(t *testing.T) {
	g := newGame(t, 2, 0, nil)
	p := g.Participants[0]
	p.Position = 39
	bankBefore := g.Bank.Balance

	g.moveBy(p, 4) // 39 -> 40 -> 1 -> 2 -> 3
	if p.Position != 3 {
		t.Fatalf("position: got %d, want 3", p.Position)
	}
	if !p.PassedOrigin {
		t.Error("crossing the origin should set the flag")
	}
	if p.Balance != 1500+g.Config.OriginReward {
		t.Errorf("balance: got %d, want %d", p.Balance, 1500+g.Config.OriginReward)
	}
	if g.Bank.Balance != bankBefore-g.Config.OriginReward {
		t.Errorf("bank should fund the reward, got %d", g.Bank.Balance)
	}
}

func TestMoveBackPaysNothing(t *testing.T) {
	g := newGame(t, 1, 0, nil)
	p := g.Participants[0]
	p.Position = 2

	g.moveBackBy(p, 4)
	if p.Position != 38 {
		t.Fatalf("position: got %d, want 38", p.Position)
	}
	if p.PassedOrigin || p.Balance != 1500 {
		t.Error("walking backwards through the origin must not pay")
	}
}

func TestMoveToWrapsForward(t *testing.T) {
	g := newGame(t, 1, 0, nil)
	p := g.Participants[0]
	p.Position = 25

	g.moveTo(p, 16) // has to lap the board
	if p.Position != 16 {
		t.Fatalf("position: got %d, want 16", p.Position)
	}
	if p.Balance != 1500+g.Config.OriginReward {
		t.Errorf("lapping the board should pay, balance %d", p.Balance)
	}
}

func TestTaxTileFillsPool(t *testing.T) {
	g := newGame(t, 2, 0, nil)
	p := g.Participants[0]
	p.Position = 5

	g.resolveTile(p, 7)
	if p.Balance != 1300 {
		t.Errorf("balance: got %d, want 1300", p.Balance)
	}
	if g.Bank.TaxPool != 200 {
		t.Errorf("tax pool: got %d, want 200", g.Bank.TaxPool)
	}
}

func TestFreeParkingPaysOutPool(t *testing.T) {
	g := newGame(t, 2, 0, nil)
	g.Bank.TaxPool = 275
	p := g.Participants[0]
	p.Position = FreeParkingPosition

	g.resolveTile(p, 7)
	if p.Balance != 1775 {
		t.Errorf("balance: got %d, want 1775", p.Balance)
	}
	if g.Bank.TaxPool != 0 {
		t.Errorf("pool should empty, got %d", g.Bank.TaxPool)
	}
}

func TestGoToJailTile(t *testing.T) {
	g := newGame(t, 2, 0, nil)
	p := g.Participants[0]
	p.Position = GoToJailPosition
	p.Doubles = 2

	g.resolveTile(p, 7)
	if !p.InJail || p.Position != JailPosition {
		t.Errorf("expected jail at %d, got in_jail=%v position=%d", JailPosition, p.InJail, p.Position)
	}
	if p.Doubles != 0 {
		t.Error("jail should end the doubles streak")
	}
}

func TestRentGoesToOwner(t *testing.T) {
	g := newGame(t, 2, 0, nil)
	visitor, owner := g.Participants[0], g.Participants[1]
	a := g.Bank.AssetAt(6)
	g.Bank.TransferAsset(a, owner)
	visitor.Position = 6

	g.resolveTile(visitor, 9)
	if visitor.Balance != 1500-25 {
		t.Errorf("visitor balance: got %d, want %d", visitor.Balance, 1475)
	}
	if owner.Balance != 1500+25 {
		t.Errorf("owner balance: got %d, want %d", owner.Balance, 1525)
	}
}

func TestNoRentOnOwnMortgagedOrJailedOwnerAsset(t *testing.T) {
	g := newGame(t, 2, 0, nil)
	visitor, owner := g.Participants[0], g.Participants[1]
	a := g.Bank.AssetAt(6)
	g.Bank.TransferAsset(a, owner)
	visitor.Position = 6

	a.Mortgaged = true
	g.resolveTile(visitor, 9)
	a.Mortgaged = false
	owner.InJail = true
	g.resolveTile(visitor, 9)
	owner.InJail = false

	g.Bank.TransferAsset(a, visitor)
	g.resolveTile(visitor, 9)

	if visitor.Balance != 1500 || owner.Balance != 1500 {
		t.Errorf("no rent should have moved: %d/%d", visitor.Balance, owner.Balance)
	}
}

func TestUnownedAssetBeforeFirstLapIsIgnored(t *testing.T) {
	g := newGame(t, 2, 0, nil)
	g.Phase = PhaseAwaitRoll
	p := g.Participants[0]
	p.Position = 2

	g.resolveTile(p, 7)
	if g.Phase != PhaseAwaitRoll {
		t.Errorf("no purchase offer before a first lap, phase %s", g.Phase)
	}
}

func TestUnownedAssetOffersPurchase(t *testing.T) {
	g := newGame(t, 2, 0, nil)
	g.Phase = PhaseAwaitRoll
	p := g.Participants[0]
	p.PassedOrigin = true
	p.Position = 2

	events := g.resolveTile(p, 7)
	if g.Phase != PhaseAwaitPurchase {
		t.Fatalf("expected AwaitPurchase, got %s", g.Phase)
	}
	found := false
	for _, e := range events {
		if e.Type == EventDecisionPending {
			found = true
		}
	}
	if !found {
		t.Error("expected a decision pending event")
	}
}

func TestCardRewardAndCharge(t *testing.T) {
	g := newGame(t, 2, 0, nil)
	p := g.Participants[0]
	before := g.Bank.Balance + g.Bank.TaxPool + p.Balance

	g.applyEffect(p, Effect{Kind: EffectReward, Amount: 100})
	if p.Balance != 1600 {
		t.Errorf("reward: got %d, want 1600", p.Balance)
	}
	g.applyEffect(p, Effect{Kind: EffectCharge, Amount: 30, Reason: "fine"})
	if p.Balance != 1570 {
		t.Errorf("charge: got %d, want 1570", p.Balance)
	}
	if g.Bank.Balance+g.Bank.TaxPool+p.Balance != before {
		t.Error("card effects must conserve money")
	}
}

func TestCardRepairsChargePerHouseAndHotel(t *testing.T) {
	g := newGame(t, 2, 0, nil)
	p := g.Participants[0]
	creek, paradise := g.Bank.AssetAt(2), g.Bank.AssetAt(4)
	g.Bank.TransferAsset(creek, p)
	g.Bank.TransferAsset(paradise, p)
	creek.Houses = 3
	paradise.Houses = 5 // hotel

	g.applyEffect(p, Effect{Kind: EffectRepairs, PerHouse: 40, PerHotel: 115, Reason: "repairs"})
	want := 1500 - (3*40 + 115)
	if p.Balance != want {
		t.Errorf("balance: got %d, want %d", p.Balance, want)
	}
	if g.Bank.TaxPool != 3*40+115 {
		t.Errorf("repairs should feed the tax pool, got %d", g.Bank.TaxPool)
	}
}

func TestCardJailToken(t *testing.T) {
	g := newGame(t, 1, 0, nil)
	p := g.Participants[0]
	g.applyEffect(p, Effect{Kind: EffectGrantJailToken})
	if p.JailTokens != 1 {
		t.Errorf("jail tokens: got %d, want 1", p.JailTokens)
	}
}

func TestDrawCardRecycles(t *testing.T) {
	g := newGame(t, 1, 0, nil)
	p := g.Participants[0]
	size := g.PotLuck.Len()
	front := g.PotLuck.Cards()[0]

	g.drawCard(p, g.PotLuck)
	if g.PotLuck.Len() != size {
		t.Fatalf("deck size changed: got %d, want %d", g.PotLuck.Len(), size)
	}
	cards := g.PotLuck.Cards()
	if cards[len(cards)-1].Text != front.Text {
		t.Error("drawn card should be recycled to the back")
	}
}

func TestIncurDebtPendsForHuman(t *testing.T) {
	g := newGame(t, 2, 0, nil)
	debtor, creditor := g.Participants[0], g.Participants[1]
	debtor.Balance = 50

	_, settled := g.incurDebt(debtor, creditor.ID, false, 400, "rent")
	if settled {
		t.Fatal("an unaffordable debt must not settle")
	}
	if g.Phase != PhaseAwaitDebt {
		t.Fatalf("expected AwaitDebt, got %s", g.Phase)
	}
	if g.PendingDebt == nil || g.PendingDebt.Amount != 400 || g.PendingDebt.DebtorID != debtor.ID {
		t.Errorf("pending debt: %+v", g.PendingDebt)
	}
	if debtor.Balance != 50 {
		t.Error("no partial payment may happen")
	}
}

type sellEverything struct{}

func (sellEverything) Bid(p *Participant, highest int, a *Asset) (int, bool) { return 0, false }
func (sellEverything) Buy(p *Participant, a *Asset) bool                     { return false }
func (sellEverything) PayJailFine(p *Participant, fine int) bool             { return false }
func (sellEverything) LiquidationOrder(p *Participant) []*Asset {
	return append([]*Asset(nil), p.Assets...)
}

func TestIncurDebtLiquidatesBot(t *testing.T) {
	g := newGame(t, 1, 1, sellEverything{})
	bot := g.Participants[1]
	creditor := g.Participants[0]
	a := g.Bank.AssetAt(20) // Broyles Lane, £200
	g.Bank.TransferAsset(a, bot)
	bot.Balance = 50

	_, settled := g.incurDebt(bot, creditor.ID, false, 180, "rent")
	if !settled {
		t.Fatal("the bot could cover the debt by selling")
	}
	if a.Owner == bot {
		t.Error("the asset should have been liquidated")
	}
	if bot.Bankrupt {
		t.Error("a solvent bot must not go bankrupt")
	}
	if creditor.Balance != 1500+180 {
		t.Errorf("creditor balance: got %d, want %d", creditor.Balance, 1680)
	}
}

func TestIncurDebtBankruptsBrokeBot(t *testing.T) {
	g := newGame(t, 1, 1, sellEverything{})
	bot := g.Participants[1]
	creditor := g.Participants[0]
	bot.Balance = 10

	_, settled := g.incurDebt(bot, creditor.ID, false, 999, "rent")
	if settled {
		t.Fatal("an uncoverable debt must not settle")
	}
	if !bot.Bankrupt {
		t.Fatal("the bot should be bankrupt")
	}
	if creditor.Balance != 1510 {
		t.Errorf("creditor should receive the remains, got %d", creditor.Balance)
	}
	if g.Phase != PhaseGameOver {
		t.Errorf("one participant left, expected GameOver, got %s", g.Phase)
	}
}

func TestBotLiquidationPrefersMortgageOverSale(t *testing.T) {
	g := newGame(t, 1, 1, sellEverything{})
	bot := g.Participants[1]
	a := g.Bank.AssetAt(20) // £200, mortgage raises £100
	g.Bank.TransferAsset(a, bot)
	bot.Balance = 0

	g.liquidate(bot, 90)
	if a.Owner != bot || !a.Mortgaged {
		t.Error("a small debt should be covered by mortgaging, not selling")
	}
	if bot.Balance != 100 {
		t.Errorf("balance: got %d, want 100", bot.Balance)
	}
}

func TestJailChoicePayFine(t *testing.T) {
	g := newGame(t, 2, 0, nil)
	p := g.Participants[0]
	g.Phase = PhaseAwaitJail
	p.InJail = true
	p.JailTurns = 1

	if _, err := g.Apply(p.ID, Action{Type: ActionJailChoice, Choice: JailPayFine}); err != nil {
		t.Fatalf("pay fine error: %v", err)
	}
	if p.InJail || p.JailTurns != 0 {
		t.Error("paying the fine should free the participant")
	}
	if p.Balance != 1500-g.Config.JailFine {
		t.Errorf("balance: got %d, want %d", p.Balance, 1500-g.Config.JailFine)
	}
	if g.Bank.TaxPool != g.Config.JailFine {
		t.Errorf("fine should feed the tax pool, got %d", g.Bank.TaxPool)
	}
	if g.Phase != PhaseAwaitRoll {
		t.Errorf("freed participant still rolls, phase %s", g.Phase)
	}
}

func TestJailChoiceToken(t *testing.T) {
	g := newGame(t, 2, 0, nil)
	p := g.Participants[0]
	g.Phase = PhaseAwaitJail
	p.InJail = true
	p.JailTokens = 1

	if _, err := g.Apply(p.ID, Action{Type: ActionJailChoice, Choice: JailUseToken}); err != nil {
		t.Fatalf("use token error: %v", err)
	}
	if p.InJail || p.JailTokens != 0 {
		t.Error("token should be spent to leave jail")
	}

	if _, err := g.Apply(p.ID, Action{Type: ActionJailChoice, Choice: JailUseToken}); err != ErrWrongPhase {
		t.Errorf("expected ErrWrongPhase after leaving, got %v", err)
	}
}

func TestJailChoiceWaitAdvancesTurn(t *testing.T) {
	g := newGame(t, 2, 0, nil)
	p := g.Participants[0]
	g.Phase = PhaseAwaitJail
	p.InJail = true

	if _, err := g.Apply(p.ID, Action{Type: ActionJailChoice, Choice: JailWait}); err != nil {
		t.Fatalf("wait error: %v", err)
	}
	if !p.InJail || p.JailTurns != 1 {
		t.Errorf("waiting keeps the participant in jail, turns %d", p.JailTurns)
	}
	if g.Current() != g.Participants[1] {
		t.Error("waiting ends the turn")
	}
}

func TestSendToJailResetsState(t *testing.T) {
	g := newGame(t, 1, 0, nil)
	p := g.Participants[0]
	p.Position = 31
	p.Doubles = 1

	g.sendToJail(p)
	if !p.InJail || p.Position != JailPosition || p.Doubles != 0 || p.JailTurns != 0 {
		t.Errorf("jail entry state wrong: %+v", p)
	}
}

func TestViewReportsPendingDecision(t *testing.T) {
	g := newGame(t, 2, 0, nil)
	g.Start()
	v := g.View()
	if v.Decision == nil || v.Decision.Kind != "roll" || v.Decision.ParticipantID != g.Participants[0].ID {
		t.Errorf("decision view: %+v", v.Decision)
	}
	if len(v.Assets) != 29 {
		t.Errorf("asset views: got %d, want 29", len(v.Assets))
	}
	if v.BankBalance != g.Bank.Balance {
		t.Error("view should mirror the bank balance")
	}
}

func TestMoveEmitsAStepPerTile(t *testing.T) {
	g := newGame(t, 1, 0, nil)
	p := g.Participants[0]
	p.Position = 39

	var steps []int
	for _, e := range g.moveBy(p, 4) {
		if e.Type == EventMoved {
			steps = append(steps, e.Data.(map[string]interface{})["position"].(int))
		}
	}
	want := []int{40, 1, 2, 3}
	if len(steps) != len(want) {
		t.Fatalf("step events: got %v, want %v", steps, want)
	}
	for i := range want {
		if steps[i] != want[i] {
			t.Fatalf("step %d: got %d, want %d", i, steps[i], want[i])
		}
	}

	steps = steps[:0]
	for _, e := range g.moveBackBy(p, 3) {
		if e.Type == EventMoved {
			steps = append(steps, e.Data.(map[string]interface{})["position"].(int))
		}
	}
	if len(steps) != 3 || steps[2] != 40 {
		t.Errorf("backward steps: got %v, want three ending at 40", steps)
	}
}

func TestBotJailTurnSpendsTokenFirst(t *testing.T) {
	g := newGame(t, 1, 1, sellEverything{})
	b := g.Participants[1]
	g.Phase = PhaseAwaitRoll
	g.CurrentIndex = 1
	b.InJail = true
	b.Position = JailPosition
	b.JailTokens = 1

	events := g.botJailTurn(b)
	var how string
	for _, e := range events {
		if e.Type == EventJailLeft {
			how = e.Data.(map[string]interface{})["how"].(string)
			break
		}
	}
	if how != "token" {
		t.Errorf("a held token is used before anything else, got %q", how)
	}
	if b.TurnsTaken != 1 {
		t.Errorf("the freed bot plays its roll, turns %d", b.TurnsTaken)
	}
}

func TestBotThirdJailAttemptFreesWithoutFine(t *testing.T) {
	g := newGame(t, 1, 1, sellEverything{}) // refuses to pay the fine
	b := g.Participants[1]
	g.Phase = PhaseAwaitRoll
	g.CurrentIndex = 1
	b.InJail = true
	b.Position = JailPosition
	b.JailTurns = g.Config.MaxJailAttempts - 1

	events := g.botJailTurn(b)
	var how string
	for _, e := range events {
		if e.Type == EventJailLeft {
			how = e.Data.(map[string]interface{})["how"].(string)
			break
		}
	}
	if how != "roll" {
		t.Errorf("the last attempt frees by roll, got %q", how)
	}
	if g.Bank.TaxPool != 0 {
		t.Errorf("a forced release charges no fine, pool %d", g.Bank.TaxPool)
	}
	if b.Position == JailPosition && !b.InJail {
		t.Error("the released bot moves with the roll it threw")
	}
}
