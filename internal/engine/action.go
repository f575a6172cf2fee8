package engine

// ActionType identifies participant actions sent to Game.Apply.
type ActionType string

const (
	ActionRoll         ActionType = "roll"          // roll the dice and move
	ActionBuy          ActionType = "buy"           // buy the tile just landed on
	ActionDecline      ActionType = "decline"       // decline the purchase, triggering an auction
	ActionBid          ActionType = "bid"           // place an auction bid
	ActionExitAuction  ActionType = "exit_auction"  // leave the auction permanently
	ActionJailChoice   ActionType = "jail_choice"   // pick a way out of jail
	ActionBuild        ActionType = "build"         // build houses on an owned asset
	ActionSellHouses   ActionType = "sell_houses"   // sell houses back to the bank
	ActionMortgage     ActionType = "mortgage"      // mortgage an owned asset
	ActionUnmortgage   ActionType = "unmortgage"    // clear a mortgage
	ActionSellProperty ActionType = "sell_property" // sell an owned asset to the bank
	ActionPayDebt      ActionType = "pay_debt"      // settle the pending debt
	ActionBankruptcy   ActionType = "bankruptcy"    // give up and declare bankruptcy
)

// JailChoice enumerates the ways out of jail.
type JailChoice string

const (
	JailRoll     JailChoice = "roll"      // try for doubles
	JailPayFine  JailChoice = "pay_fine"  // pay the fine and roll normally
	JailUseToken JailChoice = "use_token" // spend a held jail token
	JailWait     JailChoice = "wait"      // stay put this turn
)

// Action is a participant's input to the state machine.
type Action struct {
	Type ActionType `json:"type"`
	// Params depend on Type:
	// bid: Amount
	// build / sell_houses: Position, Count
	// mortgage / unmortgage / sell_property: Position
	// jail_choice: Choice
	Amount   int        `json:"amount,omitempty"`
	Position int        `json:"position,omitempty"`
	Count    int        `json:"count,omitempty"`
	Choice   JailChoice `json:"choice,omitempty"`
}

// EventType identifies events emitted by the engine.
type EventType string

const (
	EventGameStarted     EventType = "game_started"
	EventDiceRolled      EventType = "dice_rolled"
	EventMoved           EventType = "moved"
	EventPassedOrigin    EventType = "passed_origin"
	EventLanded          EventType = "landed"
	EventPropertyBought  EventType = "property_bought"
	EventPropertySold    EventType = "property_sold"
	EventHousesBuilt     EventType = "houses_built"
	EventHousesSold      EventType = "houses_sold"
	EventMortgaged       EventType = "mortgaged"
	EventUnmortgaged     EventType = "unmortgaged"
	EventRentPaid        EventType = "rent_paid"
	EventTaxPaid         EventType = "tax_paid"
	EventTaxPoolPaidOut  EventType = "tax_pool_paid_out"
	EventCardDrawn       EventType = "card_drawn"
	EventJailEntered     EventType = "jail_entered"
	EventJailLeft        EventType = "jail_left"
	EventAuctionStarted  EventType = "auction_started"
	EventBidPlaced       EventType = "bid_placed"
	EventBidderLeft      EventType = "bidder_left"
	EventAuctionWon      EventType = "auction_won"
	EventDebtIncurred    EventType = "debt_incurred"
	EventDebtSettled     EventType = "debt_settled"
	EventBankruptcy      EventType = "bankruptcy"
	EventTurnAdvanced    EventType = "turn_advanced"
	EventGameOver        EventType = "game_over"
	EventPhaseChange     EventType = "phase_change"
	EventDecisionPending EventType = "decision_pending"
)

// Event is emitted by the engine after state changes.
type Event struct {
	Type        EventType   `json:"type"`
	Participant string      `json:"participant,omitempty"`
	Data        interface{} `json:"data,omitempty"`
}

// BotStrategy supplies the deterministic decisions bots make at each
// boundary where a human would be prompted. Implementations must be pure
// functions of the arguments so games replay exactly.
type BotStrategy interface {
	// Bid returns the bot's bid given the running highest bid, or ok=false
	// to leave the auction.
	Bid(p *Participant, highestBid int, a *Asset) (bid int, ok bool)
	// Buy reports whether the bot purchases the unowned asset it landed on.
	Buy(p *Participant, a *Asset) bool
	// PayJailFine reports whether the bot buys its way out of jail.
	PayJailFine(p *Participant, fine int) bool
	// LiquidationOrder returns the order in which the bot sells itself out
	// of debt.
	LiquidationOrder(p *Participant) []*Asset
}
