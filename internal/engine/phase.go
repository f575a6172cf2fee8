package engine

// GamePhase represents the current phase of the game state machine.
type GamePhase int

const (
	PhaseLobby         GamePhase = iota // waiting for players
	PhaseAwaitRoll                      // current participant must roll
	PhaseAwaitJail                      // jailed human choosing how to leave
	PhaseAwaitPurchase                  // human deciding whether to buy the landed tile
	PhaseAuction                        // auction running, waiting on a human bid
	PhaseAwaitDebt                      // human raising funds to cover a debt
	PhaseGameOver                       // game finished
)

var phaseNames = map[GamePhase]string{
	PhaseLobby:         "Lobby",
	PhaseAwaitRoll:     "AwaitRoll",
	PhaseAwaitJail:     "AwaitJail",
	PhaseAwaitPurchase: "AwaitPurchase",
	PhaseAuction:       "Auction",
	PhaseAwaitDebt:     "AwaitDebt",
	PhaseGameOver:      "GameOver",
}

func (p GamePhase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "Unknown"
}
