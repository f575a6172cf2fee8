package engine

// GameConfig holds configuration for creating a new game.
type GameConfig struct {
	StartingBalance int    // per-participant starting money (default 1500)
	BankBalance     int    // bank reserve at game start (default 50000)
	OriginReward    int    // paid for each crossing of GO (default 200)
	JailFine        int    // cost of buying out of jail (default 50)
	MaxJailAttempts int    // failed doubles attempts before release (default 3)
	Seed            uint64 // dice and shuffle seed; 0 means time-based
}

func DefaultConfig() GameConfig {
	return GameConfig{
		StartingBalance: 1500,
		BankBalance:     50000,
		OriginReward:    200,
		JailFine:        50,
		MaxJailAttempts: 3,
	}
}
