package engine

// Kind distinguishes human participants from bots.
type Kind int

const (
	KindHuman Kind = 0
	KindBot   Kind = 1
)

var kindNames = map[Kind]string{
	KindHuman: "Human",
	KindBot:   "Bot",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// Participant holds one player's state.
type Participant struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Token    string `json:"token"`
	Kind     Kind   `json:"kind"`
	Balance  int    `json:"balance"`
	Position int    `json:"position"` // board tile, 1..40

	Assets []*Asset `json:"-"` // bidirectional with Asset.Owner

	PassedOrigin bool `json:"passed_origin"`
	InJail       bool `json:"in_jail"`
	JailTurns    int  `json:"jail_turns"`
	JailTokens   int  `json:"jail_tokens"`
	Doubles      int  `json:"-"` // consecutive doubles this streak
	TurnsTaken   int  `json:"turns_taken"`
	Bankrupt     bool `json:"bankrupt"`
}

func NewParticipant(id, name, token string, kind Kind, balance int) *Participant {
	return &Participant{
		ID:       id,
		Name:     name,
		Token:    token,
		Kind:     kind,
		Balance:  balance,
		Position: OriginPosition,
	}
}

// OwnsGroup returns true if the participant owns every asset of the group.
func (p *Participant) OwnsGroup(group string) bool {
	return p.GroupCount(group) == groupSizes[group]
}

// GroupCount counts owned assets belonging to the given group.
func (p *Participant) GroupCount(group string) int {
	n := 0
	for _, a := range p.Assets {
		if a.Group == group {
			n++
		}
	}
	return n
}

// AddAsset links an asset to this participant. The asset must be unowned.
func (p *Participant) AddAsset(a *Asset) {
	a.Owner = p
	p.Assets = append(p.Assets, a)
}

// RemoveAsset unlinks an owned asset, returning true if it was held.
func (p *Participant) RemoveAsset(a *Asset) bool {
	for i, held := range p.Assets {
		if held == a {
			p.Assets = append(p.Assets[:i], p.Assets[i+1:]...)
			a.Owner = nil
			return true
		}
	}
	return false
}

// NetWorth is the participant's balance plus asset prices plus built houses.
func (p *Participant) NetWorth() int {
	total := p.Balance
	for _, a := range p.Assets {
		total += a.Price + a.Houses*a.HouseCost
	}
	return total
}
