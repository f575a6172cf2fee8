package engine

import "sort"

// Standing holds the final ranking entry for one participant.
type Standing struct {
	ParticipantID string `json:"participant_id"`
	Name          string `json:"name"`
	NetWorth      int    `json:"net_worth"`
	Rank          int    `json:"rank"`
	Winner        bool   `json:"winner"`
}

// ComputeStandings ranks everyone by net worth, bankrupt participants at
// zero. Participants with equal net worth share a rank, so a timed game
// can end in a draw.
func (g *Game) ComputeStandings() []Standing {
	standings := make([]Standing, len(g.Participants))
	for i, p := range g.Participants {
		worth := 0
		if !p.Bankrupt {
			worth = p.NetWorth()
		}
		standings[i] = Standing{
			ParticipantID: p.ID,
			Name:          p.Name,
			NetWorth:      worth,
		}
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].NetWorth > standings[j].NetWorth
	})

	for i := range standings {
		if i > 0 && standings[i].NetWorth == standings[i-1].NetWorth {
			standings[i].Rank = standings[i-1].Rank
		} else {
			standings[i].Rank = i + 1
		}
		standings[i].Winner = standings[i].Rank == 1
	}
	return standings
}
