package brackets

// Kind identifies the shape of a generated bracket.
type Kind string

const (
	KindSingleElimination Kind = "single_elimination"
	KindDoubleElimination Kind = "double_elimination"
	KindGroups            Kind = "groups"
	KindSwiss             Kind = "swiss"
	KindRoundRobin        Kind = "round_robin"
)

func (k Kind) Valid() bool {
	switch k {
	case KindSingleElimination, KindDoubleElimination, KindGroups, KindSwiss, KindRoundRobin:
		return true
	}
	return false
}

// Team is the read-only view of a registered team that the engine works with.
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Match pairs two optional slots. A nil slot is a bye or a winner still to be decided.
type Match struct {
	Number int   `json:"match_number"`
	Team1  *Team `json:"team1"`
	Team2  *Team `json:"team2"`
	Winner *Team `json:"winner,omitempty"`
}

// IsBye reports whether exactly one slot is filled.
func (m Match) IsBye() bool {
	return (m.Team1 == nil) != (m.Team2 == nil)
}

func (m Match) Decided() bool {
	return m.Winner != nil
}

// Has reports whether the team with the given id occupies one of the slots.
func (m Match) Has(teamID string) bool {
	return (m.Team1 != nil && m.Team1.ID == teamID) || (m.Team2 != nil && m.Team2.ID == teamID)
}

// Round is one stage of a single elimination bracket.
// Size is the number of slots entering the round.
type Round struct {
	Name    string  `json:"name"`
	Size    int     `json:"phase"`
	Matches []Match `json:"matches"`
}

// Group is a pool of teams playing every other member once.
type Group struct {
	Name    string  `json:"name"`
	Teams   []Team  `json:"teams"`
	Matches []Match `json:"matches"`
}

// Plan is the generated bracket. Kind selects which of Rounds, Groups or
// Matches is populated:
//
//	KindSingleElimination -> Rounds
//	KindGroups            -> Groups
//	KindRoundRobin        -> Matches
type Plan struct {
	Kind     Kind    `json:"type"`
	Rounds   []Round `json:"rounds,omitempty"`
	Groups   []Group `json:"groups,omitempty"`
	Matches  []Match `json:"matches,omitempty"`
	Champion *Team   `json:"champion,omitempty"`
}

// MatchCount returns the total number of matches in the plan.
func (p *Plan) MatchCount() int {
	total := len(p.Matches)
	for _, r := range p.Rounds {
		total += len(r.Matches)
	}
	for _, g := range p.Groups {
		total += len(g.Matches)
	}
	return total
}

// Clone returns a copy whose slices can be modified without touching p.
// Team values are shared since they are never mutated.
func (p *Plan) Clone() *Plan {
	if p == nil {
		return nil
	}
	out := &Plan{Kind: p.Kind, Champion: p.Champion}
	if p.Rounds != nil {
		out.Rounds = make([]Round, len(p.Rounds))
		for i, r := range p.Rounds {
			out.Rounds[i] = Round{Name: r.Name, Size: r.Size, Matches: cloneMatches(r.Matches)}
		}
	}
	if p.Groups != nil {
		out.Groups = make([]Group, len(p.Groups))
		for i, g := range p.Groups {
			teams := make([]Team, len(g.Teams))
			copy(teams, g.Teams)
			out.Groups[i] = Group{Name: g.Name, Teams: teams, Matches: cloneMatches(g.Matches)}
		}
	}
	out.Matches = cloneMatches(p.Matches)
	return out
}

func cloneMatches(in []Match) []Match {
	if in == nil {
		return nil
	}
	out := make([]Match, len(in))
	copy(out, in)
	return out
}
