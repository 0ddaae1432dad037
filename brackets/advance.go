package brackets

import "fmt"

// Advance records winnerID as the winner of one match and returns the updated
// plan; p itself is left untouched.
//
// For single elimination roundIndex selects the round and the winner moves
// into the matching slot of the next round (even matches feed Team1, odd
// matches feed Team2). Winning the last round sets Plan.Champion. A winner
// whose next opponent slot can never be filled moves on again at once.
// For group stages roundIndex selects the group; for round robin it must be 0.
// Neither of those kinds moves teams anywhere.
func Advance(p *Plan, roundIndex, matchIndex int, winnerID string) (*Plan, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil plan", ErrUnsupportedBracketKind)
	}
	matches, err := matchesAt(p, roundIndex)
	if err != nil {
		return nil, err
	}
	if matchIndex < 0 || matchIndex >= len(matches) {
		return nil, fmt.Errorf("%w: match %d (have %d)", ErrMatchOutOfRange, matchIndex, len(matches))
	}
	if winnerID == "" {
		return nil, ErrWinnerRequired
	}
	m := matches[matchIndex]
	if m.Decided() {
		return nil, fmt.Errorf("%w: match %d already won by %q", ErrMatchAlreadyDecided, m.Number, m.Winner.ID)
	}
	if !m.Has(winnerID) {
		return nil, fmt.Errorf("%w: %q in match %d", ErrWinnerNotInMatch, winnerID, m.Number)
	}
	if p.Kind == KindSingleElimination && m.IsBye() {
		dead1, dead2 := deadSlots(voidMatches(p), roundIndex, matchIndex, m)
		if (m.Team1 == nil && !dead1) || (m.Team2 == nil && !dead2) {
			return nil, fmt.Errorf("%w: match %d is still waiting for an opponent", ErrMatchNotReady, m.Number)
		}
	}
	winner := m.Team1
	if winner == nil || winner.ID != winnerID {
		winner = m.Team2
	}

	out := p.Clone()
	switch out.Kind {
	case KindSingleElimination:
		promote(out, roundIndex, matchIndex, winner)
		settle(out, nil)
	case KindGroups:
		out.Groups[roundIndex].Matches[matchIndex].Winner = winner
	case KindRoundRobin:
		out.Matches[matchIndex].Winner = winner
	}
	return out, nil
}

func matchesAt(p *Plan, index int) ([]Match, error) {
	switch p.Kind {
	case KindSingleElimination:
		if index < 0 || index >= len(p.Rounds) {
			return nil, fmt.Errorf("%w: round %d (have %d)", ErrMatchOutOfRange, index, len(p.Rounds))
		}
		return p.Rounds[index].Matches, nil
	case KindGroups:
		if index < 0 || index >= len(p.Groups) {
			return nil, fmt.Errorf("%w: group %d (have %d)", ErrMatchOutOfRange, index, len(p.Groups))
		}
		return p.Groups[index].Matches, nil
	case KindRoundRobin:
		if index != 0 {
			return nil, fmt.Errorf("%w: round robin has a single round, got %d", ErrMatchOutOfRange, index)
		}
		return p.Matches, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBracketKind, p.Kind)
	}
}

// promote sets the winner of a single elimination match and carries it forward.
func promote(p *Plan, r, i int, winner *Team) {
	p.Rounds[r].Matches[i].Winner = winner
	if r == len(p.Rounds)-1 {
		p.Champion = winner
		return
	}
	next := &p.Rounds[r+1].Matches[i/2]
	if i%2 == 0 {
		next.Team1 = winner
	} else {
		next.Team2 = winner
	}
}

// AdvanceByes moves every team whose opponent slot can never be filled into
// the next round. A first-round slot without a team is a bye; a later slot is
// dead when the match feeding it had byes on both sides.
// Plans of other kinds are returned as an unchanged copy.
func AdvanceByes(p *Plan) *Plan {
	out := p.Clone()
	if out == nil || out.Kind != KindSingleElimination {
		return out
	}
	settle(out, nil)
	return out
}

// Simulate decides every open match at random using rng. Byes are advanced
// first so that simulated winners can flow all the way to the final.
func Simulate(p *Plan, rng Rand) (*Plan, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil plan", ErrUnsupportedBracketKind)
	}
	if rng == nil {
		rng = defaultRand()
	}
	pick := func(m Match) *Team {
		if rng.IntN(2) == 0 {
			return m.Team1
		}
		return m.Team2
	}

	out := p.Clone()
	switch out.Kind {
	case KindSingleElimination:
		settle(out, pick)
	case KindGroups:
		for g := range out.Groups {
			decideAll(out.Groups[g].Matches, pick)
		}
	case KindRoundRobin:
		decideAll(out.Matches, pick)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBracketKind, out.Kind)
	}
	return out, nil
}

func decideAll(matches []Match, pick func(Match) *Team) {
	for i := range matches {
		m := &matches[i]
		if m.Winner == nil && m.Team1 != nil && m.Team2 != nil {
			m.Winner = pick(*m)
		}
	}
}

// voidMatches marks, per round, the matches that can never produce a winner
// because byes fill every slot feeding them.
func voidMatches(p *Plan) [][]bool {
	void := make([][]bool, len(p.Rounds))
	for r := range p.Rounds {
		void[r] = make([]bool, len(p.Rounds[r].Matches))
		for i, m := range p.Rounds[r].Matches {
			dead1, dead2 := deadSlots(void, r, i, m)
			void[r][i] = dead1 && dead2
		}
	}
	return void
}

func deadSlots(void [][]bool, r, i int, m Match) (bool, bool) {
	if r == 0 {
		return m.Team1 == nil, m.Team2 == nil
	}
	return void[r-1][2*i], void[r-1][2*i+1]
}

// settle walks the rounds in order, advancing byes and, when pick is set,
// deciding matches where both teams are known.
func settle(p *Plan, pick func(Match) *Team) {
	void := voidMatches(p)
	for r := range p.Rounds {
		for i := range p.Rounds[r].Matches {
			m := p.Rounds[r].Matches[i]
			if void[r][i] || m.Winner != nil {
				continue
			}
			dead1, dead2 := deadSlots(void, r, i, m)

			var winner *Team
			switch {
			case dead2 && m.Team1 != nil:
				winner = m.Team1
			case dead1 && m.Team2 != nil:
				winner = m.Team2
			case pick != nil && m.Team1 != nil && m.Team2 != nil:
				winner = pick(m)
			}
			if winner != nil {
				promote(p, r, i, winner)
			}
		}
	}
}
