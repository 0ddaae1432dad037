package brackets

import "fmt"

type SingleEliminationGenerator struct{}

func NewSingleEliminationGenerator() BracketGenerator {
	return &SingleEliminationGenerator{}
}

func (g *SingleEliminationGenerator) GetName() string {
	return "SingleElimination"
}

func (g *SingleEliminationGenerator) Generate(params GenerateParams) (*Plan, error) {
	return BuildSingleElimination(params.Teams, params.Rand)
}

// BuildSingleElimination pads teams with byes up to the next power of two,
// shuffles teams and byes together, and pairs consecutive slots into the
// first round. Later rounds hold empty placeholder matches for the winners.
//
// Byes land wherever the shuffle puts them, so two byes can meet in the
// first round and a seeded team is not guaranteed a bye.
// A single team has no rounds to play and is returned as the champion.
func BuildSingleElimination(teams []Team, rng Rand) (*Plan, error) {
	n := len(teams)
	if n < 1 {
		return nil, fmt.Errorf("%w: single elimination needs at least 1 team, got %d", ErrInvalidTeamCount, n)
	}
	if err := checkDistinct(teams); err != nil {
		return nil, err
	}
	if n == 1 {
		champion := teams[0]
		return &Plan{Kind: KindSingleElimination, Rounds: []Round{}, Champion: &champion}, nil
	}
	if rng == nil {
		rng = defaultRand()
	}

	size := NextPowerOfTwo(n)
	slots := make([]*Team, size)
	for i := range teams {
		t := teams[i]
		slots[i] = &t
	}
	rng.Shuffle(size, func(i, j int) {
		slots[i], slots[j] = slots[j], slots[i]
	})

	rounds := make([]Round, 0, roundCount(size))
	for current := size; current > 1; current /= 2 {
		round := Round{
			Name:    PhaseName(current),
			Size:    current,
			Matches: make([]Match, current/2),
		}
		for i := range round.Matches {
			round.Matches[i].Number = i + 1
		}
		if current == size {
			for i := 0; i < size; i += 2 {
				round.Matches[i/2].Team1 = slots[i]
				round.Matches[i/2].Team2 = slots[i+1]
			}
		}
		rounds = append(rounds, round)
	}

	return &Plan{Kind: KindSingleElimination, Rounds: rounds}, nil
}

func roundCount(size int) int {
	count := 0
	for size > 1 {
		size >>= 1
		count++
	}
	return count
}
