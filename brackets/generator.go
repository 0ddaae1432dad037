package brackets

import (
	"fmt"
	"math/rand/v2"
)

// DefaultGroupSize is the number of teams per group in group-stage brackets.
const DefaultGroupSize = 4

const minGroupStageTeams = 8

// Rand is the randomness the engine needs. *rand.Rand from math/rand/v2
// satisfies it; tests pass a seeded source.
type Rand interface {
	Shuffle(n int, swap func(i, j int))
	IntN(n int) int
}

// NewRand returns a PCG-backed source seeded with seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func defaultRand() Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

type fixedOrder struct {
	Rand
}

func (fixedOrder) Shuffle(int, func(i, j int)) {}

// KeepOrder wraps r so that shuffles leave the input order untouched.
// Draws made through IntN still use r.
func KeepOrder(r Rand) Rand {
	if r == nil {
		r = defaultRand()
	}
	return fixedOrder{Rand: r}
}

type GenerateParams struct {
	Teams     []Team
	Rand      Rand
	GroupSize int
}

type BracketGenerator interface {
	Generate(params GenerateParams) (*Plan, error)

	GetName() string
}

// NewGenerator returns the generator for kind. Double elimination and Swiss
// pairing are recognised but have no generator.
func NewGenerator(kind Kind) (BracketGenerator, error) {
	switch kind {
	case KindSingleElimination:
		return NewSingleEliminationGenerator(), nil
	case KindGroups:
		return NewGroupStageGenerator(), nil
	case KindRoundRobin:
		return NewRoundRobinGenerator(), nil
	case KindDoubleElimination, KindSwiss:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBracketKind, kind)
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrUnsupportedBracketKind, kind)
	}
}

// Validate reports whether teamCount fits the strict shape of kind, using
// DefaultGroupSize for group stages.
func Validate(teamCount int, kind Kind) bool {
	return ValidateTeamCount(teamCount, kind, DefaultGroupSize) == nil
}

// ValidateTeamCount is Validate with an explicit group size and a typed reason.
func ValidateTeamCount(teamCount int, kind Kind, groupSize int) error {
	switch kind {
	case KindSingleElimination:
		if teamCount <= 0 || !IsPowerOfTwo(teamCount) {
			return fmt.Errorf("%w: single elimination needs a power of two, got %d", ErrInvalidTeamCount, teamCount)
		}
	case KindGroups:
		if groupSize < 2 {
			return fmt.Errorf("%w: group size must be at least 2, got %d", ErrInvalidTeamCount, groupSize)
		}
		if teamCount < minGroupStageTeams || teamCount%groupSize != 0 {
			return fmt.Errorf("%w: groups need at least %d teams divisible by %d, got %d",
				ErrInvalidTeamCount, minGroupStageTeams, groupSize, teamCount)
		}
	case KindRoundRobin:
		if teamCount < 2 {
			return fmt.Errorf("%w: round robin needs at least 2 teams, got %d", ErrInvalidTeamCount, teamCount)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedBracketKind, kind)
	}
	return nil
}

func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// NextPowerOfTwo returns the smallest power of two >= n (1 for n <= 1).
func NextPowerOfTwo(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}

var phaseNames = map[int]string{
	16: "Round of 16",
	8:  "Quarterfinals",
	4:  "Semifinals",
	2:  "Final",
}

// PhaseName labels a single elimination round by the number of slots entering it.
func PhaseName(slots int) string {
	if name, ok := phaseNames[slots]; ok {
		return name
	}
	return fmt.Sprintf("Round of %d", slots)
}

func checkDistinct(teams []Team) error {
	seen := make(map[string]struct{}, len(teams))
	for _, t := range teams {
		if _, ok := seen[t.ID]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateTeam, t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return nil
}
