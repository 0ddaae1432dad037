package brackets

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() BracketGenerator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) GetName() string {
	return "RoundRobin"
}

func (g *RoundRobinGenerator) Generate(params GenerateParams) (*Plan, error) {
	return BuildRoundRobin(params.Teams)
}

// BuildRoundRobin pairs every team with every later team, keeping the input
// order. Matches are numbered in the order they are produced.
func BuildRoundRobin(teams []Team) (*Plan, error) {
	if err := ValidateTeamCount(len(teams), KindRoundRobin, 0); err != nil {
		return nil, err
	}
	if err := checkDistinct(teams); err != nil {
		return nil, err
	}
	return &Plan{Kind: KindRoundRobin, Matches: allPairs(teams)}, nil
}

func allPairs(teams []Team) []Match {
	matches := make([]Match, 0, len(teams)*(len(teams)-1)/2)
	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			t1, t2 := teams[i], teams[j]
			matches = append(matches, Match{
				Number: len(matches) + 1,
				Team1:  &t1,
				Team2:  &t2,
			})
		}
	}
	return matches
}
