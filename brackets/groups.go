package brackets

import "fmt"

type GroupStageGenerator struct{}

func NewGroupStageGenerator() BracketGenerator {
	return &GroupStageGenerator{}
}

func (g *GroupStageGenerator) GetName() string {
	return "Groups"
}

func (g *GroupStageGenerator) Generate(params GenerateParams) (*Plan, error) {
	size := params.GroupSize
	if size == 0 {
		size = DefaultGroupSize
	}
	return BuildGroups(params.Teams, size, params.Rand)
}

// BuildGroups shuffles teams and splits them into len(teams)/groupSize groups
// named "Group A", "Group B", ... Every group plays a full round robin.
func BuildGroups(teams []Team, groupSize int, rng Rand) (*Plan, error) {
	if err := ValidateTeamCount(len(teams), KindGroups, groupSize); err != nil {
		return nil, err
	}
	if err := checkDistinct(teams); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = defaultRand()
	}

	shuffled := make([]Team, len(teams))
	copy(shuffled, teams)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	count := len(shuffled) / groupSize
	groups := make([]Group, count)
	for i := range groups {
		members := make([]Team, groupSize)
		copy(members, shuffled[i*groupSize:(i+1)*groupSize])
		groups[i] = Group{
			Name:    fmt.Sprintf("Group %s", groupLabel(i)),
			Teams:   members,
			Matches: allPairs(members),
		}
	}

	return &Plan{Kind: KindGroups, Groups: groups}, nil
}

// groupLabel returns A..Z, then AA, AB, ... for larger tournaments.
func groupLabel(i int) string {
	label := ""
	for {
		label = string(rune('A'+i%26)) + label
		i = i/26 - 1
		if i < 0 {
			return label
		}
	}
}
