package brackets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRoundRobin_FiveTeams(t *testing.T) {
	plan, err := BuildRoundRobin(makeTeams(5))
	require.NoError(t, err)

	require.Equal(t, KindRoundRobin, plan.Kind)
	require.Len(t, plan.Matches, 10)

	appearances := map[string]int{}
	for _, m := range plan.Matches {
		appearances[m.Team1.ID]++
		appearances[m.Team2.ID]++
	}
	require.Len(t, appearances, 5)
	for id, count := range appearances {
		assert.Equal(t, 4, count, "team %s", id)
	}
}

func TestBuildRoundRobin_PairsEveryTeamOnce(t *testing.T) {
	for n := 2; n <= 30; n++ {
		plan, err := BuildRoundRobin(makeTeams(n))
		require.NoError(t, err)
		require.Len(t, plan.Matches, n*(n-1)/2, "n=%d", n)

		pairs := map[string]bool{}
		for i, m := range plan.Matches {
			assert.Equal(t, i+1, m.Number)
			assert.NotEqual(t, m.Team1.ID, m.Team2.ID)
			key := pairKey(m)
			assert.False(t, pairs[key], "duplicate pair %s", key)
			pairs[key] = true
		}
	}
}

func TestBuildRoundRobin_KeepsInputOrder(t *testing.T) {
	plan, err := BuildRoundRobin(makeTeams(4))
	require.NoError(t, err)

	var got [][2]string
	for _, m := range plan.Matches {
		got = append(got, [2]string{m.Team1.ID, m.Team2.ID})
	}
	assert.Equal(t, [][2]string{
		{"t1", "t2"}, {"t1", "t3"}, {"t1", "t4"},
		{"t2", "t3"}, {"t2", "t4"},
		{"t3", "t4"},
	}, got)
}

func TestBuildRoundRobin_Rejections(t *testing.T) {
	_, err := BuildRoundRobin(makeTeams(1))
	assert.ErrorIs(t, err, ErrInvalidTeamCount)

	_, err = BuildRoundRobin([]Team{{ID: "a"}, {ID: "a"}})
	assert.ErrorIs(t, err, ErrDuplicateTeam)
}
