package brackets

import "fmt"

func makeTeams(n int) []Team {
	teams := make([]Team, n)
	for i := range teams {
		teams[i] = Team{ID: fmt.Sprintf("t%d", i+1), Name: fmt.Sprintf("Team %d", i+1)}
	}
	return teams
}

func emptySlots(matches []Match) int {
	count := 0
	for _, m := range matches {
		if m.Team1 == nil {
			count++
		}
		if m.Team2 == nil {
			count++
		}
	}
	return count
}

func pairKey(m Match) string {
	a, b := m.Team1.ID, m.Team2.ID
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}
