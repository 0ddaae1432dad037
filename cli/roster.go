package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/Dosada05/bracket-system/brackets"
)

type rosterFile struct {
	Teams []rosterTeam `toml:"team"`
}

type rosterTeam struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
}

// loadRoster reads a TOML roster of [[team]] tables. A team without an id
// gets its 1-based position in the file.
func loadRoster(path string) ([]brackets.Team, error) {
	var f rosterFile
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("roster %s has unknown keys: %s", path, strings.Join(keys, ", "))
	}

	teams := make([]brackets.Team, 0, len(f.Teams))
	for i, t := range f.Teams {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			return nil, fmt.Errorf("roster %s: team %d has no name", path, i+1)
		}
		id := strings.TrimSpace(t.ID)
		if id == "" {
			id = strconv.Itoa(i + 1)
		}
		teams = append(teams, brackets.Team{ID: id, Name: name})
	}
	return teams, nil
}
