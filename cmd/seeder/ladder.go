package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/mauv0809/club-ladder/internal/ranking"
	"gopkg.in/yaml.v3"
)

// LadderFile is the YAML layout accepted by the seeder:
//
//	groups:
//	  - name: Champions
//	    level: 1
//	    players: [Ana, Bea, Cat, Dora, Eva]
type LadderFile struct {
	Groups []GroupSeed `yaml:"groups"`
}

type GroupSeed struct {
	Name    string   `yaml:"name"`
	Level   int      `yaml:"level"`
	Players []string `yaml:"players"`
}

func parseLadder(r io.Reader) (LadderFile, error) {
	var ladder LadderFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&ladder); err != nil {
		return LadderFile{}, fmt.Errorf("failed to decode ladder file: %w", err)
	}
	if err := ladder.validate(); err != nil {
		return LadderFile{}, err
	}
	return ladder, nil
}

func (l LadderFile) validate() error {
	levels := make(map[int]string, len(l.Groups))
	for _, g := range l.Groups {
		if strings.TrimSpace(g.Name) == "" {
			return fmt.Errorf("group at level %d has no name", g.Level)
		}
		if g.Level < 1 {
			return fmt.Errorf("group %s: level must be at least 1", g.Name)
		}
		if other, ok := levels[g.Level]; ok {
			return fmt.Errorf("groups %s and %s share level %d", other, g.Name, g.Level)
		}
		levels[g.Level] = g.Name
	}
	return nil
}

// fakeLadder builds n full groups with generated player names.
func fakeLadder(f *gofakeit.Faker, n int) LadderFile {
	var ladder LadderFile
	for level := 1; level <= n; level++ {
		g := GroupSeed{
			Name:  fmt.Sprintf("%s %s", f.Adjective(), f.Animal()),
			Level: level,
		}
		for range ranking.GroupSize {
			g.Players = append(g.Players, f.Name())
		}
		ladder.Groups = append(ladder.Groups, g)
	}
	return ladder
}

// fakeMatch draws two distinct members of a group and a result. Roughly one
// match in ten ends without a winner.
func fakeMatch(f *gofakeit.Faker, group ranking.Group, members []ranking.Player) (ranking.Match, bool) {
	if len(members) < 2 {
		return ranking.Match{}, false
	}
	i := f.IntRange(0, len(members)-1)
	j := f.IntRange(0, len(members)-2)
	if j >= i {
		j++
	}
	m := ranking.Match{
		SideAID: members[i].ID,
		SideBID: members[j].ID,
		GroupID: group.ID,
		Status:  ranking.StatusFinished,
	}
	switch roll := f.IntRange(1, 10); {
	case roll <= 5:
		m.WinnerID = m.SideAID
	case roll <= 9:
		m.WinnerID = m.SideBID
	}
	return m, true
}
