package report

import (
	"bytes"
	"testing"

	"github.com/mauv0809/club-ladder/internal/ranking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func standings() []ranking.GroupStanding {
	return []ranking.GroupStanding{
		{
			Group: ranking.Group{ID: "g1", Name: "Champions", Level: 1},
			Players: []ranking.Player{
				{Name: "Ana", Score: 9, MatchesPlayed: 3, MatchesWon: 3},
				{Name: "Bea", Score: 5, MatchesPlayed: 3, MatchesWon: 1},
			},
		},
		{
			Group:   ranking.Group{ID: "g2", Name: "Challengers", Level: 2},
			Players: []ranking.Player{{Name: "Cat"}},
		},
	}
}

func TestGroupChartPNG(t *testing.T) {
	png, err := GroupChartPNG(standings()[0])
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")), "output should be a PNG")

	t.Run("all zero scores", func(t *testing.T) {
		png, err := GroupChartPNG(standings()[1])
		require.NoError(t, err)
		assert.NotEmpty(t, png)
	})

	t.Run("empty group", func(t *testing.T) {
		_, err := GroupChartPNG(ranking.GroupStanding{Group: ranking.Group{Name: "Empty"}})
		assert.ErrorIs(t, err, ErrNoPlayers)
	})
}

func TestPlaceColor(t *testing.T) {
	assert.Equal(t, promotionColor, placeColor(1, ranking.GroupSize))
	assert.Equal(t, barColor, placeColor(2, ranking.GroupSize))
	assert.Equal(t, demotionColor, placeColor(4, ranking.GroupSize))
	assert.Equal(t, barColor, placeColor(0, 4), "off-size groups have no transition places")
}

func TestWriteLadderXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLadderXLSX(&buf, standings()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ladderSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Level", "Group", "Rank", "Player", "Points", "Played", "Won"}, rows[0])
	assert.Equal(t, []string{"1", "Champions", "1", "Ana", "9", "3", "3"}, rows[1])
	assert.Equal(t, []string{"1", "Champions", "2", "Bea", "5", "3", "1"}, rows[2])
	assert.Equal(t, []string{"2", "Challengers", "1", "Cat", "0", "0", "0"}, rows[3])
}
