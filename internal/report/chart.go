package report

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/mauv0809/club-ladder/internal/ranking"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoPlayers is returned when a chart is requested for an empty group.
var ErrNoPlayers = errors.New("group has no players")

var (
	barColor       = drawing.ColorFromHex("2e7d32")
	promotionColor = drawing.ColorFromHex("1565c0")
	demotionColor  = drawing.ColorFromHex("c62828")
)

// GroupChartPNG renders the group's standing as a bar chart of points, best
// first. In a full group the promotion and demotion places are coloured.
func GroupChartPNG(standing ranking.GroupStanding) ([]byte, error) {
	if len(standing.Players) == 0 {
		return nil, ErrNoPlayers
	}

	maxPoints := 1
	bars := make([]chart.Value, len(standing.Players))
	for i, p := range standing.Players {
		maxPoints = max(maxPoints, p.Score)
		bars[i] = chart.Value{
			Label: p.Name,
			Value: float64(p.Score),
			Style: chart.Style{
				FillColor:   placeColor(i, len(standing.Players)),
				StrokeColor: placeColor(i, len(standing.Players)),
			},
		}
	}

	graph := chart.BarChart{
		Title:      fmt.Sprintf("%s (level %d)", standing.Group.Name, standing.Group.Level),
		Width:      160 * len(bars),
		Height:     400,
		BarWidth:   80,
		BarSpacing: 40,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		YAxis: chart.YAxis{
			Name: "Points",
			// An explicit range keeps an all-zero group renderable.
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxPoints)},
		},
		Bars: bars,
	}
	if graph.Width < 480 {
		graph.Width = 480
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buffer.Bytes(), nil
}

func placeColor(rank, size int) drawing.Color {
	if size != ranking.GroupSize {
		return barColor
	}
	switch {
	case rank < 2:
		return promotionColor
	case rank > 2:
		return demotionColor
	}
	return barColor
}
