package report

import (
	"fmt"
	"io"

	"github.com/mauv0809/club-ladder/internal/ranking"
	"github.com/xuri/excelize/v2"
)

const ladderSheet = "Ladder"

var ladderHeader = []any{"Level", "Group", "Rank", "Player", "Points", "Played", "Won"}

// WriteLadderXLSX writes the standings as a workbook with one row per player,
// grouped by tier.
func WriteLadderXLSX(w io.Writer, standings []ranking.GroupStanding) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), ladderSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(ladderSheet, "A1", &ladderHeader); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(ladderSheet, "A1", "G1", bold); err != nil {
		return err
	}

	row := 2
	for _, s := range standings {
		for rank, p := range s.Players {
			axis, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			values := []any{s.Group.Level, s.Group.Name, rank + 1, p.Name, p.Score, p.MatchesPlayed, p.MatchesWon}
			if err := f.SetSheetRow(ladderSheet, axis, &values); err != nil {
				return err
			}
			row++
		}
	}
	if err := f.SetColWidth(ladderSheet, "B", "B", 20); err != nil {
		return err
	}
	if err := f.SetColWidth(ladderSheet, "D", "D", 24); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
