package notifier

import (
	"sync"

	"github.com/mauv0809/club-ladder/internal/ranking"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies
	SendTransitionSummaryFunc func(reports []*ranking.TransitionReport, dryRun bool) error
	SendMatchResultFunc       func(match ranking.Match, sideA, sideB ranking.Player, dryRun bool) error

	// Call records
	SendTransitionSummaryCalls []struct {
		Reports []*ranking.TransitionReport
		DryRun  bool
	}
	SendMatchResultCalls []struct {
		Match        ranking.Match
		SideA, SideB ranking.Player
	}
	FormatLadderResponseCalls        [][]ranking.GroupStanding
	FormatGroupResponseCalls         []ranking.GroupStanding
	FormatGroupNotFoundResponseCalls []string
}

var _ Notifier = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendTransitionSummaryCalls = nil
	m.SendMatchResultCalls = nil
	m.FormatLadderResponseCalls = nil
	m.FormatGroupResponseCalls = nil
	m.FormatGroupNotFoundResponseCalls = nil
}

func (m *Mock) SendTransitionSummary(reports []*ranking.TransitionReport, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendTransitionSummaryCalls = append(m.SendTransitionSummaryCalls, struct {
		Reports []*ranking.TransitionReport
		DryRun  bool
	}{reports, dryRun})
	if m.SendTransitionSummaryFunc != nil {
		return m.SendTransitionSummaryFunc(reports, dryRun)
	}
	return nil
}

func (m *Mock) SendMatchResult(match ranking.Match, sideA, sideB ranking.Player, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchResultCalls = append(m.SendMatchResultCalls, struct {
		Match        ranking.Match
		SideA, SideB ranking.Player
	}{match, sideA, sideB})
	if m.SendMatchResultFunc != nil {
		return m.SendMatchResultFunc(match, sideA, sideB, dryRun)
	}
	return nil
}

func (m *Mock) FormatLadderResponse(standings []ranking.GroupStanding) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FormatLadderResponseCalls = append(m.FormatLadderResponseCalls, standings)
	return "formatted_ladder", nil
}

func (m *Mock) FormatGroupResponse(standing ranking.GroupStanding) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FormatGroupResponseCalls = append(m.FormatGroupResponseCalls, standing)
	return "formatted_group", nil
}

func (m *Mock) FormatGroupNotFoundResponse(query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FormatGroupNotFoundResponseCalls = append(m.FormatGroupNotFoundResponseCalls, query)
	return "formatted_group_not_found", nil
}
