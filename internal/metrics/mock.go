package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                 sync.Mutex
	matchesRecorded    int
	scoresRecomputed   int
	groupsProcessed    int
	promotions         int
	demotions          int
	transitionErrors   int
	ladderRunDurations []float64
	matchesImported    int
	slackNotifSent     int
	slackNotifFailed   int
	startupTime        float64
}

var _ Metrics = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		ladderRunDurations: make([]float64, 0),
	}
}

func (m *Mock) IncMatchesRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesRecorded++
}

func (m *Mock) IncScoresRecomputed(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scoresRecomputed += n
}

func (m *Mock) IncGroupsProcessed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.groupsProcessed++
}

func (m *Mock) AddPromotions(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.promotions += n
}

func (m *Mock) AddDemotions(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.demotions += n
}

func (m *Mock) IncTransitionErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transitionErrors++
}

func (m *Mock) ObserveLadderRunDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ladderRunDurations = append(m.ladderRunDurations, duration)
}

func (m *Mock) IncMatchesImported(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesImported += n
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// MatchesRecorded returns the number of times IncMatchesRecorded was called.
func (m *Mock) MatchesRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesRecorded
}

// ScoresRecomputed returns the summed IncScoresRecomputed counts.
func (m *Mock) ScoresRecomputed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scoresRecomputed
}

// GroupsProcessed returns the number of times IncGroupsProcessed was called.
func (m *Mock) GroupsProcessed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.groupsProcessed
}

func (m *Mock) Promotions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.promotions
}

func (m *Mock) Demotions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.demotions
}

func (m *Mock) TransitionErrors() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.transitionErrors
}

// LadderRuns returns the number of observed ladder run durations.
func (m *Mock) LadderRuns() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ladderRunDurations)
}

func (m *Mock) MatchesImported() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesImported
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
