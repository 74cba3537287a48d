package playtomic

import (
	"context"
	"sync"
)

// MockClient is a mock implementation of the PlaytomicClient interface for testing.
// It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	// Spies for method calls
	GetMatchesFunc       func(ctx context.Context, params *SearchMatchesParams) ([]MatchSummary, error)
	GetSpecificMatchFunc func(ctx context.Context, matchID string) (Match, error)

	// Call records
	GetMatchesCalls       []*SearchMatchesParams
	GetSpecificMatchCalls []string
}

var _ PlaytomicClient = (*MockClient)(nil)

// NewMockClient creates a new mock instance.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Reset clears all call records.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetMatchesCalls = nil
	m.GetSpecificMatchCalls = nil
}

func (m *MockClient) GetMatches(ctx context.Context, params *SearchMatchesParams) ([]MatchSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetMatchesCalls = append(m.GetMatchesCalls, params)
	if m.GetMatchesFunc != nil {
		return m.GetMatchesFunc(ctx, params)
	}
	return []MatchSummary{}, nil
}

func (m *MockClient) GetSpecificMatch(ctx context.Context, matchID string) (Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetSpecificMatchCalls = append(m.GetSpecificMatchCalls, matchID)
	if m.GetSpecificMatchFunc != nil {
		return m.GetSpecificMatchFunc(ctx, matchID)
	}
	return Match{}, nil
}
