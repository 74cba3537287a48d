package processor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mauv0809/club-ladder/internal/club"
	"github.com/mauv0809/club-ladder/internal/metrics"
	"github.com/mauv0809/club-ladder/internal/playtomic"
	"github.com/mauv0809/club-ladder/internal/pubsub"
	"github.com/mauv0809/club-ladder/internal/ranking"
)

// Processor handles the business logic of the ladder.
type Processor struct {
	store     Store
	engine    *ranking.Engine
	mapper    *club.PlayerMapper
	playtomic playtomic.PlaytomicClient
	tenantID  string
	pubsub    pubsub.PubSubClient
	notifier  Notifier
	metrics   metrics.Metrics
}

// RecordMatchInput is a result submitted by a client.
type RecordMatchInput struct {
	SideAID  string              `json:"player1_id"`
	SideBID  string              `json:"player2_id"`
	WinnerID string              `json:"winner_id"`
	GroupID  string              `json:"group_id"`
	Status   ranking.MatchStatus `json:"status"`
}

// RecordMatchOutput is the stored match with both players' fresh scores.
type RecordMatchOutput struct {
	Match ranking.Match  `json:"game"`
	SideA ranking.Player `json:"player1"`
	SideB ranking.Player `json:"player2"`
}

// ValidationError lists the problems of an input, keyed by field.
type ValidationError struct {
	Fields map[string][]string `json:"errors"`
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *ValidationError) empty() bool {
	return len(e.Fields) == 0
}

// ImportSummary counts what a Playtomic import did.
type ImportSummary struct {
	Fetched  int      `json:"fetched"`
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}
