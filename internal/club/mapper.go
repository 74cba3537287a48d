package club

import (
	"context"
	"sort"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-ladder/internal/ranking"
)

// autoLinkConfidence is the similarity above which a Playtomic account is
// linked to a ladder player without confirmation.
const autoLinkConfidence = 0.8

// PlayerSuggestion is a candidate ladder player for a Playtomic account.
type PlayerSuggestion struct {
	Player     ranking.Player
	Confidence float64
}

// PlayerMapper resolves Playtomic accounts to ladder players.
type PlayerMapper struct {
	store ClubStore
}

// NewPlayerMapper creates a new player mapper
func NewPlayerMapper(store ClubStore) *PlayerMapper {
	return &PlayerMapper{store: store}
}

// Resolve returns the ladder player linked to the Playtomic account. Unlinked
// accounts are matched by name and linked when the match is confident.
// It returns nil when no player could be resolved. A dry run never links.
func (pm *PlayerMapper) Resolve(ctx context.Context, playtomicID, name string, dryRun bool) (*ranking.Player, error) {
	if p, err := pm.store.GetPlayerByPlaytomicID(ctx, playtomicID); err != nil || p != nil {
		return p, err
	}

	candidates, err := pm.store.GetUnlinkedPlayers(ctx)
	if err != nil {
		return nil, err
	}
	suggestions := Suggest(name, candidates)
	if len(suggestions) == 0 || suggestions[0].Confidence <= autoLinkConfidence {
		log.Debug("No confident player match", "playtomicID", playtomicID, "name", name, "candidates", len(suggestions))
		return nil, nil
	}

	best := suggestions[0]
	if dryRun {
		log.Info("[Dry Run] Would link Playtomic account", "playtomicID", playtomicID, "player", best.Player.Name, "confidence", best.Confidence)
		return &best.Player, nil
	}
	if err := pm.store.LinkPlaytomicID(ctx, best.Player.ID, playtomicID); err != nil {
		return nil, err
	}
	log.Info("Linked Playtomic account", "playtomicID", playtomicID, "player", best.Player.Name, "confidence", best.Confidence)
	return &best.Player, nil
}

// Suggest ranks players by name similarity, best first. Weak matches are
// dropped and at most five suggestions are returned.
func Suggest(name string, players []ranking.Player) []PlayerSuggestion {
	var suggestions []PlayerSuggestion
	for _, p := range players {
		if score := similarity(name, p.Name); score > 0.3 {
			suggestions = append(suggestions, PlayerSuggestion{Player: p, Confidence: score})
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Confidence > suggestions[j].Confidence
	})
	if len(suggestions) > 5 {
		suggestions = suggestions[:5]
	}
	return suggestions
}

// similarity averages whole-name and per-token similarity.
func similarity(a, b string) float64 {
	a, b = normalizeName(a), normalizeName(b)
	if a == "" || b == "" {
		return 0
	}
	return (stringSimilarity(a, b) + tokenSimilarity(a, b)) / 2
}

func normalizeName(name string) string {
	var result strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			result.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(result.String()), " ")
}

func stringSimilarity(s1, s2 string) float64 {
	if s1 == s2 {
		return 1
	}
	r1, r2 := []rune(s1), []rune(s2)
	maxLen := max(len(r1), len(r2))
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(levenshtein(r1, r2))/float64(maxLen)
}

// tokenSimilarity is the share of name parts that have a close counterpart,
// so a missing middle name only costs one token.
func tokenSimilarity(s1, s2 string) float64 {
	tokens1, tokens2 := strings.Fields(s1), strings.Fields(s2)
	if len(tokens1) == 0 || len(tokens2) == 0 {
		return 0
	}
	var matched int
	for _, t1 := range tokens1 {
		for _, t2 := range tokens2 {
			if stringSimilarity(t1, t2) > 0.8 {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(max(len(tokens1), len(tokens2)))
}

func levenshtein(s1, s2 []rune) int {
	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(s2)]
}
