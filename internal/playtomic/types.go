package playtomic

// SearchMatchesParams defines the parameters for searching for matches.
type SearchMatchesParams struct {
	SportID       string
	HasPlayers    bool
	Sort          string
	TenantIDs     []string
	FromStartDate string
}

// SportTennis is the Playtomic sport id for tennis.
const SportTennis = "TENNIS"

// TeamResultWon marks the winning team of a played match.
const TeamResultWon = "WON"

// MatchSummary contains the essential details of a match from a search result.
type MatchSummary struct {
	MatchID string
	OwnerID *string
}

// Match is a single Playtomic match with the details the ladder imports.
type Match struct {
	MatchID       string
	OwnerID       string
	Start         int64
	End           int64
	Status        string
	GameStatus    GameStatus
	Teams         []Team
	Results       []SetResult
	ResultsStatus ResultsStatus
	ResourceName  string
	Tenant        Tenant
}

// GameStatus defines the status of a game.
type GameStatus string

const (
	GameStatusPending    GameStatus = "PENDING"
	GameStatusPlayed     GameStatus = "PLAYED"
	GameStatusUnknown    GameStatus = "UNKNOWN"
	GameStatusCanceled   GameStatus = "CANCELED"
	GameStatusWaitingFor GameStatus = "WAITING_FOR"
	GameStatusExpired    GameStatus = "EXPIRED"
	GameStatusInProgress GameStatus = "IN_PROGRESS"
)

// ResultsStatus is the confirmation state of the reported score. Only
// confirmed results are imported.
type ResultsStatus string

const (
	ResultsStatusPending    ResultsStatus = "PENDING"
	ResultsStatusValidating ResultsStatus = "VALIDATING"
	ResultsStatusConfirmed  ResultsStatus = "CONFIRMED"
)

// Team represents a team in a match.
type Team struct {
	ID         string
	Players    []Player
	TeamResult string
}

// Player represents a player in a match.
type Player struct {
	UserID string
	Name   string
	Level  float64
}

// SetResult represents the result of a single set.
type SetResult struct {
	Name   string
	Scores map[string]int
}

// Tenant represents a Playtomic tenant (club).
type Tenant struct {
	ID   string
	Name string
}

// playtomicMatchResponse is the body of GET /v1/matches/{id}.
type playtomicMatchResponse struct {
	OwnerID       string                  `json:"owner_id"`
	StartDate     string                  `json:"start_date"`
	EndDate       string                  `json:"end_date"`
	Status        string                  `json:"status"`
	GameStatus    string                  `json:"game_status"`
	Teams         []playtomicTeamResponse `json:"teams"`
	Results       []playtomicResult       `json:"results"`
	ResultsStatus string                  `json:"results_status"`
	ResourceName  string                  `json:"resource_name"`
	Tenant        playtomicTenant         `json:"tenant"`
}

// playtomicResult defines a set result.
type playtomicResult struct {
	Name   string               `json:"name"`
	Scores []playtomicTeamScore `json:"scores"`
}

// playtomicTeamScore defines the score for a team in a set.
type playtomicTeamScore struct {
	TeamID string `json:"team_id"`
	Score  int    `json:"score"`
}

// playtomicTenant defines the structure for the tenant information in the response.
type playtomicTenant struct {
	ID   string `json:"tenant_id"`
	Name string `json:"tenant_name"`
}

// playtomicTeamResponse defines the structure for a team within the match response.
type playtomicTeamResponse struct {
	TeamID     string                    `json:"team_id"`
	Players    []playtomicPlayerResponse `json:"players"`
	TeamResult *string                   `json:"team_result"`
}

// playtomicPlayerResponse defines the structure for a player within a team.
type playtomicPlayerResponse struct {
	UserID     string   `json:"user_id"`
	Name       string   `json:"name"`
	LevelValue *float64 `json:"level_value"`
}
