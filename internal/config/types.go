package config

// Config holds all configuration for the application.
type Config struct {
	DBName    string
	Port      string
	Slack     SlackConfig
	TenantID  string
	Turso     TursoConfig
	Inngest   InngestConfig
	ProjectID string
	// TransitionCron is the schedule of the periodic ladder run.
	TransitionCron     string
	CORSAllowedOrigins []string
}

type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

type InngestConfig struct {
	AppID      string
	SigningKey string
	EventKey   string
}

// Enabled reports whether the scheduler should be served.
func (c InngestConfig) Enabled() bool {
	return c.AppID != ""
}
