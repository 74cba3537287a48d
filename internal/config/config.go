package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// DefaultTransitionCron runs the ladder at 06:00 on the first of every month.
const DefaultTransitionCron = "0 6 1 * *"

// Load reads configuration from environment variables and .env file.
// It exits when a required variable is missing.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}
	cfg, err := FromEnv(os.LookupEnv)
	if err != nil {
		log.Fatal("Invalid configuration", "error", err)
	}
	return cfg
}

// FromEnv builds the configuration from a lookup function such as os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	var missing []string
	required := func(key string) string {
		value, ok := lookup(key)
		if !ok || value == "" {
			missing = append(missing, key)
		}
		return value
	}
	optional := func(key, fallback string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		return fallback
	}

	cfg := Config{
		DBName: required("DB_NAME"),
		Port:   required("PORT"),
		Slack: SlackConfig{
			Token:         optional("SLACK_BOT_TOKEN", ""),
			ChannelID:     optional("SLACK_CHANNEL_ID", ""),
			SigningSecret: optional("SLACK_SIGNING_SECRET", ""),
		},
		TenantID: optional("PLAYTOMIC_TENANT_ID", ""),
		Turso: TursoConfig{
			PrimaryURL: optional("TURSO_PRIMARY_URL", ""),
			AuthToken:  optional("TURSO_AUTH_TOKEN", ""),
		},
		Inngest: InngestConfig{
			AppID:      optional("INNGEST_APP_ID", ""),
			SigningKey: optional("INNGEST_SIGNING_KEY", ""),
			EventKey:   optional("INNGEST_EVENT_KEY", ""),
		},
		ProjectID:      optional("GCP_PROJECT", ""),
		TransitionCron: optional("TRANSITION_CRON", DefaultTransitionCron),
	}
	if origins := optional("CORS_ALLOWED_ORIGINS", ""); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
			}
		}
	}
	if len(missing) > 0 {
		return cfg, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}
