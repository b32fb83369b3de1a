package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	SessionSecret       string
	DatabaseURL         string
	RedisURL            string
	ChatSecret          string   // CHAT_ENCRYPTION_SECRET for at-rest message encryption; falls back to SessionSecret
	FrontendURLEndsWith string
	DevPassword         string
	AllowCrossSiteDev   bool
	LeaveUsageStatuses  []string // leave entry statuses that count toward usage (default Approved,Pending)
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL")
	if env == "test" && viper.GetString("DATABASE_URL_TEST") != "" {
		dbURL = viper.GetString("DATABASE_URL_TEST")
	}

	return &Config{
		Env:                 env,
		Port:                port,
		SessionSecret:       viper.GetString("SESSION_SECRET"),
		DatabaseURL:         dbURL,
		RedisURL:            viper.GetString("REDIS_URL"),
		ChatSecret:          viper.GetString("CHAT_ENCRYPTION_SECRET"),
		FrontendURLEndsWith: viper.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         viper.GetString("DEV_PASSWORD"),
		AllowCrossSiteDev:   strings.EqualFold(viper.GetString("ALLOW_CROSS_SITE_DEV"), "true"),
		LeaveUsageStatuses:  usageStatuses(viper.GetString("LEAVE_USAGE_STATUSES")),
	}, nil
}

// usageStatuses parses a comma-separated status list; empty input keeps the
// default policy of counting both approved and still-pending entries.
func usageStatuses(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"Approved", "Pending"}
	}
	var out []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return []string{"Approved", "Pending"}
	}
	return out
}
