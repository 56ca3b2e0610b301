package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix  = "PADEL_"
	fileEnvVar = "PADEL_CONFIG"
)

// sections are the nested config blocks; PADEL_SLACK_CHANNEL_ID maps to slack.channel_id.
var sections = []string{"slack", "turso", "elo", "skill", "playtomic"}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		DBName:      "padel.db",
		Port:        "8080",
		LogLevel:    "info",
		LogFormat:   "json",
		RecentLimit: 10,
		Elo: EloConfig{
			Initial: 1000,
			KFactor: 32,
		},
		Skill: SkillConfig{
			Enabled: true,
			Mu:      25,
			Sigma:   25.0 / 3,
			Beta:    25.0 / 6,
			Tau:     25.0 / 300,
		},
		Playtomic: PlaytomicConfig{
			Timeout: 10 * time.Second,
			Retries: 3,
		},
	}
}

// Load builds a Config by layering, from low to high precedence:
//  1. Default()
//  2. the YAML file named by PADEL_CONFIG, if set
//  3. PADEL_* environment variables, including those from a .env file
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	k := koanf.New(".")

	if path := os.Getenv(fileEnvVar); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("loading environment: %w", err)
	}
	// Cloud Run and friends only set PORT.
	if port := os.Getenv("PORT"); port != "" && !k.Exists("port") {
		if err := k.Set("port", port); err != nil {
			return Config{}, err
		}
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the services cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("port must not be empty"))
	}
	if c.DBName == "" && c.Turso.PrimaryURL == "" {
		errs = append(errs, errors.New("db_name or turso.primary_url must be set"))
	}
	if c.Elo.KFactor <= 0 {
		errs = append(errs, fmt.Errorf("elo.k_factor must be positive, got %v", c.Elo.KFactor))
	}
	if c.RecentLimit <= 0 {
		errs = append(errs, fmt.Errorf("recent_limit must be positive, got %d", c.RecentLimit))
	}
	if c.Skill.Enabled && (c.Skill.Sigma <= 0 || c.Skill.Beta <= 0 || c.Skill.Tau < 0) {
		errs = append(errs, errors.New("skill sigma and beta must be positive and tau non-negative"))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	return errors.Join(errs...)
}

// SlackEnabled reports whether notifications can be posted.
func (c Config) SlackEnabled() bool {
	return c.Slack.Token != "" && c.Slack.ChannelID != ""
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	for _, section := range sections {
		if strings.HasPrefix(s, section+"_") {
			return section + "." + strings.TrimPrefix(s, section+"_")
		}
	}
	return s
}
