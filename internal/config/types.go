package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	DBName      string          `koanf:"db_name"`
	Port        string          `koanf:"port"`
	LogLevel    string          `koanf:"log_level"`
	LogFormat   string          `koanf:"log_format"`
	ProjectID   string          `koanf:"project_id"`
	TenantID    string          `koanf:"tenant_id"`
	RecentLimit int             `koanf:"recent_limit"`
	Slack       SlackConfig     `koanf:"slack"`
	Turso       TursoConfig     `koanf:"turso"`
	Elo         EloConfig       `koanf:"elo"`
	Skill       SkillConfig     `koanf:"skill"`
	Playtomic   PlaytomicConfig `koanf:"playtomic"`
}

type SlackConfig struct {
	Token         string `koanf:"token"`
	ChannelID     string `koanf:"channel_id"`
	SigningSecret string `koanf:"signing_secret"`
}

type TursoConfig struct {
	PrimaryURL string `koanf:"primary_url"`
	AuthToken  string `koanf:"auth_token"`
}

// EloConfig seeds every player at Initial and moves ratings by at most KFactor per match.
type EloConfig struct {
	Initial float64 `koanf:"initial"`
	KFactor float64 `koanf:"k_factor"`
}

// SkillConfig configures the TrueSkill environment. With Enabled false the
// skill engine runs without a model and every skill list is empty.
type SkillConfig struct {
	Enabled bool    `koanf:"enabled"`
	Mu      float64 `koanf:"mu"`
	Sigma   float64 `koanf:"sigma"`
	Beta    float64 `koanf:"beta"`
	Tau     float64 `koanf:"tau"`
}

type PlaytomicConfig struct {
	Timeout time.Duration `koanf:"timeout"`
	Retries int           `koanf:"retries"`
}
