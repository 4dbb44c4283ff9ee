package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"img-analysis/api/internal/analysis"
)

type Config struct {
	Port     string `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`

	VisionEngine    string `mapstructure:"vision_engine"`
	TranslateEngine string `mapstructure:"translate_engine"`

	Translate TranslateConfig `mapstructure:"translate"`
	Labels    LabelsConfig    `mapstructure:"labels"`
	Fetch     FetchConfig     `mapstructure:"fetch"`

	StageTimeout time.Duration `mapstructure:"stage_timeout"`

	GoogleAPIKey string `mapstructure:"google_api_key"`
	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	GeminiModel  string `mapstructure:"gemini_model"`
	OpenAIAPIKey string `mapstructure:"openai_api_key"`
	OpenAIModel  string `mapstructure:"openai_model"`
}

type TranslateConfig struct {
	Mode           string `mapstructure:"mode"`
	SourceLanguage string `mapstructure:"source_language"`
	TargetLanguage string `mapstructure:"target_language"`
	JoinSeparator  string `mapstructure:"join_separator"`
	SplitSeparator string `mapstructure:"split_separator"`
}

type LabelsConfig struct {
	MinConfidence float64 `mapstructure:"min_confidence"`
	MaxResults    int64   `mapstructure:"max_results"`
}

type FetchConfig struct {
	Timeout  time.Duration `mapstructure:"timeout"`
	MaxBytes int64         `mapstructure:"max_bytes"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8000")
	v.SetDefault("log_level", "info")
	v.SetDefault("vision_engine", "google")
	v.SetDefault("translate_engine", "google")
	v.SetDefault("translate.mode", string(analysis.ModeJoined))
	v.SetDefault("translate.source_language", "en")
	v.SetDefault("translate.target_language", "pt")
	v.SetDefault("translate.join_separator", analysis.DefaultJoinSeparator)
	v.SetDefault("translate.split_separator", analysis.DefaultSplitSeparator)
	v.SetDefault("labels.min_confidence", analysis.DefaultMinConfidence)
	v.SetDefault("labels.max_results", 50)
	v.SetDefault("fetch.timeout", 60*time.Second)
	v.SetDefault("fetch.max_bytes", 0)
	v.SetDefault("stage_timeout", 60*time.Second)
	v.SetDefault("google_api_key", "")
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("gemini_model", "gemini-2.5-flash")
	v.SetDefault("openai_api_key", "")
	v.SetDefault("openai_model", "gpt-4o-mini")
}

// Load reads an optional YAML file, then .env, then IMG_* environment
// variables (nested keys use "_", e.g. IMG_TRANSLATE_MODE). PORT wins over
// everything, as on most hosting platforms.
func Load(configFile string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("IMG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("port", "PORT", "IMG_PORT")
	_ = v.BindEnv("google_api_key", "IMG_GOOGLE_API_KEY", "GOOGLE_API_KEY")
	_ = v.BindEnv("gemini_api_key", "IMG_GEMINI_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("openai_api_key", "IMG_OPENAI_API_KEY", "OPENAI_API_KEY")

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.Port = strings.TrimSpace(c.Port)
	c.VisionEngine = strings.ToLower(strings.TrimSpace(c.VisionEngine))
	c.TranslateEngine = strings.ToLower(strings.TrimSpace(c.TranslateEngine))
	c.Translate.Mode = strings.ToLower(strings.TrimSpace(c.Translate.Mode))
	c.GoogleAPIKey = strings.TrimSpace(c.GoogleAPIKey)
	c.GeminiAPIKey = strings.TrimSpace(c.GeminiAPIKey)
	c.OpenAIAPIKey = strings.TrimSpace(c.OpenAIAPIKey)
}

// Validate checks that the selected engines have credentials.
func (c *Config) Validate() error {
	var errs []error
	seen := map[string]bool{}
	for _, eng := range []string{c.VisionEngine, c.TranslateEngine} {
		if seen[eng] {
			continue
		}
		seen[eng] = true
		switch eng {
		case "google":
			if c.GoogleAPIKey == "" {
				errs = append(errs, errors.New("missing required env GOOGLE_API_KEY"))
			}
		case "gemini":
			if c.GeminiAPIKey == "" {
				errs = append(errs, errors.New("missing required env GEMINI_API_KEY"))
			}
		case "openai":
			if c.OpenAIAPIKey == "" {
				errs = append(errs, errors.New("missing required env OPENAI_API_KEY"))
			}
		default:
			errs = append(errs, fmt.Errorf("unknown engine %q; use google | gemini | openai", eng))
		}
	}
	switch analysis.TranslateMode(c.Translate.Mode) {
	case analysis.ModeJoined, analysis.ModeDiscrete:
	default:
		errs = append(errs, fmt.Errorf("unknown translate mode %q; use joined | discrete", c.Translate.Mode))
	}
	if c.Translate.TargetLanguage == "" {
		errs = append(errs, errors.New("translate.target_language is empty"))
	}
	return errors.Join(errs...)
}

func (c *Config) TranslatorOptions() analysis.TranslatorOptions {
	return analysis.TranslatorOptions{
		SourceLanguage: c.Translate.SourceLanguage,
		TargetLanguage: c.Translate.TargetLanguage,
		Mode:           analysis.TranslateMode(c.Translate.Mode),
		JoinSeparator:  c.Translate.JoinSeparator,
		SplitSeparator: c.Translate.SplitSeparator,
	}
}
