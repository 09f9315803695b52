package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"NewsBriefing/internal/domain"
)

const (
	configPathEnv   = "NEWS_BRIEFING_CONFIG"
	feedURLEnv      = "NEWS_BRIEFING_FEED_URL"
	logLevelEnv     = "NEWS_BRIEFING_LOG_LEVEL"
	speechEngineEnv = "NEWS_BRIEFING_SPEECH_ENGINE"
	audioPathEnv    = "NEWS_BRIEFING_AUDIO_PATH"
	openAIAPIKeyEnv = "OPENAI_API_KEY"
	openAIModelEnv  = "OPENAI_MODEL"
)

// Speech engine names accepted in configuration.
const (
	EngineOpenAI = "openai"
	EngineLocal  = "local"
)

const defaultSystemPrompt = "The user will input text taken from a news article and you will summarise it " +
	"in one to three sentences. The article may contain biased language, so you should attempt to rephrase " +
	"it to be more politically neutral. You are delivering a daily news briefing to the user, so you should " +
	"provide a summary of the article's main points without mentioning the article directly."

// Config holds high-level settings required across the application.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Feed    FeedConfig    `yaml:"feed"`
	Scraper ScraperConfig `yaml:"scraper"`
	OpenAI  OpenAIConfig  `yaml:"openai"`
	Speech  SpeechConfig  `yaml:"speech"`
}

// LoggingConfig controls console log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// FeedConfig describes the syndication feed to pull headlines from.
type FeedConfig struct {
	URL            string `yaml:"url"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

// Timeout converts the configured seconds into a time.Duration.
func (f FeedConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}

// ScraperConfig defines how article pages are fetched and which extraction
// strategy turns them into body text.
type ScraperConfig struct {
	Extractor      string `yaml:"extractor"`
	Selector       string `yaml:"selector"`
	UserAgent      string `yaml:"userAgent"`
	IgnoreRobots   bool   `yaml:"ignoreRobots"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

// Timeout converts the configured seconds into a time.Duration.
func (s ScraperConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// OpenAIConfig defines how to contact the chat-completions API.
type OpenAIConfig struct {
	Endpoint       string  `yaml:"endpoint"`
	Model          string  `yaml:"model"`
	APIKey         string  `yaml:"apiKey"`
	SystemPrompt   string  `yaml:"systemPrompt"`
	Temperature    float64 `yaml:"temperature"`
	Completions    int     `yaml:"completions"`
	TimeoutSeconds int     `yaml:"timeoutSeconds"`
}

// Timeout converts the configured seconds into a time.Duration.
func (o OpenAIConfig) Timeout() time.Duration {
	return time.Duration(o.TimeoutSeconds) * time.Second
}

// SpeechConfig selects and parameterizes the narration engine.
type SpeechConfig struct {
	Engine         string            `yaml:"engine"`
	Endpoint       string            `yaml:"endpoint"`
	Model          string            `yaml:"model"`
	Voice          string            `yaml:"voice"`
	OutputPath     string            `yaml:"outputPath"`
	TimeoutSeconds int               `yaml:"timeoutSeconds"`
	Local          LocalEngineConfig `yaml:"local"`
}

// Timeout converts the configured seconds into a time.Duration.
func (s SpeechConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// LocalEngineConfig parameterizes the on-device synthesis binary.
type LocalEngineConfig struct {
	Binary string  `yaml:"binary"`
	Voice  string  `yaml:"voice"`
	Rate   int     `yaml:"rate"`
	Volume float64 `yaml:"volume"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides.
func Load() Config {
	// Missing .env is fine, variables may come from the real environment.
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

// Validate reports configuration the run cannot proceed with. The API key is
// checked for presence only and never appears in the error text.
func (c Config) Validate() error {
	if c.Feed.URL == "" {
		return fmt.Errorf("%w: feed url is empty", domain.ErrInvalidConfig)
	}
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("%w: OpenAI API key is not set (set %s)", domain.ErrInvalidConfig, openAIAPIKeyEnv)
	}
	if c.Speech.Engine != EngineOpenAI && c.Speech.Engine != EngineLocal {
		return fmt.Errorf("%w: unknown speech engine %q", domain.ErrInvalidConfig, c.Speech.Engine)
	}
	if c.Feed.TimeoutSeconds <= 0 || c.Scraper.TimeoutSeconds <= 0 ||
		c.OpenAI.TimeoutSeconds <= 0 || c.Speech.TimeoutSeconds <= 0 {
		return fmt.Errorf("%w: timeouts must be positive", domain.ErrInvalidConfig)
	}
	if c.OpenAI.Completions < 1 {
		return fmt.Errorf("%w: completions must be at least 1", domain.ErrInvalidConfig)
	}
	if c.OpenAI.Temperature < 0 || c.OpenAI.Temperature > 2 {
		return fmt.Errorf("%w: temperature %v is out of range", domain.ErrInvalidConfig, c.OpenAI.Temperature)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(feedURLEnv); v != "" {
		c.Feed.URL = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(openAIAPIKeyEnv); v != "" {
		c.OpenAI.APIKey = v
	}

	if v := os.Getenv(openAIModelEnv); v != "" {
		c.OpenAI.Model = v
	}

	if v := os.Getenv(speechEngineEnv); v != "" {
		c.Speech.Engine = v
	}

	if v := os.Getenv(audioPathEnv); v != "" {
		c.Speech.OutputPath = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Feed.URL != "" {
		base.Feed.URL = override.Feed.URL
	}
	if override.Feed.TimeoutSeconds > 0 {
		base.Feed.TimeoutSeconds = override.Feed.TimeoutSeconds
	}

	if override.Scraper.Extractor != "" {
		base.Scraper.Extractor = override.Scraper.Extractor
	}
	if override.Scraper.Selector != "" {
		base.Scraper.Selector = override.Scraper.Selector
	}
	if override.Scraper.UserAgent != "" {
		base.Scraper.UserAgent = override.Scraper.UserAgent
	}
	if override.Scraper.IgnoreRobots {
		base.Scraper.IgnoreRobots = true
	}
	if override.Scraper.TimeoutSeconds > 0 {
		base.Scraper.TimeoutSeconds = override.Scraper.TimeoutSeconds
	}

	if override.OpenAI.Endpoint != "" {
		base.OpenAI.Endpoint = override.OpenAI.Endpoint
	}
	if override.OpenAI.Model != "" {
		base.OpenAI.Model = override.OpenAI.Model
	}
	if override.OpenAI.APIKey != "" {
		base.OpenAI.APIKey = override.OpenAI.APIKey
	}
	if override.OpenAI.SystemPrompt != "" {
		base.OpenAI.SystemPrompt = override.OpenAI.SystemPrompt
	}
	if override.OpenAI.Temperature > 0 {
		base.OpenAI.Temperature = override.OpenAI.Temperature
	}
	if override.OpenAI.Completions > 0 {
		base.OpenAI.Completions = override.OpenAI.Completions
	}
	if override.OpenAI.TimeoutSeconds > 0 {
		base.OpenAI.TimeoutSeconds = override.OpenAI.TimeoutSeconds
	}

	if override.Speech.Engine != "" {
		base.Speech.Engine = override.Speech.Engine
	}
	if override.Speech.Endpoint != "" {
		base.Speech.Endpoint = override.Speech.Endpoint
	}
	if override.Speech.Model != "" {
		base.Speech.Model = override.Speech.Model
	}
	if override.Speech.Voice != "" {
		base.Speech.Voice = override.Speech.Voice
	}
	if override.Speech.OutputPath != "" {
		base.Speech.OutputPath = override.Speech.OutputPath
	}
	if override.Speech.TimeoutSeconds > 0 {
		base.Speech.TimeoutSeconds = override.Speech.TimeoutSeconds
	}

	if override.Speech.Local.Binary != "" {
		base.Speech.Local.Binary = override.Speech.Local.Binary
	}
	if override.Speech.Local.Voice != "" {
		base.Speech.Local.Voice = override.Speech.Local.Voice
	}
	if override.Speech.Local.Rate > 0 {
		base.Speech.Local.Rate = override.Speech.Local.Rate
	}
	if override.Speech.Local.Volume > 0 {
		base.Speech.Local.Volume = override.Speech.Local.Volume
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Feed: FeedConfig{
			URL:            "http://feeds.bbci.co.uk/news/rss.xml",
			TimeoutSeconds: 10,
		},
		Scraper: ScraperConfig{
			Extractor:      "selector",
			Selector:       "article",
			UserAgent:      "NewsBriefing/1.0",
			TimeoutSeconds: 15,
		},
		OpenAI: OpenAIConfig{
			Endpoint:       "https://api.openai.com/v1/chat/completions",
			Model:          "gpt-3.5-turbo",
			APIKey:         "",
			SystemPrompt:   defaultSystemPrompt,
			Temperature:    0.5,
			Completions:    1,
			TimeoutSeconds: 60,
		},
		Speech: SpeechConfig{
			Engine:         EngineOpenAI,
			Endpoint:       "https://api.openai.com/v1/audio/speech",
			Model:          "tts-1",
			Voice:          "alloy",
			OutputPath:     "news.mp3",
			TimeoutSeconds: 60,
			Local: LocalEngineConfig{
				Rate:   125,
				Volume: 1.0,
			},
		},
	}
}
