package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	envPrefix    = "SEZNAM"
	envConfigKey = "SEZNAM_CONFIG"
)

// Config holds application configuration.
type Config struct {
	Storage  StorageConfig  `mapstructure:"storage"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Share    ShareConfig    `mapstructure:"share"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	UI       UIConfig       `mapstructure:"ui"`
	Log      LogConfig      `mapstructure:"log"`
}

type StorageConfig struct {
	Dir string `mapstructure:"dir"`
}

// LLMConfig selects the suggestion provider. Provider is gemini, groq or none.
type LLMConfig struct {
	Provider       string        `mapstructure:"provider"`
	APIKeyEnv      string        `mapstructure:"api_key_env"`
	APIKey         string        `mapstructure:"api_key"`
	Model          string        `mapstructure:"model"`
	Language       string        `mapstructure:"language"`
	AutoCategorize bool          `mapstructure:"auto_categorize"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

type ShareConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// UIConfig holds presentation settings. Glyphs is unicode or ascii.
type UIConfig struct {
	Uppercase bool   `mapstructure:"uppercase"`
	Glyphs    string `mapstructure:"glyphs"`
}

// LogConfig.File is relative to the storage dir unless absolute.
type LogConfig struct {
	File string `mapstructure:"file"`
}

// ResolveAPIKey prefers the explicit key, then the configured env var.
func (c LLMConfig) ResolveAPIKey() string {
	if k := strings.TrimSpace(c.APIKey); k != "" {
		return k
	}
	if env := strings.TrimSpace(c.APIKeyEnv); env != "" {
		return strings.TrimSpace(os.Getenv(env))
	}
	return ""
}

func defaultDataDir() string {
	if v := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); v != "" {
		return filepath.Join(v, "seznam")
	}
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "seznam")
}

func configDir() string {
	if v := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); v != "" {
		return filepath.Join(v, "seznam")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "seznam")
}

// Path is the config file location: SEZNAM_CONFIG if set, otherwise
// $XDG_CONFIG_HOME/seznam/config.toml.
func Path() string {
	if p := strings.TrimSpace(os.Getenv(envConfigKey)); p != "" {
		return p
	}
	return filepath.Join(configDir(), "config.toml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.dir", defaultDataDir())
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.api_key_env", "GEMINI_API_KEY")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "gemini-2.5-flash")
	v.SetDefault("llm.language", "Slovenian")
	v.SetDefault("llm.auto_categorize", false)
	v.SetDefault("llm.timeout", 20*time.Second)
	v.SetDefault("share.base_url", "https://seznam.app/")
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", int64(0))
	v.SetDefault("ui.uppercase", true)
	v.SetDefault("ui.glyphs", "unicode")
	v.SetDefault("log.file", "seznam.log")
}

// Default returns the built-in configuration without reading files or env.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	_ = v.Unmarshal(&c)
	return c
}

// Load reads configuration from file and env. Env var overrides use prefix SEZNAM_,
// for example SEZNAM_LLM_PROVIDER=none.
func Load() (Config, error) {
	return LoadFrom(os.Getenv(envConfigKey))
}

// LoadFrom is Load with an explicit config file. An empty path searches the
// default config dir.
func LoadFrom(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	if p := strings.TrimSpace(path); p != "" {
		v.SetConfigFile(p)
	} else {
		v.AddConfigPath(configDir())
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if !isNotFound(err) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	return c, nil
}

// An explicit SEZNAM_CONFIG that does not exist yet is treated like no file.
func isNotFound(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.As(err, &nf) || errors.Is(err, fs.ErrNotExist)
}

// Save writes cfg to Path(), creating the config directory if needed.
// The API key and bot token are stored in plain text; prefer env vars.
func Save(cfg Config) error {
	return SaveTo(Path(), cfg)
}

func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	for k, val := range Flatten(cfg) {
		v.Set(k, val)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Flatten returns cfg as dotted keys, the same keys Load understands.
func Flatten(cfg Config) map[string]any {
	return map[string]any{
		"storage.dir":         cfg.Storage.Dir,
		"llm.provider":        cfg.LLM.Provider,
		"llm.api_key_env":     cfg.LLM.APIKeyEnv,
		"llm.api_key":         cfg.LLM.APIKey,
		"llm.model":           cfg.LLM.Model,
		"llm.language":        cfg.LLM.Language,
		"llm.auto_categorize": cfg.LLM.AutoCategorize,
		"llm.timeout":         cfg.LLM.Timeout.String(),
		"share.base_url":      cfg.Share.BaseURL,
		"telegram.bot_token":  cfg.Telegram.BotToken,
		"telegram.chat_id":    cfg.Telegram.ChatID,
		"ui.uppercase":        cfg.UI.Uppercase,
		"ui.glyphs":           cfg.UI.Glyphs,
		"log.file":            cfg.Log.File,
	}
}

// LogPath resolves the log file against the storage dir.
func (c Config) LogPath() string {
	f := strings.TrimSpace(c.Log.File)
	if f == "" {
		return ""
	}
	if filepath.IsAbs(f) {
		return f
	}
	return filepath.Join(c.Storage.Dir, f)
}
