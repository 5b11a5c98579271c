package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LLM provider identifiers.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderOllama    = "ollama"
	ProviderGemini    = "gemini"
)

// Environment variables recognized by Load.
const (
	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"
	EnvOpenAIAPIKey    = "OPENAI_API_KEY"
	EnvGeminiAPIKey    = "GEMINI_API_KEY"
	EnvOllamaHost      = "OLLAMA_HOST"
	EnvWhisperModel    = "WHISPER_MODEL"
	EnvOutputDir       = "OUTPUT_DIR"
	EnvConfigFile      = "RECAP_CONFIG"
	EnvLLMProvider     = "RECAP_LLM_PROVIDER"
	EnvLLMModel        = "RECAP_LLM_MODEL"
	EnvWhisperBin      = "RECAP_WHISPER_BIN"
	EnvModelDir        = "RECAP_MODEL_DIR"
	EnvLogLevel        = "RECAP_LOG_LEVEL"
)

// WhisperModelSizes are the accepted --model values, smallest to largest.
var WhisperModelSizes = []string{"tiny", "base", "small", "medium", "large-v2", "large-v3"}

type Config struct {
	Whisper WhisperConfig `yaml:"whisper"`
	LLM     LLMConfig     `yaml:"llm"`
	Paths   PathsConfig   `yaml:"paths"`
	Logging LoggingConfig `yaml:"logging"`
	Watch   WatchConfig   `yaml:"watch"`
}

type WhisperConfig struct {
	Model      string `yaml:"model"`
	BinaryPath string `yaml:"binary_path"`
	ModelDir   string `yaml:"model_dir"`
	Threads    int    `yaml:"threads"`
}

type LLMConfig struct {
	Provider        string `yaml:"provider"`
	Model           string `yaml:"model"`
	AnthropicAPIKey string `yaml:"-"`
	OpenAIAPIKey    string `yaml:"-"`
	GeminiAPIKey    string `yaml:"-"`
	OllamaHost      string `yaml:"ollama_host"`
}

type PathsConfig struct {
	Output string `yaml:"output"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type WatchConfig struct {
	Input         string `yaml:"input"`
	MaxConcurrent int    `yaml:"max_concurrent"`
}

// Load builds the configuration from defaults, an optional YAML file, and
// the environment, in that precedence order. path may be empty; a missing
// file is only an error when the path was given explicitly.
func Load(path string) (*Config, error) {
	cfg := defaults()

	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvConfigFile)
		explicit = path != ""
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if explicit {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Whisper: WhisperConfig{
			Model:      "medium",
			BinaryPath: "whisper-cli",
			ModelDir:   "models",
		},
		LLM: LLMConfig{
			Provider:   ProviderAnthropic,
			OllamaHost: "http://localhost:11434",
		},
		Paths: PathsConfig{
			Output: "./output",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Watch: WatchConfig{
			MaxConcurrent: 2,
		},
	}
}

func (c *Config) applyEnv() {
	c.LLM.AnthropicAPIKey = os.Getenv(EnvAnthropicAPIKey)
	c.LLM.OpenAIAPIKey = os.Getenv(EnvOpenAIAPIKey)
	c.LLM.GeminiAPIKey = os.Getenv(EnvGeminiAPIKey)

	if v := os.Getenv(EnvOllamaHost); v != "" {
		c.LLM.OllamaHost = v
	}
	if v := os.Getenv(EnvLLMProvider); v != "" {
		c.LLM.Provider = strings.ToLower(v)
	}
	if v := os.Getenv(EnvLLMModel); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv(EnvWhisperModel); v != "" {
		c.Whisper.Model = v
	}
	if v := os.Getenv(EnvWhisperBin); v != "" {
		c.Whisper.BinaryPath = v
	}
	if v := os.Getenv(EnvModelDir); v != "" {
		c.Whisper.ModelDir = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.Paths.Output = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
}

func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderAnthropic, ProviderOpenAI, ProviderOllama, ProviderGemini:
	default:
		return fmt.Errorf("llm.provider %q is not one of anthropic, openai, ollama, gemini", c.LLM.Provider)
	}

	if !IsValidWhisperModel(c.Whisper.Model) {
		return fmt.Errorf("whisper.model %q is not one of %s", c.Whisper.Model, strings.Join(WhisperModelSizes, ", "))
	}

	if c.Whisper.BinaryPath == "" {
		return fmt.Errorf("whisper.binary_path is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}

	if c.LLM.Model == "" {
		c.LLM.Model = DefaultLLMModel(c.LLM.Provider)
	}
	if c.Watch.MaxConcurrent <= 0 {
		c.Watch.MaxConcurrent = 2
	}

	return nil
}

// APIKey returns the credential for the configured provider. Ollama needs
// none, so the empty string is valid there.
func (c *Config) APIKey() string {
	switch c.LLM.Provider {
	case ProviderAnthropic:
		return c.LLM.AnthropicAPIKey
	case ProviderOpenAI:
		return c.LLM.OpenAIAPIKey
	case ProviderGemini:
		return c.LLM.GeminiAPIKey
	}
	return ""
}

// CredentialEnv names the environment variable that supplies the configured
// provider's credential, or "" when the provider needs none.
func (c *Config) CredentialEnv() string {
	switch c.LLM.Provider {
	case ProviderAnthropic:
		return EnvAnthropicAPIKey
	case ProviderOpenAI:
		return EnvOpenAIAPIKey
	case ProviderGemini:
		return EnvGeminiAPIKey
	}
	return ""
}

// DefaultLLMModel returns the model pin used when none is configured.
func DefaultLLMModel(provider string) string {
	switch provider {
	case ProviderGemini:
		return "gemini-2.5-flash"
	case ProviderOpenAI:
		return "gpt-4o"
	case ProviderOllama:
		return "llama3.1"
	default:
		return "claude-3-5-sonnet-20241022"
	}
}

// IsValidWhisperModel reports whether size is a supported whisper model size.
func IsValidWhisperModel(size string) bool {
	for _, s := range WhisperModelSizes {
		if s == size {
			return true
		}
	}
	return false
}
