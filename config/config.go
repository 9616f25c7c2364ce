package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeyBackendURL   = "backend.url"
	KeyBackendToken = "backend.token"
	KeyUserID       = "user.id"
	KeyStoragePath  = "storage.path"
)

type Config struct {
	Backend BackendConfig `mapstructure:"backend" validate:"required"`
	User    UserConfig    `mapstructure:"user" validate:"required"`
	Storage StorageConfig `mapstructure:"storage"`
}

type BackendConfig struct {
	URL   string `mapstructure:"url" validate:"required,url"`
	Token string `mapstructure:"token"`
}

type UserConfig struct {
	ID string `mapstructure:"id" validate:"required"`
}

type StorageConfig struct {
	Path string `mapstructure:"path"`
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# cmsrd configuration
backend:
  url: "https://cms-rd-api.example.com/v1"
  token: ""

user:
  id: "default"

storage:
  path: "./cmsrd.db"
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if strings.TrimSpace(cfg.User.ID) == "" {
		return nil, fmt.Errorf("validation failed: user.id must not be blank")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyBackendURL, "https://cms-rd-api.example.com/v1")
	v.SetDefault(KeyBackendToken, "")
	v.SetDefault(KeyUserID, "default")
	v.SetDefault(KeyStoragePath, "./cmsrd.db")
}
