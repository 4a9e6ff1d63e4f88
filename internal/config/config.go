package config

import (
	"fmt"
	"reflect"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration.
type Config struct {
	EnvVars    EnvVars     `json:"env"`
	ScreenText *ScreenText `json:"-"`
}

// EnvVars holds environment variables read by the application.
// Fields tagged `optional:"true"` are skipped by CheckConfigEnvFields.
type EnvVars struct {
	Port           string        `env:"PORT" envDefault:"8080"`
	MealDBBaseURL  string        `env:"MEALDB_BASE_URL" envDefault:"https://www.themealdb.com/api/json/v1/1"`
	SearchDebounce time.Duration `env:"SEARCH_DEBOUNCE" envDefault:"500ms"`
	CollapsedLines int           `env:"COLLAPSED_LINES" envDefault:"2"`
	HTTPTimeout    time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`
	MealDBRPS      int           `env:"MEALDB_RPS" envDefault:"5"`
	RateLimitRPS   int           `env:"RATE_LIMIT_RPS" envDefault:"10"`
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS" envSeparator:"," optional:"true"`
	ScreenTextPath string        `env:"SCREEN_TEXT_PATH" optional:"true"`
}

// LoadConfig parses environment variables into the Config struct and loads
// the screen labels, falling back to the built-in ones when no file is set.
func LoadConfig() (*Config, error) {
	var config Config
	if err := env.Parse(&config.EnvVars); err != nil {
		return nil, err
	}

	config.ScreenText = DefaultScreenText()
	if config.EnvVars.ScreenTextPath != "" {
		text, err := LoadScreenText(config.EnvVars.ScreenTextPath)
		if err != nil {
			return nil, err
		}
		config.ScreenText = text
	}
	return &config, nil
}

// CheckConfigEnvFields validates that all required EnvVars fields are set.
func (c *Config) CheckConfigEnvFields() error {
	if err := checkFieldsRecursive(reflect.ValueOf(c.EnvVars)); err != nil {
		return err
	}
	if c.EnvVars.SearchDebounce < 0 {
		return fmt.Errorf("$SearchDebounce must not be negative")
	}
	if c.EnvVars.CollapsedLines < 0 {
		return fmt.Errorf("$CollapsedLines must not be negative")
	}
	return nil
}

func checkFieldsRecursive(v reflect.Value) error {
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := v.Type().Field(i)
		if fieldType.Tag.Get("optional") == "true" {
			continue
		}
		if field.IsZero() {
			return fmt.Errorf("$%s must be set", fieldType.Name)
		}
		if field.Kind() == reflect.Struct {
			if err := checkFieldsRecursive(field); err != nil {
				return err
			}
		}
	}
	return nil
}
