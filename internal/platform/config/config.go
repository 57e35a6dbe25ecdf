package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config junta toda la configuración por variables de entorno.
// DATA_PATH vacío = store en memoria (se pierde al cerrar; útil para probar).
type Config struct {
	Port      string `env:"PORT" envDefault:"8080"`
	AppName   string `env:"APP_NAME" envDefault:"ranch-roster"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	DataPath     string        `env:"DATA_PATH" envDefault:"ranch-roster.db"`
	SaveDebounce time.Duration `env:"SAVE_DEBOUNCE" envDefault:"300ms"`
}

// Load parsea el entorno.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
