package server

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/zucenko/mazerun/progress"
)

type Config struct {
	Addr         string        `yaml:"addr"`
	ProgressDir  string        `yaml:"progress_dir"`
	LogLevel     string        `yaml:"log_level"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	SendBuffer   int           `yaml:"send_buffer"`
	// Seed 0 seeds every session from the clock.
	Seed int64 `yaml:"seed"`
}

func DefaultConfig() Config {
	cfg := Config{
		Addr:         ":8080",
		LogLevel:     "info",
		WriteTimeout: 10 * time.Second,
		SendBuffer:   32,
	}
	if dir, err := progress.DefaultDir(); err == nil {
		cfg.ProgressDir = dir
	} else {
		log.Warnf("no progress dir, keeping progress in memory: %v", err)
	}
	return cfg
}

// LoadConfig reads the YAML file at path over the defaults. An empty path
// means defaults only. PORT in the environment wins over addr.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return cfg, err
		}
		defer file.Close()
		if err := decodeConfig(file, &cfg); err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Addr = ":" + port
	}
	return cfg, cfg.Validate()
}

func decodeConfig(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.WriteTimeout <= 0 {
		return fmt.Errorf("write_timeout must be positive, got %v", c.WriteTimeout)
	}
	if c.SendBuffer <= 0 {
		return fmt.Errorf("send_buffer must be positive, got %d", c.SendBuffer)
	}
	return nil
}

func (c Config) Level() (log.Level, error) {
	return log.ParseLevel(c.LogLevel)
}
