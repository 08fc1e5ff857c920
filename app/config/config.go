// Package config loads the application configuration from a YAML file with
// environment-variable overrides for secrets.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Admin struct {
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
	} `yaml:"admin"`
	SMTP struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"smtp"`
	Contact struct {
		To string `yaml:"to"`
	} `yaml:"contact"`
}

// Load reads the config file, applies env overrides and defaults, and
// validates the parts required to boot.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %v", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %v", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		return nil, errors.New("admin email and password are required (config or ADMIN_EMAIL/ADMIN_PASSWORD)")
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("ADMIN_EMAIL"); v != "" {
		c.Admin.Email = v
	}
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		c.Admin.Password = v
	}
	if v := os.Getenv("ADMIN_NAME"); v != "" {
		c.Admin.Name = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		c.SMTP.Password = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Database.Path == "" {
		c.Database.Path = "data/badger"
	}
	if c.Admin.Name == "" {
		c.Admin.Name = "Admin"
	}
	if c.SMTP.Port == 0 {
		c.SMTP.Port = 587
	}
	if c.Contact.To == "" {
		c.Contact.To = c.SMTP.Username
	}
}
