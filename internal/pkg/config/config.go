package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DBUsername   string `yaml:"db_username"`
	DBPassword   string `yaml:"db_password"`
	DBHost       string `yaml:"db_host"`
	DBPort       string `yaml:"port"`
	DBName       string `yaml:"db_name"`
	DisableTLS   bool   `yaml:"disable_tls"`
	BaseUrl      string `yaml:"base_url"`
	JWTKey       string `yaml:"jwt_key"`
	RedisAddr    string `yaml:"redis_addr"`
	EventChannel string `yaml:"event_channel"`
	MediaPath    string `yaml:"media_path"`
}

func NewConfig() (*Config, error) {
	var c Config

	yamlFile, err := os.ReadFile("config.yaml")
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(yamlFile, &c)
	if err != nil {
		return nil, err
	}

	if c.DBUsername == "" || c.DBPassword == "" || c.DBHost == "" || c.DBName == "" {
		return nil, errors.New("missing required database configuration")
	}

	if c.EventChannel == "" {
		c.EventChannel = "hrportal:events"
	}
	if c.MediaPath == "" {
		c.MediaPath = "statics"
	}

	return &c, nil
}
