package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Logger struct {
		Verbosity string `yaml:"verbosity"`
	} `yaml:"logger"`
	Allocator struct {
		Backend  string `yaml:"backend"`
		DeviceID int64  `yaml:"deviceID"`
	} `yaml:"allocator"`
	Metrics struct {
		ListenAddress string `yaml:"listenAddress"`
	} `yaml:"metrics"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}

	if config.Logger.Verbosity == "" {
		config.Logger.Verbosity = "info"
	}
	if config.Allocator.Backend == "" {
		config.Allocator.Backend = "auto"
	}
	if config.Metrics.ListenAddress == "" {
		config.Metrics.ListenAddress = ":9090"
	}

	switch config.Allocator.Backend {
	case "auto", "host", "cuda":
	default:
		return nil, fmt.Errorf("unknown allocator backend %q", config.Allocator.Backend)
	}

	return &config, nil
}
