package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/regnull/easyecies"
)

const (
	configName = "easyecies"
	envPrefix  = "EASYECIES"
)

// config holds the settings shared by all commands. Flags override them.
type config struct {
	KeySize  int    `mapstructure:"key_size"`
	Dir      string `mapstructure:"dir"`
	Prefix   string `mapstructure:"prefix"`
	LogLevel string `mapstructure:"log_level"`
}

// loadConfig reads easyecies.yaml from the working directory or
// $HOME/.easyecies, or the given file, and applies EASYECIES_* environment
// variables on top. A missing default file is not an error.
func loadConfig(file string) (*config, error) {
	v := viper.New()
	v.SetDefault("key_size", easyecies.DefaultKeySize)
	v.SetDefault("dir", ".")
	v.SetDefault("prefix", "")
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.easyecies")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config parse error: %w", err)
	}
	return cfg, nil
}
