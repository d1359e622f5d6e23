package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	jsoniter "github.com/json-iterator/go"
)

type Account struct {
	ScreenName string `json:"screen_name"`
	Cookie     string `json:"cookie"`
}

type Config struct {
	Accounts []Account `json:"accounts"`

	Proxy     string `json:"proxy"      env:"XDM_PROXY"`
	SentryDsn string `json:"sentry_dsn" env:"XDM_SENTRY_DSN"`

	// A single account from the environment, used before Accounts.
	EnvScreenName string `json:"-" env:"TWITTER_USERNAME"`
	EnvCookie     string `json:"-" env:"TWITTER_COOKIE_STRING"`
}

// LoadConfig reads path, if set, and applies the environment on top of it.
func LoadConfig(path string) (*Config, error) {
	var config Config

	if path != "" {
		fs, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer fs.Close()

		err = jsoniter.NewDecoder(fs).Decode(&config)
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if err := env.Parse(&config); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	return &config, nil
}

// Account picks the account to use. An empty screenName selects the
// environment account, then the first configured one.
func (c *Config) Account(screenName string) (Account, error) {
	screenName = strings.TrimPrefix(screenName, "@")

	if c.EnvCookie != "" && (screenName == "" || strings.EqualFold(screenName, c.EnvScreenName)) {
		return Account{ScreenName: c.EnvScreenName, Cookie: c.EnvCookie}, nil
	}

	for _, act := range c.Accounts {
		if screenName == "" || strings.EqualFold(act.ScreenName, screenName) {
			return act, nil
		}
	}

	if screenName == "" {
		return Account{}, fmt.Errorf("no account configured")
	}
	return Account{}, fmt.Errorf("no account configured for %s", screenName)
}
