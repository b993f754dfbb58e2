package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kat-co/vala"
	"github.com/spf13/viper"
)

type Config struct {
	Env     string
	Debug   bool
	AppName string
	Build   string

	API struct {
		BaseURL string
		Timeout time.Duration
	}

	Auth struct {
		TokenFile string
	}

	Rollbar struct {
		Token string
	}
}

// NewConfig loads configuration from config/.env.<env> (if present) and the
// environment. ENV selects DEV (local; default), TEST, QA or PROD.
func NewConfig() (*Config, error) {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Masomo Admin")
	v.SetDefault("build", "dev")
	v.SetDefault("apiBaseUrl", "http://localhost:8000")
	v.SetDefault("apiTimeout", 30*time.Second)
	v.SetDefault("authTokenFile", filepath.Join(homeDir(), ".masomo", "token"))

	env := os.Getenv("ENV")
	if env == "" {
		env = "DEV"
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err = godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf := &Config{
		Env:     env,
		Debug:   v.GetBool("debug"),
		AppName: v.GetString("appName"),
		Build:   v.GetString("build"),
	}
	conf.API.BaseURL = v.GetString("apiBaseUrl")
	conf.API.Timeout = v.GetDuration("apiTimeout")
	conf.Auth.TokenFile = v.GetString("authTokenFile")
	conf.Rollbar.Token = v.GetString("rollbarToken")

	err := vala.BeginValidation().Validate(
		vala.StringNotEmpty(conf.API.BaseURL, "apiBaseUrl"),
		vala.StringNotEmpty(conf.Auth.TokenFile, "authTokenFile"),
	).Check()
	if err != nil {
		return nil, err
	}
	if conf.API.Timeout <= 0 {
		conf.API.Timeout = 30 * time.Second
	}
	return conf, nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
