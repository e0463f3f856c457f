package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Debug   bool
	AppName string
	Env     string
	Build   string

	DashboardURL     string
	LoginLinkPattern string
	KeyringService   string

	NotifyEndpoint string
	NotifyToken    string // LINE_NOTIFY_TOKEN; beats the stored token
	NotifyTimeout  time.Duration

	PageTimeout   time.Duration // bounded wait on page regions
	SettleTimeout time.Duration // network-settle wait around login

	RollbarToken string
}

func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", false)
	v.SetDefault("appName", "LETUS Watcher")
	v.SetDefault("build", "dev")
	v.SetDefault("dashboardURL", "https://letus.ed.tus.ac.jp/my/")
	v.SetDefault("loginLinkPattern", "Log in")
	v.SetDefault("keyringService", "LETUS_CHECKER")
	v.SetDefault("notifyEndpoint", "https://notify-api.line.me/api/notify")
	v.SetDefault("notifyTimeout", 10*time.Second)
	v.SetDefault("pageTimeout", 15*time.Second)
	v.SetDefault("settleTimeout", 30*time.Second)

	env := os.Getenv("ENV") // DEV (local; default), TEST, PROD
	if env == "" {
		env = "DEV"
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()
	_ = v.BindEnv("debug", "DEBUG")
	_ = v.BindEnv("dashboardURL", "DASHBOARD_URL")
	_ = v.BindEnv("notifyToken", "LINE_NOTIFY_TOKEN")
	_ = v.BindEnv("rollbarToken", "ROLLBAR_TOKEN")

	return &Config{
		Debug:            v.GetBool("debug"),
		AppName:          v.GetString("appName"),
		Env:              env,
		Build:            v.GetString("build"),
		DashboardURL:     v.GetString("dashboardURL"),
		LoginLinkPattern: v.GetString("loginLinkPattern"),
		KeyringService:   v.GetString("keyringService"),
		NotifyEndpoint:   v.GetString("notifyEndpoint"),
		NotifyToken:      v.GetString("notifyToken"),
		NotifyTimeout:    v.GetDuration("notifyTimeout"),
		PageTimeout:      v.GetDuration("pageTimeout"),
		SettleTimeout:    v.GetDuration("settleTimeout"),
		RollbarToken:     v.GetString("rollbarToken"),
	}
}
