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
	Debug        bool
	TestMode     bool
	Env          string // DEV (default), TEST, QA, PROD
	AppName      string
	SecretKey    string
	Build        string
	RollbarToken string
	DataDir      string // local key/value store location

	Server struct {
		Host                      string
		Port                      string
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
	}

	// Backend selects the persistence mode: remote when both URL and Key
	// are set, local otherwise. The mode is fixed for the process lifetime.
	Backend struct {
		URL        string
		Key        string
		DisableTLS bool
	}
}

var Conf *Config

func init() {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "JLSFinder")
	v.SetDefault("secretKey", "u$2p-xnd)qkr$+57=hz&wmxh2(h!x)#*c2(#yg4h^$cegm2emy")
	v.SetDefault("dataDir", filepath.Join(Getwd(), "data"))
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("server.jwtRefreshExpirationDelta", 4*time.Hour)

	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}
	if env == "TEST" {
		v.SetDefault("testMode", true)
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}

	v.AutomaticEnv()
	_ = v.BindEnv("backend.url", "BACKEND_URL")
	_ = v.BindEnv("backend.key", "BACKEND_KEY")
	_ = v.BindEnv("backend.disableTLS", "BACKEND_DISABLE_TLS")
	_ = v.BindEnv("rollbarToken", "ROLLBAR_TOKEN")
	_ = v.BindEnv("dataDir", "DATA_DIR")
	_ = v.BindEnv("server.port", "PORT")

	Conf = &Config{
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		Env:          env,
		AppName:      v.GetString("appName"),
		SecretKey:    v.GetString("secretKey"),
		Build:        v.GetString("build"),
		RollbarToken: v.GetString("rollbarToken"),
		DataDir:      v.GetString("dataDir"),
	}
	Conf.Server.Host = v.GetString("server.host")
	Conf.Server.Port = v.GetString("server.port")
	Conf.Server.JWTExpirationDelta = v.GetDuration("server.jwtExpirationDelta")
	Conf.Server.JWTRefreshExpirationDelta = v.GetDuration("server.jwtRefreshExpirationDelta")
	Conf.Backend.URL = v.GetString("backend.url")
	Conf.Backend.Key = v.GetString("backend.key")
	Conf.Backend.DisableTLS = v.GetBool("backend.disableTLS")
}

func (c *Config) ServerAddress() string {
	return c.Server.Host + ":" + c.Server.Port
}

// RemoteEnabled reports whether the hosted backend is configured.
// Both the endpoint URL and the access key must be non-empty.
func (c *Config) RemoteEnabled() bool {
	return c.Backend.URL != "" && c.Backend.Key != ""
}
