package core

import (
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	DatabaseConfig struct {
		Engine        string // postgres | memory
		Driver        string
		Host          string
		Port          string
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
	}

	ServerConfig struct {
		Port            string
		Host            string
		DebugHost       string
		ClientURL       string
		BodyLimit       string
		ShutdownTimeout time.Duration
		ReadTimeout     time.Duration
		WriteTimeout    time.Duration
	}

	AuthConfig struct {
		Mode          string // dev | jwt
		SecretKey     string
		JWTExpiration time.Duration
	}

	RateLimitConfig struct {
		Max       int
		Window    time.Duration
		RedisAddr string
	}

	UploadsConfig struct {
		Dir             string
		LectureMaxSize  int64
		ResourceMaxSize int64
		ResourceSubdir  string
	}

	Config struct {
		AppName      string
		Env          string
		Build        string
		Debug        bool
		TestMode     bool
		RollbarToken string

		Database  DatabaseConfig
		Server    ServerConfig
		Auth      AuthConfig
		RateLimit RateLimitConfig
		Uploads   UploadsConfig
	}
)

func (db DatabaseConfig) Address() string {
	return net.JoinHostPort(db.Host, db.Port)
}

func (srv ServerConfig) Address() string {
	return net.JoinHostPort(srv.Host, srv.Port)
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// NewConfig reads the configuration from the environment and an optional `config/.env.<env>` file.
func NewConfig() *Config {
	conf := viper.New()

	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("appName", "Cryptography Resource Manager")
	conf.SetDefault("build", "develop")
	conf.SetDefault("rollbarToken", "")

	conf.SetDefault("db.engine", "postgres")
	conf.SetDefault("db.host", "localhost")
	conf.SetDefault("db.port", "5432")
	conf.SetDefault("db.name", "crypto_resources")
	conf.SetDefault("db.user", "postgres")
	conf.SetDefault("db.password", "")
	conf.SetDefault("db.adminUser", "")
	conf.SetDefault("db.adminPassword", "")
	conf.SetDefault("db.disableTLS", true)

	conf.SetDefault("server.port", "5001")
	conf.SetDefault("server.host", "")
	conf.SetDefault("server.debugHost", "localhost:6001")
	conf.SetDefault("server.clientURL", "http://localhost:3000")
	conf.SetDefault("server.bodyLimit", "10M")
	conf.SetDefault("server.shutdownTimeout", 5*time.Second)
	conf.SetDefault("server.readTimeout", 30*time.Second)
	conf.SetDefault("server.writeTimeout", 60*time.Second)

	conf.SetDefault("auth.mode", "dev")
	conf.SetDefault("auth.secretKey", "change-me-k8#2x!d9q@3mz7&4pv1$w6e")
	conf.SetDefault("auth.jwtExpiration", 24*time.Hour)

	conf.SetDefault("rateLimit.max", 100)
	conf.SetDefault("rateLimit.window", 15*time.Minute)
	conf.SetDefault("rateLimit.redisAddr", "")

	conf.SetDefault("uploads.dir", "uploads")
	conf.SetDefault("uploads.lectureMaxSize", 50<<20)
	conf.SetDefault("uploads.resourceMaxSize", 10<<20)

	env := os.Getenv("ENV") // development (default), test, production
	if env == "" {
		env = os.Getenv("NODE_ENV")
	}
	env = strings.ToLower(env)
	if env == "" {
		env = "development"
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(configDir(), ".env."+env)
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}

	bindEnv(conf, map[string]string{
		"build":                  "BUILD",
		"rollbarToken":           "ROLLBAR_TOKEN",
		"db.engine":              "DB_ENGINE",
		"db.host":                "DB_HOST",
		"db.port":                "DB_PORT",
		"db.name":                "DB_NAME",
		"db.user":                "DB_USER",
		"db.password":            "DB_PASSWORD",
		"db.adminUser":           "DB_ADMIN_USER",
		"db.adminPassword":       "DB_ADMIN_PASSWORD",
		"db.disableTLS":          "DB_DISABLE_TLS",
		"server.port":            "PORT",
		"server.host":            "HOST",
		"server.debugHost":       "DEBUG_HOST",
		"server.clientURL":       "CLIENT_URL",
		"server.bodyLimit":       "BODY_LIMIT",
		"server.shutdownTimeout": "SHUTDOWN_TIMEOUT",
		"auth.mode":              "AUTH_MODE",
		"auth.secretKey":         "SECRET_KEY",
		"auth.jwtExpiration":     "JWT_EXPIRATION",
		"rateLimit.max":          "RATE_LIMIT_MAX",
		"rateLimit.window":       "RATE_LIMIT_WINDOW",
		"rateLimit.redisAddr":    "REDIS_ADDR",
		"uploads.dir":            "UPLOADS_DIR",
	})
	conf.AutomaticEnv()

	return &Config{
		AppName:      conf.GetString("appName"),
		Env:          env,
		Build:        conf.GetString("build"),
		Debug:        env == "development",
		TestMode:     env == "test",
		RollbarToken: conf.GetString("rollbarToken"),
		Database: DatabaseConfig{
			Engine:        conf.GetString("db.engine"),
			Driver:        "postgres",
			Host:          conf.GetString("db.host"),
			Port:          conf.GetString("db.port"),
			Name:          conf.GetString("db.name"),
			User:          conf.GetString("db.user"),
			Password:      conf.GetString("db.password"),
			AdminUser:     conf.GetString("db.adminUser"),
			AdminPassword: conf.GetString("db.adminPassword"),
			DisableTLS:    conf.GetBool("db.disableTLS"),
		},
		Server: ServerConfig{
			Port:            conf.GetString("server.port"),
			Host:            conf.GetString("server.host"),
			DebugHost:       conf.GetString("server.debugHost"),
			ClientURL:       conf.GetString("server.clientURL"),
			BodyLimit:       conf.GetString("server.bodyLimit"),
			ShutdownTimeout: conf.GetDuration("server.shutdownTimeout"),
			ReadTimeout:     conf.GetDuration("server.readTimeout"),
			WriteTimeout:    conf.GetDuration("server.writeTimeout"),
		},
		Auth: AuthConfig{
			Mode:          conf.GetString("auth.mode"),
			SecretKey:     conf.GetString("auth.secretKey"),
			JWTExpiration: conf.GetDuration("auth.jwtExpiration"),
		},
		RateLimit: RateLimitConfig{
			Max:       conf.GetInt("rateLimit.max"),
			Window:    conf.GetDuration("rateLimit.window"),
			RedisAddr: conf.GetString("rateLimit.redisAddr"),
		},
		Uploads: UploadsConfig{
			Dir:             conf.GetString("uploads.dir"),
			LectureMaxSize:  conf.GetInt64("uploads.lectureMaxSize"),
			ResourceMaxSize: conf.GetInt64("uploads.resourceMaxSize"),
			ResourceSubdir:  "resources",
		},
	}
}

func bindEnv(conf *viper.Viper, keys map[string]string) {
	for key, env := range keys {
		_ = conf.BindEnv(key, env)
	}
}

func configDir() string {
	if dir := os.Getenv("CONFIG_DIR"); dir != "" {
		return dir
	}
	return "config"
}
