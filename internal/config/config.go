package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port     string
	DBDSN    string
	LogFile  string
	SeedDemo bool
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_DSN", "shelfwise.db") // sqlite file in project root
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("SEED_DEMO", true)

	cfg := Config{
		Port:     v.GetString("PORT"),
		DBDSN:    v.GetString("DB_DSN"),
		LogFile:  v.GetString("LOG_FILE"),
		SeedDemo: v.GetBool("SEED_DEMO"),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s SEED_DEMO=%v", cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.SeedDemo)
	return cfg
}
