package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

var (
	once     sync.Once
	instance *Config
)

const envFile = "./configs/.env"

type Config struct {
}

// New loads ./configs/.env once. A missing file is fine: plain environment
// variables are used then.
func New() *Config {
	once.Do(func() {
		err := godotenv.Load(envFile)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				log.Fatal("loading envs error: ", err)
			}
			log.Printf("%s not found, using process environment", envFile)
		}
		instance = &Config{}
	})
	return instance
}

func (c *Config) GetString(key string) string {
	return os.Getenv(key)
}

// GetStringOr returns def when key is unset or empty
func (c *Config) GetStringOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
