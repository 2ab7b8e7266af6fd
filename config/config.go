package config

import (
	"log"

	"github.com/joho/godotenv"
)

// LoadEnv pulls in .env when present; real deployments set the environment
// directly.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}
}
