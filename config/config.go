package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv pulls .env into the process env if one exists. Real deployments
// set the variables directly; the file is a local convenience.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		if _, statErr := os.Stat(".env"); statErr == nil {
			log.Printf("load .env: %v", err)
		}
	}
}
