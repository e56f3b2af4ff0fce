package main

import (
	"errors"
	"os"

	"github.com/joho/godotenv"

	"github.com/riskibarqy/scouting-platform/internal/platform/logging"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.Default().Warn("load .env failed", "error", err)
	}

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
