package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"github.com/matheus3301/catchup/internal/app"
	"github.com/matheus3301/catchup/internal/config"
)

func main() {
	// Optional .env in the working directory; the environment wins.
	_ = godotenv.Load()

	if config.APIKey() == "" {
		fmt.Fprintf(os.Stderr, "error: %s is not set\n", config.EnvAPIKey)
		fmt.Fprintf(os.Stderr, "Get a key at https://aistudio.google.com/ and export it before launching.\n")
		os.Exit(1)
	}

	fx.New(
		app.Module(),
		fx.NopLogger,
	).Run()
}
