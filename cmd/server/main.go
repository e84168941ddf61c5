package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/avolkov/microblog/internal/server"
	"github.com/avolkov/microblog/internal/server/config"
)

func main() {

	ctx := context.Background()

	// .env is optional, real env vars still take effect without it
	_ = godotenv.Load()

	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
