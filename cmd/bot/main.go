package main

import (
	"context"
	"log"

	"order-intake-bot/internal/bootstrap"
	"order-intake-bot/internal/config"
	"order-intake-bot/internal/server"
)

func main() {
	// 1. Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// 2. Bootstrap dependencies (container)
	container, err := bootstrap.NewContainer(cfg)
	if err != nil {
		log.Fatalf("Unable to bootstrap: %v", err)
	}
	defer container.Logger.Sync()

	ctx := context.Background()

	// 3. Start background services
	go func() {
		log.Println("Background: Starting Order Archive Service...")
		if err := container.ArchiveService.Consume(ctx); err != nil {
			log.Printf("Background Archive Error: %v", err)
		}
	}()

	// 4. Ops surface (health + log read-back); not load-bearing for the bot
	srv := server.New(cfg, container.Logger, container.ReferenceService)
	go func() {
		if err := srv.Run(); err != nil {
			log.Printf("Ops server error: %v", err)
		}
	}()

	// 5. Run the bot (blocking)
	log.Println("✅ Bot is polling for updates")
	if err := container.Bot.Run(ctx, container.ConversationService); err != nil {
		log.Fatalf("Bot stopped: %v", err)
	}
}
