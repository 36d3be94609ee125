package main

import (
	"context"
	"log"

	"campus-assistant-be/internal/bootstrap"
	"campus-assistant-be/internal/config"
	"campus-assistant-be/internal/server"
	"campus-assistant-be/internal/tracer"
)

func main() {
	// 0. Initialize Tracer (opt-in, OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)

	// 3. Start Background Services
	// Note: In a larger app, we might use an errgroup or supervisor here
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	if container.AnalyticsService != nil {
		go func() {
			log.Println("Background: Starting Analytics Service...")
			container.AnalyticsService.Start()
		}()
	}

	// 4. Initialize Server
	srv := server.New(cfg, container)

	// 5. Run Server
	log.Fatal(srv.Run())
}
