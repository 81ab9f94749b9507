package main

import (
	"context"
	"log"

	"admissions-ai-be/internal/bootstrap"
	"admissions-ai-be/internal/config"
	"admissions-ai-be/internal/server"
	"admissions-ai-be/internal/tracer"
	"admissions-ai-be/pkg/database"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	mongoClient, mongoDB, err := database.NewMongoDatabase(cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Panicf("Unable to connect to MongoDB: %v", err)
	}
	defer mongoClient.Disconnect(context.Background())

	container := bootstrap.NewContainer(gormDB, mongoDB, cfg)

	// Background: async ingest pipeline and the tool gateway liveness probe
	go func() {
		log.Println("Background: Starting Ingest Consumer...")
		if err := container.IngestConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()
	container.ToolGateway.StartProbe()
	defer container.ToolGateway.Close()

	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
