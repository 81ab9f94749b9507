package main

import (
	"context"
	"log"
	"os"

	"admissions-ai-be/internal/constant"
	"admissions-ai-be/internal/entity"
	"admissions-ai-be/internal/repository/implementation"
	"admissions-ai-be/pkg/database"

	"github.com/joho/godotenv"
)

// Seeds a demo project for local development.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	projects := implementation.NewChatProjectRepository(db)

	project := &entity.ChatProject{
		Name:      "招生咨询演示项目",
		ModelType: constant.ModelTypeOllama,
		Strategy:  constant.StrategyPrecise,
	}
	if err := projects.Create(context.Background(), project); err != nil {
		log.Fatalf("Error: Failed to seed project: %v", err)
	}

	log.Printf("Seeded project %s (%s)", project.Name, project.Id)
}
