package main

import (
	"context"
	"log"

	"medibook/internal/config"
	"medibook/internal/db"
	"medibook/internal/model"
	"medibook/internal/repository"
	"medibook/internal/service"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.Category{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	categoryService := service.NewCategoryService(repository.NewCategoryRepository(gormDB))
	count, err := categoryService.SeedDefaults(context.Background())
	if err != nil {
		log.Fatalf("Failed to seed categories: %v", err)
	}
	log.Printf("Seeded %d categories", count)
}
