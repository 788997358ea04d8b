package main

import (
	"log"
	"os"

	"examgen-be/internal/constant"
	"examgen-be/internal/model"
	"examgen-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting Authoritative GORM Migration...")

	// 3. Pre-Migration: Extensions (Things GORM AutoMigrate doesn't do)
	log.Println("Step 1: Setting up Extensions...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models
	log.Println("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.Problem{},
		&model.ProblemEmbedding{},
		&model.GenerationRun{},
		&model.PromptTemplate{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Seed: the standard template, so a fresh install can render prompts
	// without any authoring step.
	log.Println("Step 3: Seeding default prompt template...")

	var count int64
	if err := db.Model(&model.PromptTemplate{}).Count(&count).Error; err != nil {
		log.Fatalf("Error: Failed to count prompt templates: %v", err)
	}
	if count == 0 {
		seed := model.PromptTemplate{
			Name:        constant.DefaultTemplateName,
			Description: "Standard exam problem template",
			Body:        constant.DefaultTemplateBody,
			Preset:      constant.DefaultPreset,
			IsActive:    true,
		}
		if err := db.Create(&seed).Error; err != nil {
			log.Fatalf("Error: Failed to seed default template: %v", err)
		}
		log.Printf("Seeded template %q", constant.DefaultTemplateName)
	} else {
		log.Printf("Templates already present (%d), skipping seed", count)
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
