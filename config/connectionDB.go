package config

import (
	"log"
	"os"

	"learnbrightly/internal/entity"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func ConnectionDb() *gorm.DB {
	if err := godotenv.Load(); err != nil {
		log.Printf("error load env %s", err)
	}

	dsn := os.Getenv("DATABASE_URL")
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // Disable prepared statements completely
	}), &gorm.Config{
		PrepareStmt: false,
		// Dialect errors become gorm sentinels, e.g. unique violations
		// surface as gorm.ErrDuplicatedKey.
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("error connect to database %s", err)
	}

	if err := db.AutoMigrate(
		&entity.Student{},
		&entity.Parent{},
		&entity.DyslexiaScore{},
		&entity.AuthEvent{},
	); err != nil {
		log.Fatalf("error migrate database %s", err)
	}

	return db
}
