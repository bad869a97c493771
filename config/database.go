package config

import (
	"os"

	"github.com/glebarez/sqlite"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDB opens the database from DB_URL. Without a Postgres DSN it falls
// back to a local SQLite file, which is enough for a single-operator shop.
func ConnectDB() {
	dsn := os.Getenv("DB_URL")

	var (
		db  *gorm.DB
		err error
	)
	if dsn != "" {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	} else {
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "car_wash.db"
		}
		log.Warnf("DB_URL not set, using SQLite database at %s", path)
		db, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	}
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}

	DB = db
}
