package database

import (
	"log"
	"os"
	"time"

	"pulsefeed/backend/internal/logger"
	"pulsefeed/backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect initializes the database connection and runs migrations.
func Connect(dsn string) {
	var err error

	// Configure GORM logger
	customLogger := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond, // Slow SQL threshold
			LogLevel:                  gormlogger.Warn,        // Log level
			IgnoreRecordNotFoundError: true,                   // Ignore ErrRecordNotFound error for logger
			Colorful:                  true,                   // Enable color
		},
	)

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: customLogger,
	})
	if err != nil {
		logger.L.Fatal("failed to connect to database", logger.Err(err))
	}

	logger.L.Info("database connection established")

	if err := Migrate(DB); err != nil {
		logger.L.Fatal("failed to migrate database", logger.Err(err))
	}

	logger.L.Info("database migrated successfully")
}

// Migrate runs the schema migrations for all models. It is exported so
// tests can run the same migrations against an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Attachment{},
		&models.Post{},
		&models.Reaction{},
	)
}
