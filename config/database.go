package config

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	DB   *pgxpool.Pool
	Gorm *gorm.DB
)

// InitDB opens the refresh-history database. An empty DATABASE_URL leaves both handles nil
// and refresh runs are only logged.
func InitDB(cfg *Config) {
	if cfg.DatabaseURL == "" {
		log.Println("⚠️ DATABASE_URL not set, refresh history disabled")
		return
	}
	initPgx(cfg.DatabaseURL)
	initGORM(cfg.DatabaseURL, cfg.IsProduction())
}

func initPgx(url string) {
	var err error
	DB, err = pgxpool.New(context.Background(), url)
	if err != nil {
		log.Fatalf("❌ Unable to connect to database: %v", err)
	}

	ctx, cancel := WithTimeout()
	defer cancel()
	if err = DB.Ping(ctx); err != nil {
		log.Fatalf("❌ Database ping failed: %v", err)
	}

	log.Println("✅ Database connected (pgx)")
}

func initGORM(dsn string, production bool) {
	gormLogger := logger.Default.LogMode(logger.Info)
	if production {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	var err error
	Gorm, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:  gormLogger,
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		log.Fatalf("❌ Failed to connect to database with GORM: %v", err)
	}
	if sqlDB, err := Gorm.DB(); err == nil {
		sqlDB.SetMaxOpenConns(5)
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
		sqlDB.SetConnMaxIdleTime(2 * time.Minute)
	}
	log.Println("✅ Database connected (GORM)")
}

func CloseDB() {
	if DB != nil {
		DB.Close()
		log.Println("✅ Database connection closed (pgx)")
	}
	if Gorm != nil {
		sqlDB, _ := Gorm.DB()
		if sqlDB != nil {
			sqlDB.Close()
			log.Println("✅ Database connection closed (GORM)")
		}
	}
}

// WithTimeout returns a context with a 10s timeout
func WithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func WithCustomTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}
