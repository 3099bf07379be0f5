package repository

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Kumkum15/Review-System/internal/model"

	slogGorm "github.com/orandin/slog-gorm" // slogGormはエイリアス
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// dialectorFor はデータベースURLからGORMのドライバを選びます。
//
//	postgres://... / postgresql://...  → PostgreSQL
//	sqlite://./submissions.db          → SQLite (ファイル)
//	sqlite:///submissions.db           → SQLite (相対パス)
//	sqlite:////var/data/x.db           → SQLite (絶対パス)
//	sqlite://:memory: / file:...       → SQLite
func dialectorFor(databaseURL string) (gorm.Dialector, error) {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"),
		strings.Contains(databaseURL, "host="):
		return postgres.Open(databaseURL), nil
	case strings.HasPrefix(databaseURL, "sqlite://"):
		path, err := sqlitePath(databaseURL)
		if err != nil {
			return nil, err
		}
		return sqlite.Open(path), nil
	case strings.HasPrefix(databaseURL, "file:"), strings.HasSuffix(databaseURL, ".db"), databaseURL == ":memory:":
		return sqlite.Open(databaseURL), nil
	default:
		return nil, fmt.Errorf("unsupported database URL: %q", databaseURL)
	}
}

// sqlitePath は sqlite:// URL からファイルパスを取り出します。
// SQLAlchemy と同じく、スラッシュ3つは相対パス、4つは絶対パスとして扱う。
func sqlitePath(databaseURL string) (string, error) {
	path := strings.TrimPrefix(databaseURL, "sqlite://")
	if strings.HasPrefix(path, "/") {
		path = path[1:]
	}
	if path == "" {
		return "", fmt.Errorf("sqlite database path is empty: %q", databaseURL)
	}
	return path, nil
}

// NewDB はGORMの接続を作成し、疎通確認まで行います
func NewDB(databaseURL string, appLogger *slog.Logger) (*gorm.DB, error) {
	if appLogger == nil {
		appLogger = slog.Default()
	}

	var gormLogLevel gormlogger.LogLevel
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		gormLogLevel = gormlogger.Info
	} else {
		gormLogLevel = gormlogger.Warn
	}

	slogGormLogger := slogGorm.New(
		slogGorm.WithHandler(appLogger.Handler()),
		slogGorm.WithTraceAll(),
		slogGorm.WithSlowThreshold(500*time.Millisecond),
	)

	dialector, err := dialectorFor(databaseURL)
	if err != nil {
		appLogger.Error("Invalid database URL", slog.Any("error", err))
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: slogGormLogger.LogMode(gormLogLevel),
	})
	if err != nil {
		appLogger.Error("Failed to connect to database with GORM", slog.Any("error", err))
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		appLogger.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		return nil, err
	}

	if err = sqlDB.Ping(); err != nil {
		appLogger.Error("Error pinging database", slog.Any("error", err))
		sqlDB.Close()
		return nil, err
	}

	// SQLite は書き込みが直列なので接続を絞る
	if dialector.Name() == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	appLogger.Info("Database connection established with GORM", slog.String("dialect", dialector.Name()))
	return db, nil
}

// Migrate はアプリケーションのテーブルを作成・更新します
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Submission{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
