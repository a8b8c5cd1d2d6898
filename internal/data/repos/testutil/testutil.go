package testutil

import (
	"sync"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/craftora/craftora-backend/internal/data/db"
	"github.com/craftora/craftora-backend/internal/platform/logger"
)

var (
	dbOnce sync.Once
	dbConn *gorm.DB
	dbErr  error

	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// DB returns a process-wide in-memory sqlite database with the full schema
// migrated. Tests isolate themselves with Tx, which rolls back on cleanup.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dbOnce.Do(func() {
		conn, err := gorm.Open(sqlite.Open("file:craftora_test?mode=memory&cache=shared"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		if err != nil {
			dbErr = err
			return
		}

		sqlDB, err := conn.DB()
		if err != nil {
			dbErr = err
			return
		}
		// Shared-cache in-memory sqlite lives and dies with a single
		// connection.
		sqlDB.SetMaxOpenConns(1)

		if err := conn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			dbErr = err
			return
		}

		if err := db.AutoMigrateAll(conn); err != nil {
			dbErr = err
			return
		}
		dbConn = conn
	})

	if dbErr != nil {
		tb.Fatalf("failed to init test db: %v", dbErr)
	}
	return dbConn
}

func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}
