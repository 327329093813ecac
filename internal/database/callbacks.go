package database

import (
	"database/sql"
	"time"

	"gorm.io/gorm"
)

// MetricsRecorder is an interface for recording database metrics
type MetricsRecorder interface {
	RecordDBError(operation, table string)
	UpdateDBStats(stats sql.DBStats)
}

// RegisterMetricsCallbacks registers GORM callbacks that count failed
// statements per operation and table.
func RegisterMetricsCallbacks(db *gorm.DB, recorder MetricsRecorder) {
	record := func(operation string) func(*gorm.DB) {
		return func(db *gorm.DB) {
			if db.Error == nil || db.Error == gorm.ErrRecordNotFound {
				return
			}
			table := db.Statement.Table
			if table == "" {
				table = "unknown"
			}
			recorder.RecordDBError(operation, table)
		}
	}

	db.Callback().Query().After("gorm:query").Register("metrics:query_after", record("select"))
	db.Callback().Create().After("gorm:create").Register("metrics:create_after", record("insert"))
	db.Callback().Update().After("gorm:update").Register("metrics:update_after", record("update"))
	db.Callback().Delete().After("gorm:delete").Register("metrics:delete_after", record("delete"))
}

// StartDBStatsCollector periodically pushes connection pool stats to the
// recorder. Closing the returned channel stops the collector.
func StartDBStatsCollector(db *gorm.DB, recorder MetricsRecorder) chan struct{} {
	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					continue
				}
				recorder.UpdateDBStats(sqlDB.Stats())
			case <-done:
				return
			}
		}
	}()

	return done
}
