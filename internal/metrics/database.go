package metrics

import (
	"database/sql"
)

// UpdateDBStats updates database connection pool metrics
func (m *Metrics) UpdateDBStats(stats sql.DBStats) {
	m.safeExecute("UpdateDBStats", func() {
		m.DBConnectionsOpen.Set(float64(stats.OpenConnections))
		m.DBConnectionsInUse.Set(float64(stats.InUse))
		m.DBConnectionsIdle.Set(float64(stats.Idle))
	})
}

// RecordDBError records a failed database operation
func (m *Metrics) RecordDBError(operation, table string) {
	m.safeExecute("RecordDBError", func() {
		m.DBQueryErrors.WithLabelValues(operation, table).Inc()
	})
}
