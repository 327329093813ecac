package metrics

// IncrementBoardCreated increments the board creation counter
func (m *Metrics) IncrementBoardCreated() {
	m.safeExecute("IncrementBoardCreated", func() {
		m.BoardsCreatedTotal.Inc()
	})
}

// IncrementTaskCreated increments the task creation counter
func (m *Metrics) IncrementTaskCreated() {
	m.safeExecute("IncrementTaskCreated", func() {
		m.TasksCreatedTotal.Inc()
	})
}

// IncrementTaskMoved increments the task move counter
func (m *Metrics) IncrementTaskMoved() {
	m.safeExecute("IncrementTaskMoved", func() {
		m.TasksMovedTotal.Inc()
	})
}

// IncrementNotificationCreated increments the notification creation counter
func (m *Metrics) IncrementNotificationCreated() {
	m.safeExecute("IncrementNotificationCreated", func() {
		m.NotificationsCreatedTotal.Inc()
	})
}

// SetPresenceUsersOnline sets the distinct online users gauge
func (m *Metrics) SetPresenceUsersOnline(count int) {
	m.safeExecute("SetPresenceUsersOnline", func() {
		m.PresenceUsersOnline.Set(float64(count))
	})
}

// IncrementWebsocketConnections increments the open connection gauge
func (m *Metrics) IncrementWebsocketConnections() {
	m.safeExecute("IncrementWebsocketConnections", func() {
		m.WebsocketConnections.Inc()
	})
}

// DecrementWebsocketConnections decrements the open connection gauge
func (m *Metrics) DecrementWebsocketConnections() {
	m.safeExecute("DecrementWebsocketConnections", func() {
		m.WebsocketConnections.Dec()
	})
}
