package client

// MockMailer implements Mailer for testing without an SMTP server
type MockMailer struct {
	Configured bool

	SendEmailFunc            func(to []string, subject, body string) error
	SendWelcomeEmailFunc     func(to, userName string) error
	SendBoardJoinedEmailFunc func(to, ownerName, memberName, boardTitle string) error
}

// NewMockMailer creates a new mock mailer for testing
func NewMockMailer() *MockMailer {
	return &MockMailer{Configured: true}
}

// IsConfigured returns the configured flag
func (m *MockMailer) IsConfigured() bool {
	return m.Configured
}

// SendEmail records or delegates a plain text send
func (m *MockMailer) SendEmail(to []string, subject, body string) error {
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(to, subject, body)
	}
	return nil
}

// SendWelcomeEmail records or delegates a welcome send
func (m *MockMailer) SendWelcomeEmail(to, userName string) error {
	if m.SendWelcomeEmailFunc != nil {
		return m.SendWelcomeEmailFunc(to, userName)
	}
	return nil
}

// SendBoardJoinedEmail records or delegates a board-joined send
func (m *MockMailer) SendBoardJoinedEmail(to, ownerName, memberName, boardTitle string) error {
	if m.SendBoardJoinedEmailFunc != nil {
		return m.SendBoardJoinedEmailFunc(to, ownerName, memberName, boardTitle)
	}
	return nil
}

// Ensure MockMailer implements Mailer
var _ Mailer = (*MockMailer)(nil)
