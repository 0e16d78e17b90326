package flightdesk

import (
	"time"
)

// TimeProvider supplies "now" to the dispatch preamble. Inject a
// MockTimeProvider to pin the clock in tests.
type TimeProvider interface {
	Now() time.Time
}

// DefaultTimeProvider reads the system clock in UTC, the zone every
// schedule timestamp is stored in.
type DefaultTimeProvider struct{}

// NewDefaultTimeProvider creates a new DefaultTimeProvider.
func NewDefaultTimeProvider() *DefaultTimeProvider {
	return &DefaultTimeProvider{}
}

func (p *DefaultTimeProvider) Now() time.Time {
	return time.Now().UTC()
}

// MockTimeProvider returns a fixed time until moved with SetTime or Advance.
type MockTimeProvider struct {
	fixedTime time.Time
}

// NewMockTimeProvider creates a MockTimeProvider with the given fixed time.
func NewMockTimeProvider(t time.Time) *MockTimeProvider {
	return &MockTimeProvider{fixedTime: t}
}

// SetTime updates the fixed time returned by Now().
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.fixedTime = t
}

// Advance moves the clock forward by d.
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.fixedTime = m.fixedTime.Add(d)
}

func (m *MockTimeProvider) Now() time.Time {
	return m.fixedTime
}

// DisplayLayout is the human-facing timestamp layout used in prompts and replies.
const DisplayLayout = "1/2/2006, 3:04:05 PM"

// FormatDisplay renders t with DisplayLayout.
func FormatDisplay(t time.Time) string {
	return t.Format(DisplayLayout)
}

var (
	_ TimeProvider = (*DefaultTimeProvider)(nil)
	_ TimeProvider = (*MockTimeProvider)(nil)
)
