package adapter

import "time"

// Clock defines an interface for time operations to enable deterministic tests
//
//go:generate mockgen -source=clock.go -destination=../mocks/clock.go -package=mocks -mock_names=Clock=MockClock
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock
type RealClock struct{}

// NewClock creates a new real clock
func NewClock() Clock {
	return &RealClock{}
}

func (RealClock) Now() time.Time {
	return time.Now().UTC()
}
