package testutil

import (
	"context"
	"sync"

	"github.com/shelfwise/lending-lifecycle-go/lending"
)

// PublisherSpy is an EventPublisher implementation that records published
// events for testing and can be armed to fail.
type PublisherSpy struct {
	mu       sync.Mutex
	events   []lending.DomainEvent
	failWith error
}

// NewPublisherSpy creates a new PublisherSpy instance.
func NewPublisherSpy() *PublisherSpy {
	return &PublisherSpy{}
}

// Publish records the event, or returns the armed failure without
// recording anything.
func (s *PublisherSpy) Publish(_ context.Context, event lending.DomainEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return s.failWith
	}

	s.events = append(s.events, event)

	return nil
}

// FailWith makes every subsequent Publish return err; nil disarms it.
func (s *PublisherSpy) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failWith = err
}

// Events returns a copy of all recorded events.
func (s *PublisherSpy) Events() []lending.DomainEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]lending.DomainEvent(nil), s.events...)
}

// Kinds returns the kinds of all recorded events, in publish order.
func (s *PublisherSpy) Kinds() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	kinds := make([]string, 0, len(s.events))
	for _, event := range s.events {
		kinds = append(kinds, event.Kind())
	}

	return kinds
}

// Reset clears all recorded events.
func (s *PublisherSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = s.events[:0]
}

var _ lending.EventPublisher = (*PublisherSpy)(nil)
