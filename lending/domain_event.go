package lending

import (
	"time"
)

// DomainEvent is the contract for all lifecycle notifications handed to the
// EventPublisher. Kind doubles as the routing key on broker transports.
type DomainEvent interface {
	Kind() string
	HasOccurredAt() time.Time
}

// DomainEvents is an alias type for a slice of DomainEvent.
type DomainEvents = []DomainEvent
