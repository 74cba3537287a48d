package processor

import (
	"github.com/mauv0809/club-ladder/internal/club"
	"github.com/mauv0809/club-ladder/internal/notifier"
)

// Store defines the database operations required by the processor.
type Store interface {
	club.ClubStore
}

// Notifier defines the notification operations required by the processor.
// This is an alias for the main notifier interface for decoupling.
type Notifier interface {
	notifier.Notifier
}
