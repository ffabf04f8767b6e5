package notifier

import (
	"github.com/pfrederiksen/tourboard/internal/event"
)

// Notifier defines the interface for announcing newly listed tour stops
type Notifier interface {
	// Notify posts notifications for the given stops
	Notify(events []event.Event) error
}
