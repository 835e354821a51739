// iface.go defines the StoreInterface for dependency injection and testing.
//
// The concrete *Store type satisfies this interface. Code that depends on
// the store (e.g., the cmd layer) can accept StoreInterface instead of
// *Store, enabling mock injection in tests.
package store

import (
	"github.com/chronoline/chronoline/pkg/model"
)

// StoreInterface defines the full set of store operations.
// The concrete *Store type implements this interface.
type StoreInterface interface {
	// Close closes the database connection.
	Close() error

	// --- Events ---

	// CreateEvent inserts a new event with a fresh UUID.
	CreateEvent(name string, duration model.DurationType) (*model.Event, error)

	// ImportEvent inserts an event under its existing ID.
	ImportEvent(e model.Event) error

	// GetEvent retrieves an event by ID.
	GetEvent(id string) (*model.Event, error)

	// ListEvents returns all events in creation order.
	ListEvents() ([]model.Event, error)

	// SetEventEnabled flips an event's enabled bit.
	SetEventEnabled(id string, enabled bool) error

	// DeleteEvent removes an event and its referencing assertions.
	DeleteEvent(id string) error

	// --- Assertions ---

	// CreateAssertion inserts a new assertion between existing events.
	CreateAssertion(sourceID, targetID string, rel model.Relation, conf model.Confidence) (*model.Assertion, error)

	// ImportAssertion inserts an assertion under its existing ID.
	ImportAssertion(a model.Assertion) error

	// GetAssertion retrieves an assertion by ID.
	GetAssertion(id string) (*model.Assertion, error)

	// ListAssertions returns all assertions in creation order.
	ListAssertions() ([]model.Assertion, error)

	// SetAssertionEnabled flips an assertion's enabled bit.
	SetAssertionEnabled(id string, enabled bool) error

	// DeleteAssertion removes an assertion.
	DeleteAssertion(id string) error

	// --- Solve log ---

	// RecordSolve appends a solver result to the log.
	RecordSolve(res model.Result) (int64, error)

	// ListSolves returns the most recent solve runs, newest first.
	ListSolves(limit int) ([]SolveRun, error)

	// CountSolves returns the total number of logged solves.
	CountSolves() int64
}

// Compile-time check that *Store satisfies StoreInterface.
var _ StoreInterface = (*Store)(nil)
