package catalog

// Op names a catalog operation.
type Op string

const (
	OpSeed   Op = "seed"
	OpAdd    Op = "add"
	OpView   Op = "view"
	OpDelete Op = "delete"
)

// Event describes one catalog operation attempt and how it ended.
type Event struct {
	Op    Op
	Title string
	Genre string

	// OK is true if the operation took effect (always true for views).
	OK bool

	// Code is the Code of the operation's error, CodeOK on success.
	Code string

	// Message is the human-readable outcome, as shown to the user.
	Message string

	// Count is the number of books in the catalog after the operation.
	Count int
}

// Recorder receives an Event for every catalog operation.
// Record is called while the catalog lock is held, in operation order.
type Recorder interface {
	Record(ev Event)
}

// RecorderFunc adapts a function to the Recorder interface.
type RecorderFunc func(ev Event)

// Record calls f(ev).
func (f RecorderFunc) Record(ev Event) {
	f(ev)
}

type nopRecorder struct{}

func (nopRecorder) Record(Event) {}
