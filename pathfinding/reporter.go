package pathfinding

import "github.com/Starath/GridPath_BE/grid"

// Reporter receives trace events synchronously from the search loop.
type Reporter interface {
	Report(Event)
}

type ReporterFunc func(Event)

func (f ReporterFunc) Report(e Event) { f(e) }

// Discard drops every event.
var Discard Reporter = ReporterFunc(func(Event) {})

// Recorder keeps every event in arrival order.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Report(e Event) {
	r.Events = append(r.Events, e)
}

// Cells returns the cells of all recorded events of the given kind.
func (r *Recorder) Cells(kind EventKind) []grid.Coordinate {
	var out []grid.Coordinate
	for _, e := range r.Events {
		if e.Kind == kind {
			out = append(out, e.Cell)
		}
	}
	return out
}

// Count returns how many events of the given kind were recorded.
func (r *Recorder) Count(kind EventKind) int {
	n := 0
	for _, e := range r.Events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
