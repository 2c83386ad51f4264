package pathfinding

import (
	"github.com/zyedidia/generic/heap"
	"github.com/zyedidia/generic/queue"

	"github.com/Starath/GridPath_BE/grid"
)

// Item is a frontier entry. Cost is the accumulated cost when the entry was
// pushed; Priority orders the frontier.
type Item struct {
	Cell     grid.Coordinate
	Cost     float64
	Priority float64
}

// Frontier holds discovered cells awaiting expansion.
type Frontier interface {
	Put(item Item)
	Get() (Item, bool)
	Empty() bool
}

type queueFrontier struct {
	q *queue.Queue[Item]
}

// NewQueueFrontier returns a FIFO frontier that ignores priorities.
func NewQueueFrontier() Frontier {
	return &queueFrontier{q: queue.New[Item]()}
}

func (f *queueFrontier) Put(item Item) { f.q.Enqueue(item) }

func (f *queueFrontier) Get() (Item, bool) {
	if f.q.Empty() {
		return Item{}, false
	}
	return f.q.Dequeue(), true
}

func (f *queueFrontier) Empty() bool { return f.q.Empty() }

type priorityFrontier struct {
	h *heap.Heap[Item]
}

// NewPriorityFrontier returns a min-heap on Priority. Equal priorities pop in
// Coordinate.Less order so runs are reproducible.
func NewPriorityFrontier() Frontier {
	return &priorityFrontier{h: heap.New[Item](func(a, b Item) bool {
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		return a.Cell.Less(b.Cell)
	})}
}

func (f *priorityFrontier) Put(item Item) { f.h.Push(item) }

func (f *priorityFrontier) Get() (Item, bool) { return f.h.Pop() }

func (f *priorityFrontier) Empty() bool { return f.h.Size() == 0 }
