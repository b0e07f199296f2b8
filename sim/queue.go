// Implements the ReadyQueue, which holds processes waiting for a free CPU.
// Processes are enqueued when no CPU is idle or when an earlier waiter
// takes the idle CPU ahead of them.

package sim

import (
	"fmt"
	"strings"
)

// ReadyQueue represents a FIFO queue of processes waiting for a CPU.
// Admission is first-come-first-served: nothing ever jumps the queue.
type ReadyQueue struct {
	queue []ProcessID
}

// Enqueue adds a process to the back of the ready queue.
func (rq *ReadyQueue) Enqueue(id ProcessID) {
	rq.queue = append(rq.queue, id)
}

// Dequeue removes the process at the front of the queue.
// ok is false if the queue is empty.
func (rq *ReadyQueue) Dequeue() (id ProcessID, ok bool) {
	if len(rq.queue) == 0 {
		return 0, false
	}
	id = rq.queue[0]
	rq.queue = rq.queue[1:]
	return id, true
}

// Peek returns the process at the front of the queue without removing it.
// ok is false if the queue is empty.
func (rq *ReadyQueue) Peek() (id ProcessID, ok bool) {
	if len(rq.queue) == 0 {
		return 0, false
	}
	return rq.queue[0], true
}

// Len returns the number of processes in the queue.
func (rq *ReadyQueue) Len() int {
	return len(rq.queue)
}

// Contains reports whether id is waiting in the queue.
func (rq *ReadyQueue) Contains(id ProcessID) bool {
	for _, q := range rq.queue {
		if q == id {
			return true
		}
	}
	return false
}

func (rq *ReadyQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range rq.queue {
		sb.WriteString(fmt.Sprint(val))
		if i < len(rq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
