package universe

import "sync"

//Command is the control instruction processed by the universe's main loop
type Command int

const (
	CommandStart Command = iota
	CommandStop
	CommandStep
	CommandRandomize
	CommandClear
)

var commandNames = map[Command]string{
	CommandStart:     "start",
	CommandStop:      "stop",
	CommandStep:      "step",
	CommandRandomize: "randomize",
	CommandClear:     "clear",
}

func (c Command) String() string {
	if s, ok := commandNames[c]; ok {
		return s
	}
	return "unknown"
}

//commandQueue is the unbounded FIFO between the callers and the main loop
//push never blocks, pop blocks until a command arrives or the queue is closed
type commandQueue struct {
	mu     sync.Mutex
	items  []Command
	ready  chan struct{} //signalled when items are pushed or the queue is closed
	closed bool
}

func newCommandQueue() *commandQueue {
	return &commandQueue{ready: make(chan struct{}, 1)}
}

func (q *commandQueue) push(c Command) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrClosed
	}
	q.items = append(q.items, c)
	q.mu.Unlock()
	q.notify()
	return nil
}

//pop waits for the oldest command
//ok is false when the queue is closed and drained
func (q *commandQueue) pop() (c Command, ok bool) {
	for {
		c, ok, closed := q.tryPop()
		if ok || closed {
			return c, ok
		}
		<-q.ready
	}
}

//tryPop takes the oldest command without waiting
//closed is true when there is nothing left and nothing more will arrive
func (q *commandQueue) tryPop() (c Command, ok bool, closed bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return c, false, q.closed
	}
	c = q.items[0]
	q.items = q.items[1:]
	return c, true, false
}

func (q *commandQueue) close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.mu.Unlock()
	q.notify()
}

func (q *commandQueue) notify() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}
