package anim

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Frame is a snapshot sent to each viewer for rendering.
type Frame struct {
	Tick uint64
	A, B float64
}

// FrameChan is the per-viewer channel that receives frame snapshots.
type FrameChan chan Frame

// Loop drives the animation schedule and fans frames out to viewers.
type Loop struct {
	schedule Schedule
	interval time.Duration
	tick     uint64

	mu       sync.RWMutex
	viewers  map[string]FrameChan
	finished bool

	running  atomic.Bool
	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewLoop creates a loop that plays schedule at fps frames per second.
func NewLoop(schedule Schedule, fps int) *Loop {
	return &Loop{
		schedule: schedule,
		interval: FrameInterval(fps),
		viewers:  make(map[string]FrameChan),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// AddViewer registers a viewer. If the name is already watching, a suffix
// is added. Returns the effective viewer ID and its frame channel; the
// channel is already closed when the schedule has ended.
func (l *Loop) AddViewer(name string) (string, FrameChan) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := name
	if _, watching := l.viewers[id]; watching {
		id = fmt.Sprintf("%s_%04d", name, time.Now().UnixNano()%10000)
	}

	ch := make(FrameChan, 2)
	if l.finished {
		close(ch)
		return id, ch
	}
	l.viewers[id] = ch
	return id, ch
}

// RemoveViewer unregisters a viewer and closes its channel.
func (l *Loop) RemoveViewer(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if ch, ok := l.viewers[id]; ok {
		close(ch)
		delete(l.viewers, id)
	}
}

// Viewers returns the number of registered viewers.
func (l *Loop) Viewers() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.viewers)
}

// Start runs the loop in the background. Only the first Start or Run
// plays the schedule; later calls return at once.
func (l *Loop) Start() {
	if !l.running.Load() {
		go l.Run()
	}
}

// Run plays the schedule. Blocks until Stop is called or the schedule ends;
// when it ends every viewer channel is closed.
func (l *Loop) Run() {
	if !l.running.CompareAndSwap(false, true) {
		return
	}
	defer close(l.doneCh)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.step()
	for {
		select {
		case <-l.stopCh:
			return
		case <-ticker.C:
			if !l.step() {
				l.closeViewers()
				return
			}
		}
	}
}

// Stop shuts down the loop. Safe to call more than once.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stopCh) })
}

// Done is closed once Run returns.
func (l *Loop) Done() <-chan struct{} {
	return l.doneCh
}

// step broadcasts the current frame and advances the counter. It returns
// false once the schedule is exhausted.
func (l *Loop) step() bool {
	if l.schedule.Done(l.tick) {
		return false
	}

	a, b := l.schedule.Angles(l.tick)
	f := Frame{Tick: l.tick, A: a, B: b}
	l.tick++

	// Non-blocking send to each viewer
	l.mu.RLock()
	for _, ch := range l.viewers {
		select {
		case ch <- f:
		default:
			// Drop frame for slow viewer
		}
	}
	l.mu.RUnlock()
	return true
}

func (l *Loop) closeViewers() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.finished = true
	for id, ch := range l.viewers {
		close(ch)
		delete(l.viewers, id)
	}
}
