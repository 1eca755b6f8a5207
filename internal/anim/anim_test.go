package anim

import (
	"math"
	"strings"
	"testing"
	"time"
)

func TestScheduleAngles(t *testing.T) {
	s := DefaultSchedule()
	tests := []struct {
		n     uint64
		wantA float64
		wantB float64
	}{
		{0, 0, 0},
		{1, 0.1, 0.02},
		{10, 1, 0.2},
		{199, 19.9, 3.98},
	}
	for _, tt := range tests {
		a, b := s.Angles(tt.n)
		if math.Abs(a-tt.wantA) > 1e-9 || math.Abs(b-tt.wantB) > 1e-9 {
			t.Errorf("Angles(%d) = (%v, %v), want (%v, %v)", tt.n, a, b, tt.wantA, tt.wantB)
		}
	}
}

func TestScheduleDone(t *testing.T) {
	s := DefaultSchedule()
	if s.Done(199) {
		t.Error("frame 199 should still play")
	}
	if !s.Done(200) {
		t.Error("frame 200 should be past the end")
	}
	forever := Schedule{Step: 0.1, Ratio: 0.2}
	if forever.Done(1 << 40) {
		t.Error("unlimited schedule reported done")
	}
}

func TestFrameInterval(t *testing.T) {
	if got := FrameInterval(24); got != time.Second/24 {
		t.Errorf("FrameInterval(24) = %v", got)
	}
	if got := FrameInterval(0); got != time.Second/DefaultFPS {
		t.Errorf("FrameInterval(0) = %v, want the default rate", got)
	}
	if got := SecsToFrames(0.5, 24); got != 12 {
		t.Errorf("SecsToFrames(0.5, 24) = %d, want 12", got)
	}
	if got := SecsToFrames(0.001, 24); got != 1 {
		t.Errorf("SecsToFrames(0.001, 24) = %d, want 1", got)
	}
}

func TestLoopBroadcast(t *testing.T) {
	l := NewLoop(DefaultSchedule(), 24)
	_, ch1 := l.AddViewer("alice")
	_, ch2 := l.AddViewer("bob")

	if !l.step() {
		t.Fatal("step on a fresh loop reported the schedule done")
	}
	for i, ch := range []FrameChan{ch1, ch2} {
		select {
		case f := <-ch:
			if f.Tick != 0 || f.A != 0 || f.B != 0 {
				t.Errorf("viewer %d got %+v, want frame 0", i, f)
			}
		default:
			t.Errorf("viewer %d received nothing", i)
		}
	}
}

func TestLoopDropsForSlowViewer(t *testing.T) {
	l := NewLoop(DefaultSchedule(), 24)
	_, ch := l.AddViewer("slow")
	for i := 0; i < 5; i++ {
		l.step()
	}
	if len(ch) != cap(ch) {
		t.Fatalf("channel holds %d frames, want %d", len(ch), cap(ch))
	}
	if f := <-ch; f.Tick != 0 {
		t.Errorf("oldest buffered frame = %d, want 0", f.Tick)
	}
}

func TestLoopDuplicateViewerNames(t *testing.T) {
	l := NewLoop(DefaultSchedule(), 24)
	id1, _ := l.AddViewer("carol")
	id2, _ := l.AddViewer("carol")
	if id1 != "carol" {
		t.Errorf("first id = %q, want carol", id1)
	}
	if id2 == id1 || !strings.HasPrefix(id2, "carol_") {
		t.Errorf("second id = %q, want a suffixed id", id2)
	}
	if l.Viewers() != 2 {
		t.Errorf("Viewers() = %d, want 2", l.Viewers())
	}

	l.RemoveViewer(id1)
	l.RemoveViewer(id1)
	if l.Viewers() != 1 {
		t.Errorf("Viewers() = %d after removal, want 1", l.Viewers())
	}
}

func TestLoopRunEndsWithSchedule(t *testing.T) {
	l := NewLoop(Schedule{Step: 0.1, Ratio: 0.2, Limit: 3}, 1000)
	_, ch := l.AddViewer("viewer")

	go l.Run()

	var ticks []uint64
	timeout := time.After(2 * time.Second)
	for {
		select {
		case f, ok := <-ch:
			if !ok {
				for i, tick := range ticks {
					if tick > 2 || (i > 0 && tick <= ticks[i-1]) {
						t.Errorf("received ticks %v, want increasing ticks below 3", ticks)
						break
					}
				}
				<-l.Done()
				return
			}
			ticks = append(ticks, f.Tick)
		case <-timeout:
			t.Fatal("loop did not finish")
		}
	}
}

func TestLoopStop(t *testing.T) {
	l := NewLoop(Schedule{Step: 0.1}, 1000)
	go l.Run()
	l.Stop()
	l.Stop()

	select {
	case <-l.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
}

func TestLoopAddViewerAfterEnd(t *testing.T) {
	l := NewLoop(Schedule{Step: 0.1, Limit: 1}, 1000)
	l.Run()

	_, ch := l.AddViewer("late")
	if _, ok := <-ch; ok {
		t.Error("late viewer received a frame from a finished schedule")
	}
	if l.Viewers() != 0 {
		t.Errorf("Viewers() = %d, want 0", l.Viewers())
	}
}

func TestLoopStartOnce(t *testing.T) {
	l := NewLoop(Schedule{Step: 0.1, Limit: 2}, 1000)
	_, ch := l.AddViewer("viewer")

	l.Start()
	l.Start()
	l.Run() // returns at once while the first run plays

	var ticks []uint64
	for f := range ch {
		ticks = append(ticks, f.Tick)
	}
	<-l.Done()
	if len(ticks) == 0 || ticks[0] != 0 {
		t.Fatalf("ticks = %v, want the schedule from frame 0", ticks)
	}
	for i := 1; i < len(ticks); i++ {
		if ticks[i] != ticks[i-1]+1 {
			t.Errorf("ticks = %v, want each frame once", ticks)
		}
	}
}
