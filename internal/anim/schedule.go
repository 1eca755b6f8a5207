package anim

// Schedule advances both rotation angles from one shared counter.
type Schedule struct {
	Step  float64 // counter increment per frame
	Ratio float64 // speed of angle B relative to angle A
	Limit uint64  // frames to play; 0 plays forever
}

// DefaultSchedule sweeps the counter from 0 to 20 in steps of 0.1 with B
// turning at a fifth of A's speed.
func DefaultSchedule() Schedule {
	return Schedule{Step: 0.1, Ratio: 0.2, Limit: 200}
}

// Angles returns rotation angles A and B for frame n.
func (s Schedule) Angles(n uint64) (a, b float64) {
	a = float64(n) * s.Step
	return a, a * s.Ratio
}

// Done reports whether frame n is past the end of the schedule.
func (s Schedule) Done(n uint64) bool {
	return s.Limit > 0 && n >= s.Limit
}
