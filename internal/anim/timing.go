package anim

import "time"

// DefaultFPS is the reference frame rate.
const DefaultFPS = 24

// FrameInterval returns the delay between frames at fps frames per second.
// Non-positive rates fall back to DefaultFPS.
func FrameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Second / time.Duration(fps)
}

// SecsToFrames converts a duration in seconds to frames at fps.
func SecsToFrames(s float64, fps int) int {
	if fps <= 0 {
		fps = DefaultFPS
	}
	f := int(s * float64(fps))
	if f < 1 {
		f = 1
	}
	return f
}
