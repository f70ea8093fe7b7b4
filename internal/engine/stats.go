package engine

import "time"

// Stats summarises the timing of a run.
type Stats struct {
	Frames   uint64        // Completed frames
	Overruns uint64        // Frames whose body took longer than the period
	Busy     time.Duration // Total time spent in frame bodies
	MaxFrame time.Duration // Longest frame body
	Wall     time.Duration // Time from the first frame start to loop exit
}

// AvgFrame returns the mean frame body duration.
func (s Stats) AvgFrame() time.Duration {
	if s.Frames == 0 {
		return 0
	}
	return s.Busy / time.Duration(s.Frames)
}

// FPS returns the achieved frame rate over the wall duration.
func (s Stats) FPS() float64 {
	if s.Wall <= 0 {
		return 0
	}
	return float64(s.Frames) / s.Wall.Seconds()
}

func (s *Stats) record(elapsed, period time.Duration) {
	s.Frames++
	s.Busy += elapsed
	if elapsed > s.MaxFrame {
		s.MaxFrame = elapsed
	}
	if elapsed > period {
		s.Overruns++
	}
}
