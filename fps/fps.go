// Package fps measures the frame rate of a render loop.
package fps

import "fmt"

type Stats struct {
	FPS       float64
	FrameTime float64 // milliseconds
}

// Title formats the stats for a window title.
func (s Stats) Title(prefix string) string {
	return fmt.Sprintf("%s, %.2f ms/frame (%.1f FPS)", prefix, s.FrameTime, s.FPS)
}

// Meter averages frame times over one second intervals.
// The zero value is ready to use.
type Meter struct {
	t0     float64
	frames int
	stats  Stats
}

// Tick registers a frame at time t (seconds). It returns the stats and true
// on the first frame and whenever more than a second has passed since the last report.
func (m *Meter) Tick(t float64) (Stats, bool) {
	updated := false
	if dt := t - m.t0; dt > 1 || m.frames == 0 {
		if m.frames > 0 {
			m.stats = Stats{
				FPS:       float64(m.frames) / dt,
				FrameTime: 1000 * dt / float64(m.frames),
			}
		}
		m.t0 = t
		m.frames = 0
		updated = true
	}
	m.frames++
	return m.stats, updated
}

// Stats returns the last reported stats.
func (m *Meter) Stats() Stats {
	return m.stats
}
