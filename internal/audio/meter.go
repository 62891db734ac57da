package audio

import "math"

// Meter turns sample windows into a smoothed loudness level that always lies
// in [0, 1], whatever the samples hold.
type Meter struct {
	compress  float64
	smoothing float64
	level     float64
}

// NewMeter returns a meter that raises RMS to the compress power and blends
// each new value with the previous one by smoothing.
func NewMeter(compress, smoothing float64) *Meter {
	return &Meter{compress: compress, smoothing: smoothing}
}

// Update folds one window of samples into the level. An empty window counts
// as silence, so the level decays while nothing plays.
func (m *Meter) Update(samples [][2]float64) float64 {
	var mag float64
	if len(samples) > 0 {
		var sumSquares float64
		for _, s := range samples {
			mono := (s[0] + s[1]) * 0.5
			sumSquares += mono * mono
		}
		rms := math.Sqrt(sumSquares / float64(len(samples)))
		mag = math.Min(1, math.Pow(rms, m.compress))
		if !(mag >= 0) {
			mag = 0
		}
	}
	m.level = m.smoothing*m.level + (1-m.smoothing)*mag
	return m.level
}

func (m *Meter) Level() float64 { return m.level }
