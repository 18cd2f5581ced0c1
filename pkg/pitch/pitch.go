// Package pitch detects the fundamental frequency of a mono audio
// buffer and maps frequencies to note names.
//
// Detection normalizes the buffer, applies a Hann window, computes the
// autocorrelation via FFT, and reads the fundamental period off the
// first qualifying autocorrelation peak.
package pitch

import (
	"errors"
	"fmt"
	"math"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// ErrNoDetection reports that no fundamental frequency could be found
// in a buffer (too short, silent, or no qualifying peak).
var ErrNoDetection = errors.New("pitch: no fundamental detected")

// Detector extracts fundamental frequencies from audio buffers.
type Detector struct {
	sampleRate int
	minSamples int     // buffers shorter than this are rejected
	peakHeight float64 // minimum autocorrelation peak value
}

// NewDetector returns a Detector for the given sample rate. minSamples
// guards against windows too short to carry a period; peakHeight is the
// acceptance threshold for autocorrelation peaks.
func NewDetector(sampleRate, minSamples int, peakHeight float64) *Detector {
	return &Detector{
		sampleRate: sampleRate,
		minSamples: minSamples,
		peakHeight: peakHeight,
	}
}

// Detect returns the fundamental frequency of the buffer in Hz, or
// ErrNoDetection when the buffer holds no usable pitch.
func (d *Detector) Detect(samples []float64) (float64, error) {
	if len(samples) < d.minSamples {
		return 0, ErrNoDetection
	}

	// Normalize to peak amplitude 1 so the peak threshold is
	// level-independent.
	peak := 0.0
	for _, v := range samples {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	if peak == 0 {
		return 0, ErrNoDetection
	}

	buf := make([]float64, len(samples))
	for i, v := range samples {
		buf[i] = v / peak
	}
	window.Apply(buf, window.Hann)

	corr := autocorrelate(buf)

	lag := firstPeak(corr, d.peakHeight)
	if lag <= 0 {
		return 0, ErrNoDetection
	}
	return float64(d.sampleRate) / float64(lag), nil
}

// autocorrelate computes the non-negative-lag autocorrelation of buf
// via FFT, zero-padding to avoid circular wraparound.
func autocorrelate(buf []float64) []float64 {
	n := len(buf)
	size := 1
	for size < 2*n {
		size <<= 1
	}
	padded := make([]float64, size)
	copy(padded, buf)

	spec := fft.FFTReal(padded)
	for i, c := range spec {
		// Power spectrum: X * conj(X).
		spec[i] = complex(real(c)*real(c)+imag(c)*imag(c), 0)
	}
	inv := fft.IFFT(spec)

	corr := make([]float64, n)
	for i := range corr {
		corr[i] = real(inv[i])
	}
	return corr
}

// firstPeak returns the smallest lag that is a strict local maximum of
// corr with a value above height, or -1 if none exists.
func firstPeak(corr []float64, height float64) int {
	for i := 1; i < len(corr)-1; i++ {
		if corr[i] > height && corr[i] > corr[i-1] && corr[i] > corr[i+1] {
			return i
		}
	}
	return -1
}

var noteNames = [12]string{"A", "A#", "B", "C", "C#", "D", "D#", "E", "F", "F#", "G", "G#"}

// NoteName returns the name and octave of the note nearest to the given
// frequency, e.g. NoteName(440) == "A4".
func NoteName(frequency float64) string {
	semitones := int(math.Round(12 * math.Log2(frequency/440.0)))
	// The octave number rolls over at C, nine semitones below A.
	octave := 4 + floorDiv(semitones+9, 12)
	idx := floorMod(semitones, 12)
	return fmt.Sprintf("%s%d", noteNames[idx], octave)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	m := a % b
	if m != 0 && ((a < 0) != (b < 0)) {
		m += b
	}
	return m
}
