// Package audio plays synthesized tracks and captures live input
// through the system's default PortAudio devices.
package audio

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// Engine owns the PortAudio library lifetime and the stream settings.
// Construct one per process and close it when done.
type Engine struct {
	sampleRate int
	chunkSize  int
}

// NewEngine initializes PortAudio and returns an engine reading and
// writing chunkSize frames at a time.
func NewEngine(sampleRate, chunkSize int) (*Engine, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("audio: initialize: %w", err)
	}
	return &Engine{sampleRate: sampleRate, chunkSize: chunkSize}, nil
}

// Close terminates the PortAudio library.
func (e *Engine) Close() error {
	if err := portaudio.Terminate(); err != nil {
		return fmt.Errorf("audio: terminate: %w", err)
	}
	return nil
}

// Play writes samples to the default output device, blocking until the
// track has been written or ctx is cancelled. onProgress, when non-nil,
// is invoked after each chunk with the running count of samples
// written, which lets callers correlate wall-clock playback position
// with sample arithmetic.
func (e *Engine) Play(ctx context.Context, samples []float64, onProgress func(written int)) error {
	buf := make([]float32, e.chunkSize)
	stream, err := portaudio.OpenDefaultStream(0, 1, float64(e.sampleRate), e.chunkSize, &buf)
	if err != nil {
		return fmt.Errorf("audio: open output stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("audio: start output stream: %w", err)
	}
	defer stream.Stop()

	for written := 0; written < len(samples); {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n := copy32(buf, samples[written:])
		// Zero-pad the final partial chunk.
		for i := n; i < len(buf); i++ {
			buf[i] = 0
		}
		if err := stream.Write(); err != nil {
			return fmt.Errorf("audio: write: %w", err)
		}
		written += n
		if onProgress != nil {
			onProgress(written)
		}
	}
	return nil
}

// OpenInput opens the default input device for chunked capture.
func (e *Engine) OpenInput() (*InputStream, error) {
	buf := make([]float32, e.chunkSize)
	stream, err := portaudio.OpenDefaultStream(1, 0, float64(e.sampleRate), e.chunkSize, &buf)
	if err != nil {
		return nil, fmt.Errorf("audio: open input stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return nil, fmt.Errorf("audio: start input stream: %w", err)
	}
	return &InputStream{stream: stream, buf: buf}, nil
}

// InputStream captures audio from the default input device.
type InputStream struct {
	stream *portaudio.Stream
	buf    []float32
	mu     sync.Mutex
	closed bool
}

// ReadChunk blocks until one chunk of input has been captured and
// returns it as float64 samples.
func (s *InputStream) ReadChunk() ([]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, io.EOF
	}
	if err := s.stream.Read(); err != nil {
		return nil, fmt.Errorf("audio: read: %w", err)
	}

	out := make([]float64, len(s.buf))
	for i, v := range s.buf {
		out[i] = float64(v)
	}
	return out, nil
}

// Close stops and releases the input stream.
func (s *InputStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.stream.Stop(); err != nil {
		s.stream.Close()
		return fmt.Errorf("audio: stop input stream: %w", err)
	}
	if err := s.stream.Close(); err != nil {
		return fmt.Errorf("audio: close input stream: %w", err)
	}
	return nil
}

// Device describes an audio device visible to PortAudio.
type Device struct {
	Name           string
	InputChannels  int
	OutputChannels int
	SampleRate     float64
	DefaultInput   bool
	DefaultOutput  bool
}

// Devices lists the audio devices visible to PortAudio.
func Devices() ([]Device, error) {
	infos, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("audio: list devices: %w", err)
	}
	defIn, _ := portaudio.DefaultInputDevice()
	defOut, _ := portaudio.DefaultOutputDevice()

	devices := make([]Device, 0, len(infos))
	for _, info := range infos {
		devices = append(devices, Device{
			Name:           info.Name,
			InputChannels:  info.MaxInputChannels,
			OutputChannels: info.MaxOutputChannels,
			SampleRate:     info.DefaultSampleRate,
			DefaultInput:   info == defIn,
			DefaultOutput:  info == defOut,
		})
	}
	return devices, nil
}

// copy32 copies float64 samples into a float32 buffer, returning the
// number copied.
func copy32(dst []float32, src []float64) int {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	for i := 0; i < n; i++ {
		dst[i] = float32(src[i])
	}
	return n
}
