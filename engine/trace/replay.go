package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

// Header opens every replay stream.
type Header struct {
	RunID    string  `msgpack:"run"`
	Seed     uint64  `msgpack:"seed"`
	TickRate float64 `msgpack:"rate"`
}

// Frame is everything one tick emitted, plus the running checksum after it.
type Frame struct {
	Tick     uint64   `msgpack:"t"`
	Events   []Record `msgpack:"e"`
	Checksum uint64   `msgpack:"c"`
}

// Recorder appends frames to a msgpack stream.
type Recorder struct {
	file   *os.File
	writer *bufio.Writer
	enc    *msgpack.Encoder
	frames int
}

// NewRecorder writes h to w and returns a recorder appending to it.
func NewRecorder(w io.Writer, h Header) (*Recorder, error) {
	bw := bufio.NewWriter(w)
	r := &Recorder{writer: bw, enc: msgpack.NewEncoder(bw)}
	if err := r.enc.Encode(&h); err != nil {
		return nil, fmt.Errorf("trace: write header: %w", err)
	}
	return r, nil
}

// CreateRecorder creates the replay file at path.
func CreateRecorder(path string, h Header) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("trace: %w", err)
	}
	r, err := NewRecorder(f, h)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.file = f
	return r, nil
}

// Record appends one frame.
func (r *Recorder) Record(f Frame) error {
	if err := r.enc.Encode(&f); err != nil {
		return fmt.Errorf("trace: write tick %d: %w", f.Tick, err)
	}
	r.frames++
	return nil
}

// Frames is the number of frames recorded so far.
func (r *Recorder) Frames() int { return r.frames }

// Close flushes and closes the underlying file, if any.
func (r *Recorder) Close() error {
	err := r.writer.Flush()
	if r.file != nil {
		if cerr := r.file.Close(); err == nil {
			err = cerr
		}
		r.file = nil
	}
	return err
}

// Replay is a fully loaded replay stream.
type Replay struct {
	Header Header
	Frames []Frame
}

// ReadReplay decodes a stream written by a Recorder.
func ReadReplay(rd io.Reader) (*Replay, error) {
	br := bufio.NewReader(rd)
	dec := msgpack.NewDecoder(br)
	replay := &Replay{}
	if err := dec.Decode(&replay.Header); err != nil {
		return nil, fmt.Errorf("trace: read header: %w", err)
	}
	for {
		// a clean end falls between frames; EOF inside one is truncation
		if _, err := br.Peek(1); errors.Is(err, io.EOF) {
			return replay, nil
		}
		var f Frame
		if err := dec.Decode(&f); err != nil {
			return replay, fmt.Errorf("trace: read frame %d: %w", len(replay.Frames), err)
		}
		replay.Frames = append(replay.Frames, f)
	}
}

// LoadReplay loads a replay file
func LoadReplay(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("trace: %w", err)
	}
	defer f.Close()
	return ReadReplay(f)
}

// EventsForTick returns the events recorded for tick.
func (r *Replay) EventsForTick(tick uint64) []Record {
	for _, f := range r.Frames {
		if f.Tick == tick {
			return f.Events
		}
	}
	return nil
}

// FinalChecksum is the checksum after the last recorded frame.
func (r *Replay) FinalChecksum() uint64 {
	if len(r.Frames) == 0 {
		return 0
	}
	return r.Frames[len(r.Frames)-1].Checksum
}
