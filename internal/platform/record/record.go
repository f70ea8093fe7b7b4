// Package record is the headless display: frames are written to a
// zstd-compressed stream that can be replayed or exported as PNG.
//
// Stream layout, little endian:
//
//	header: "SPRG" | version u8 | width u16 | height u16
//	frame:  index u64 | width*height colour bytes | text count u16 |
//	        per text: x i32 | y i32 | length u16 | UTF-8 bytes
package record

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/vovakirdan/sprog/internal/core"
)

const (
	magic   = "SPRG"
	version = 1
)

// Errors returned by readers and writers.
var (
	ErrBadMagic    = errors.New("record: not a recording")
	ErrVersion     = errors.New("record: unsupported version")
	ErrSizeChanged = errors.New("record: frame size changed mid-stream")
)

// ParseLevel maps a config name (fastest, default, better, best) to a
// zstd encoder level.
func ParseLevel(s string) (zstd.EncoderLevel, error) {
	ok, level := zstd.EncoderLevelFromString(strings.ToLower(s))
	if !ok {
		return 0, fmt.Errorf("record: unknown compression level %q", s)
	}
	return level, nil
}

// Sink writes every refreshed frame to a compressed stream. The header is
// written on the first frame, once the size is known.
type Sink struct {
	mu     sync.Mutex
	f      *os.File // Set by Create; closed with the sink
	enc    *zstd.Encoder
	w      *bufio.Writer
	width  int
	height int
	frames uint64
	buf    []byte
}

// NewSink compresses frames into w. Close flushes the stream but leaves w open.
func NewSink(w io.Writer, level zstd.EncoderLevel) (*Sink, error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(level))
	if err != nil {
		return nil, fmt.Errorf("record: %w", err)
	}
	return &Sink{
		enc: enc,
		w:   bufio.NewWriterSize(enc, 128*1024),
	}, nil
}

// Create opens path for writing, creating parent directories.
func Create(path string, level zstd.EncoderLevel) (*Sink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("record: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("record: %w", err)
	}
	s, err := NewSink(f, level)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	s.f = f
	return s, nil
}

// Refresh appends fb to the stream.
func (s *Sink) Refresh(fb *core.Framebuffer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.w == nil {
		return fmt.Errorf("record: sink closed")
	}
	if s.frames == 0 {
		if fb.Width() > math.MaxUint16 || fb.Height() > math.MaxUint16 {
			return fmt.Errorf("record: frame %dx%d too large", fb.Width(), fb.Height())
		}
		s.width, s.height = fb.Width(), fb.Height()
		if err := s.writeHeader(); err != nil {
			return err
		}
	} else if fb.Width() != s.width || fb.Height() != s.height {
		return fmt.Errorf("%w: %dx%d, started at %dx%d", ErrSizeChanged, fb.Width(), fb.Height(), s.width, s.height)
	}

	b := s.buf[:0]
	b = binary.LittleEndian.AppendUint64(b, s.frames)
	for _, c := range fb.Pixels() {
		b = append(b, byte(c))
	}

	texts := fb.Texts()
	if len(texts) > math.MaxUint16 {
		texts = texts[:math.MaxUint16]
	}
	b = binary.LittleEndian.AppendUint16(b, uint16(len(texts)))
	for _, t := range texts {
		text := t.Text
		if len(text) > math.MaxUint16 {
			text = text[:math.MaxUint16]
		}
		b = binary.LittleEndian.AppendUint32(b, uint32(int32(t.X)))
		b = binary.LittleEndian.AppendUint32(b, uint32(int32(t.Y)))
		b = binary.LittleEndian.AppendUint16(b, uint16(len(text)))
		b = append(b, text...)
	}
	s.buf = b

	if _, err := s.w.Write(b); err != nil {
		return fmt.Errorf("record: %w", err)
	}
	s.frames++
	return nil
}

func (s *Sink) writeHeader() error {
	var h []byte
	h = append(h, magic...)
	h = append(h, version)
	h = binary.LittleEndian.AppendUint16(h, uint16(s.width))
	h = binary.LittleEndian.AppendUint16(h, uint16(s.height))
	if _, err := s.w.Write(h); err != nil {
		return fmt.Errorf("record: %w", err)
	}
	return nil
}

// Frames returns the number of frames written.
func (s *Sink) Frames() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Close flushes the stream and closes the file opened by Create.
// Closing twice is a no-op.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.w == nil {
		return nil
	}
	err := s.w.Flush()
	if cerr := s.enc.Close(); err == nil {
		err = cerr
	}
	if s.f != nil {
		if cerr := s.f.Close(); err == nil {
			err = cerr
		}
		s.f = nil
	}
	s.w, s.enc = nil, nil
	if err != nil {
		return fmt.Errorf("record: %w", err)
	}
	return nil
}
