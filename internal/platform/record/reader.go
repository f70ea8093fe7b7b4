package record

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/vovakirdan/sprog/internal/core"
	"github.com/vovakirdan/sprog/internal/platform/raster"
)

// Frame is one decoded frame.
type Frame struct {
	Index uint64
	raster.Frame
}

// Reader decodes a recording frame by frame.
type Reader struct {
	f      *os.File // Set by Open; closed with the reader
	dec    *zstd.Decoder
	r      *bufio.Reader
	width  int
	height int
}

// NewReader reads the stream header from r.
func NewReader(r io.Reader) (*Reader, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("record: %w", err)
	}
	rd := &Reader{dec: dec, r: bufio.NewReaderSize(dec, 128*1024)}
	if err := rd.readHeader(); err != nil {
		dec.Close()
		return nil, err
	}
	return rd, nil
}

// Open opens the recording at path.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("record: %w", err)
	}
	rd, err := NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	rd.f = f
	return rd, nil
}

func (rd *Reader) readHeader() error {
	var h [len(magic) + 5]byte
	if _, err := io.ReadFull(rd.r, h[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return ErrBadMagic
		}
		return fmt.Errorf("record: %w", err)
	}
	if string(h[:len(magic)]) != magic {
		return ErrBadMagic
	}
	if v := h[len(magic)]; v != version {
		return fmt.Errorf("%w: %d", ErrVersion, v)
	}
	rd.width = int(binary.LittleEndian.Uint16(h[len(magic)+1:]))
	rd.height = int(binary.LittleEndian.Uint16(h[len(magic)+3:]))
	return nil
}

// Width returns the recorded frame width.
func (rd *Reader) Width() int {
	return rd.width
}

// Height returns the recorded frame height.
func (rd *Reader) Height() int {
	return rd.height
}

// Next decodes the next frame. It returns io.EOF after the last one and
// io.ErrUnexpectedEOF for a truncated stream.
func (rd *Reader) Next() (Frame, error) {
	var idx [8]byte
	if _, err := io.ReadFull(rd.r, idx[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return Frame{}, io.EOF
		}
		return Frame{}, truncated(err)
	}

	fr := Frame{
		Index: binary.LittleEndian.Uint64(idx[:]),
		Frame: raster.Frame{Width: rd.width, Height: rd.height},
	}

	pix := make([]byte, rd.width*rd.height)
	if _, err := io.ReadFull(rd.r, pix); err != nil {
		return Frame{}, truncated(err)
	}
	fr.Pixels = make([]core.Color, len(pix))
	for i, c := range pix {
		fr.Pixels[i] = core.Color(c)
	}

	var n [2]byte
	if _, err := io.ReadFull(rd.r, n[:]); err != nil {
		return Frame{}, truncated(err)
	}
	count := int(binary.LittleEndian.Uint16(n[:]))
	for i := 0; i < count; i++ {
		var th [10]byte
		if _, err := io.ReadFull(rd.r, th[:]); err != nil {
			return Frame{}, truncated(err)
		}
		text := make([]byte, binary.LittleEndian.Uint16(th[8:]))
		if _, err := io.ReadFull(rd.r, text); err != nil {
			return Frame{}, truncated(err)
		}
		fr.Texts = append(fr.Texts, core.TextEntry{
			X:    int(int32(binary.LittleEndian.Uint32(th[0:]))),
			Y:    int(int32(binary.LittleEndian.Uint32(th[4:]))),
			Text: string(text),
		})
	}
	return fr, nil
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("record: truncated frame: %w", io.ErrUnexpectedEOF)
	}
	return fmt.Errorf("record: %w", err)
}

// Close releases the decoder and the file opened by Open.
func (rd *Reader) Close() error {
	rd.dec.Close()
	if rd.f != nil {
		err := rd.f.Close()
		rd.f = nil
		return err
	}
	return nil
}
