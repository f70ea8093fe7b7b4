package fbdev

import (
	"encoding/binary"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sprog/internal/core"
)

// Linux input-event-codes.h
const evKey = 0x01

// Key event values.
const (
	keyUp     = 0
	keyDown   = 1
	keyRepeat = 2
)

type keyEvent struct {
	code  uint16
	value int32
}

// decodeEvents parses a buffer of input_event records and returns the
// key events. input_event is a timeval of tvSize bytes followed by
// u16 type, u16 code and s32 value; a trailing partial record is ignored.
func decodeEvents(buf []byte, tvSize int) []keyEvent {
	size := tvSize + 8
	var out []keyEvent
	for off := 0; off+size <= len(buf); off += size {
		rec := buf[off : off+size]
		typ := binary.LittleEndian.Uint16(rec[tvSize : tvSize+2])
		if typ != evKey {
			continue
		}
		out = append(out, keyEvent{
			code:  binary.LittleEndian.Uint16(rec[tvSize+2 : tvSize+4]),
			value: int32(binary.LittleEndian.Uint32(rec[tvSize+4 : tvSize+8])),
		})
	}
	return out
}

// keyState tracks which mapped key codes are down on each device.
// Reader goroutines apply events; the engine samples.
type keyState struct {
	codes map[uint16]core.Button

	mu   sync.Mutex
	down map[string]map[uint16]bool // device path -> codes held
}

func newKeyState(codes map[uint16]core.Button) *keyState {
	return &keyState{codes: codes, down: make(map[string]map[uint16]bool)}
}

func (k *keyState) apply(device string, events []keyEvent) {
	k.mu.Lock()
	defer k.mu.Unlock()
	held := k.down[device]
	for _, ev := range events {
		if _, ok := k.codes[ev.code]; !ok {
			continue
		}
		switch ev.value {
		case keyDown, keyRepeat:
			if held == nil {
				held = make(map[uint16]bool)
				k.down[device] = held
			}
			held[ev.code] = true
		case keyUp:
			delete(held, ev.code)
		}
	}
}

// release forgets the keys held on one device; used when it disappears
// mid-press. Other devices keep their state.
func (k *keyState) release(device string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.down, device)
}

// sample reports a button pressed while any of its codes is down on any device.
func (k *keyState) sample() core.RawInput {
	k.mu.Lock()
	defer k.mu.Unlock()
	raw := make(core.RawInput)
	for _, held := range k.down {
		for code := range held {
			raw[k.codes[code]] = true
		}
	}
	return raw
}

// EvdevSource reads key events from Linux input devices in the
// background and reports the mapped buttons on Sample.
type EvdevSource struct {
	state  *keyState
	logger *log.Logger
	stop   func()
	wg     sync.WaitGroup
	paths  []string
}

// Sample reports the buttons currently held.
func (s *EvdevSource) Sample() (core.RawInput, error) {
	return s.state.sample(), nil
}

// Devices returns the input devices being read.
func (s *EvdevSource) Devices() []string {
	return append([]string(nil), s.paths...)
}

// Close stops the readers and waits for them to exit.
func (s *EvdevSource) Close() {
	if s.stop != nil {
		s.stop()
	}
	s.wg.Wait()
}
