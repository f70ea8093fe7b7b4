//go:build linux

package fbdev

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/sys/unix"

	"github.com/vovakirdan/sprog/internal/core"
	"github.com/vovakirdan/sprog/internal/engine"
)

const pollTimeoutMS = 250

// OpenEvdev starts one reader per input device. An empty paths list scans
// /dev/input/event*. Devices that cannot be opened are skipped; it fails
// only when none can.
func OpenEvdev(ctx context.Context, paths []string, codes map[uint16]core.Button, logger *log.Logger) (*EvdevSource, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if len(paths) == 0 {
		found, err := filepath.Glob("/dev/input/event*")
		if err != nil {
			return nil, fmt.Errorf("%w: evdev: %w", engine.ErrHardwareUnavailable, err)
		}
		paths = found
	}

	ctx, cancel := context.WithCancel(ctx)
	s := &EvdevSource{
		state:  newKeyState(codes),
		logger: logger,
		stop:   cancel,
	}

	tvSize := binary.Size(unix.Timeval{})
	for _, path := range paths {
		fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
		if err != nil {
			logger.Debug("skipping input device", "path", path, "err", err)
			continue
		}
		s.paths = append(s.paths, path)
		s.wg.Add(1)
		go s.read(ctx, path, fd, tvSize)
	}

	if len(s.paths) == 0 {
		cancel()
		return nil, fmt.Errorf("%w: evdev: no readable input device in %v", engine.ErrHardwareUnavailable, paths)
	}
	logger.Info("reading input devices", "devices", s.paths)
	return s, nil
}

func (s *EvdevSource) read(ctx context.Context, path string, fd int, tvSize int) {
	defer s.wg.Done()
	defer unix.Close(fd)

	buf := make([]byte, 64*(tvSize+8))
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(pollFds, pollTimeoutMS); err != nil {
			if err == unix.EINTR {
				continue
			}
			s.lost(path, err)
			return
		}
		if pollFds[0].Revents&(unix.POLLHUP|unix.POLLERR) != 0 {
			s.lost(path, unix.ENODEV)
			return
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			continue
		}

		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			s.lost(path, err)
			return
		}
		s.state.apply(path, decodeEvents(buf[:n], tvSize))
	}
}

// lost handles a device going away; keys it held would otherwise stick.
func (s *EvdevSource) lost(path string, err error) {
	s.logger.Warn("input device lost", "path", path, "err", err)
	s.state.release(path)
}
