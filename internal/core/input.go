package core

import (
	"fmt"
	"math"

	"github.com/zyedidia/generic/mapset"
)

// Button is the logical name of one digital input, e.g. "w" or "up".
type Button string

// Cluster names a group of direction buttons combined into one vector.
type Cluster string

// Default cluster names.
const (
	ClusterPrimary   Cluster = "primary"
	ClusterSecondary Cluster = "secondary"
)

// RawInput is one sample of the physical pins: pressed state per button.
// Buttons missing from the map read as released.
type RawInput map[Button]bool

// DirButton is a button that contributes a unit offset to its cluster's direction.
type DirButton struct {
	Name   Button
	Offset Offset
}

// ClusterLayout is a named set of direction buttons.
type ClusterLayout struct {
	Name    Cluster
	Buttons []DirButton
}

// Layout describes every button the input state knows about.
type Layout struct {
	Clusters []ClusterLayout
	Buttons  []Button // Buttons that belong to no cluster
}

// FourWay builds the usual up/left/down/right cluster.
func FourWay(name Cluster, up, left, down, right Button) ClusterLayout {
	return ClusterLayout{
		Name: name,
		Buttons: []DirButton{
			{Name: up, Offset: OffsetUp},
			{Name: left, Offset: OffsetLeft},
			{Name: down, Offset: OffsetDown},
			{Name: right, Offset: OffsetRight},
		},
	}
}

// DefaultLayout returns the eight-button layout of the reference board:
// w/a/s/d on the left cluster and i/j/k/l on the right.
func DefaultLayout() Layout {
	return Layout{
		Clusters: []ClusterLayout{
			FourWay(ClusterPrimary, "w", "a", "s", "d"),
			FourWay(ClusterSecondary, "i", "j", "k", "l"),
		},
	}
}

// InputState holds per-button hold counters. The counter is the number of
// consecutive polls a button has read pressed; 0 means released.
type InputState struct {
	order    []Button
	hold     map[Button]uint32
	clusters map[Cluster][]DirButton
	names    []Cluster
}

// NewInputState validates layout and returns a state with every button released.
func NewInputState(layout Layout) (*InputState, error) {
	s := &InputState{
		hold:     make(map[Button]uint32),
		clusters: make(map[Cluster][]DirButton),
	}

	addButton := func(b Button) error {
		if b == "" {
			return fmt.Errorf("%w: empty button name", ErrInvalidLayout)
		}
		if _, dup := s.hold[b]; dup {
			return fmt.Errorf("%w: button %q configured twice", ErrInvalidLayout, b)
		}
		s.hold[b] = 0
		s.order = append(s.order, b)
		return nil
	}

	for _, cl := range layout.Clusters {
		if cl.Name == "" {
			return nil, fmt.Errorf("%w: empty cluster name", ErrInvalidLayout)
		}
		if _, dup := s.clusters[cl.Name]; dup {
			return nil, fmt.Errorf("%w: cluster %q configured twice", ErrInvalidLayout, cl.Name)
		}
		if len(cl.Buttons) == 0 {
			return nil, fmt.Errorf("%w: cluster %q has no buttons", ErrInvalidLayout, cl.Name)
		}
		for _, db := range cl.Buttons {
			if !unitComponent(db.Offset.X) || !unitComponent(db.Offset.Y) {
				return nil, fmt.Errorf("%w: button %q has offset (%d, %d)", ErrInvalidLayout, db.Name, db.Offset.X, db.Offset.Y)
			}
			if err := addButton(db.Name); err != nil {
				return nil, err
			}
		}
		s.clusters[cl.Name] = append([]DirButton(nil), cl.Buttons...)
		s.names = append(s.names, cl.Name)
	}
	for _, b := range layout.Buttons {
		if err := addButton(b); err != nil {
			return nil, err
		}
	}

	if len(s.order) == 0 {
		return nil, fmt.Errorf("%w: no buttons", ErrInvalidLayout)
	}
	return s, nil
}

func unitComponent(v int) bool {
	return v >= -1 && v <= 1
}

// Poll advances every counter by one frame: pressed buttons count up from 1,
// released ones drop straight back to 0. Counters saturate rather than wrap,
// so a held button never reads as released. Names in raw that are not part
// of the layout are ignored.
func (s *InputState) Poll(raw RawInput) {
	for _, b := range s.order {
		if raw[b] {
			if s.hold[b] < math.MaxUint32 {
				s.hold[b]++
			}
		} else {
			s.hold[b] = 0
		}
	}
}

func (s *InputState) count(b Button) (uint32, error) {
	n, ok := s.hold[b]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownButton, b)
	}
	return n, nil
}

// Held reports whether b is currently pressed.
func (s *InputState) Held(b Button) (bool, error) {
	n, err := s.count(b)
	return n > 0, err
}

// Pressed reports whether b went down this frame.
// It is true exactly once per uninterrupted press.
func (s *InputState) Pressed(b Button) (bool, error) {
	n, err := s.count(b)
	return n == 1, err
}

// HoldDuration returns the number of consecutive frames b has been held.
func (s *InputState) HoldDuration(b Button) (uint32, error) {
	return s.count(b)
}

// HeldButtons returns the set of buttons currently pressed.
func (s *InputState) HeldButtons() mapset.Set[Button] {
	held := mapset.New[Button]()
	for _, b := range s.order {
		if s.hold[b] > 0 {
			held.Put(b)
		}
	}
	return held
}

// Direction sums the offsets of the held buttons in cluster c and
// normalises the result. Opposing buttons cancel to the zero vector.
func (s *InputState) Direction(c Cluster) (Vec2, error) {
	buttons, ok := s.clusters[c]
	if !ok {
		return Vec2{}, fmt.Errorf("%w: %q", ErrInvalidCluster, c)
	}
	var sum Vec2
	for _, db := range buttons {
		if s.hold[db.Name] > 0 {
			sum = sum.Add(db.Offset.Vec())
		}
	}
	return Normalize(sum), nil
}

// Buttons returns every configured button in layout order.
func (s *InputState) Buttons() []Button {
	return append([]Button(nil), s.order...)
}

// Clusters returns the configured cluster names in layout order.
func (s *InputState) Clusters() []Cluster {
	return append([]Cluster(nil), s.names...)
}
