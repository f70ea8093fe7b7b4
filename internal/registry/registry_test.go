package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/sprog/internal/engine"
)

type stubDemo struct {
	engine.Base
	id string
}

func (d stubDemo) ID() string          { return d.id }
func (d stubDemo) Title() string       { return "Stub " + d.id }
func (d stubDemo) Description() string { return "does nothing" }

func TestRegisterAndCreate(t *testing.T) {
	Register("zz-stub-b", func() Demo { return stubDemo{id: "zz-stub-b"} })
	Register("zz-stub-a", func() Demo { return stubDemo{id: "zz-stub-a"} })

	if !Exists("zz-stub-a") {
		t.Error("Exists(zz-stub-a) = false")
	}

	d, err := Create("zz-stub-a")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if d.ID() != "zz-stub-a" {
		t.Errorf("ID() = %q", d.ID())
	}

	var ids []string
	for _, info := range List() {
		ids = append(ids, info.ID)
	}
	ia, ib := -1, -1
	for i, id := range ids {
		switch id {
		case "zz-stub-a":
			ia = i
		case "zz-stub-b":
			ib = i
		}
	}
	if ia < 0 || ib < 0 || ia > ib {
		t.Errorf("List() not sorted by ID: %v", ids)
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("does-not-exist"); !errors.Is(err, ErrUnknownDemo) {
		t.Errorf("Create() error = %v, expected ErrUnknownDemo", err)
	}
	if Exists("does-not-exist") {
		t.Error("Exists() = true for an unknown demo")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz-dup", func() Demo { return stubDemo{id: "zz-dup"} })
	defer func() {
		if recover() == nil {
			t.Error("second Register should panic")
		}
	}()
	Register("zz-dup", func() Demo { return stubDemo{id: "zz-dup"} })
}

func TestRegisterMismatchedIDPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Register with a mismatched ID should panic")
		}
	}()
	Register("zz-left", func() Demo { return stubDemo{id: "zz-right"} })
}
