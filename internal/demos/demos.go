// Package demos links every built-in demo into the binary. Import it for
// its side effects; each demo registers itself with the registry.
package demos

import (
	_ "github.com/vovakirdan/sprog/internal/demos/diagonal"
	_ "github.com/vovakirdan/sprog/internal/demos/mover"
	_ "github.com/vovakirdan/sprog/internal/demos/plasma"
	_ "github.com/vovakirdan/sprog/internal/demos/tunnel"
	_ "github.com/vovakirdan/sprog/internal/demos/wave"
)
