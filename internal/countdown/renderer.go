package countdown

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Renderer presents a Display. Implementations perform no countdown logic.
type Renderer interface {
	Render(Display)
}

// RenderFunc adapts a function to Renderer.
type RenderFunc func(Display)

func (f RenderFunc) Render(d Display) { f(d) }

// Fanout hands every frame to each renderer in order. A renderer that
// panics is logged and skipped for that frame; the rest still run.
type Fanout struct {
	renderers []Renderer
	log       zerolog.Logger
}

// NewFanout builds a Fanout, dropping nil renderers.
func NewFanout(log zerolog.Logger, renderers ...Renderer) *Fanout {
	f := &Fanout{log: log}
	for _, r := range renderers {
		if r != nil {
			f.renderers = append(f.renderers, r)
		}
	}
	return f
}

// Add appends a renderer.
func (f *Fanout) Add(r Renderer) {
	if r != nil {
		f.renderers = append(f.renderers, r)
	}
}

// Len returns the number of renderers.
func (f *Fanout) Len() int { return len(f.renderers) }

// Render implements Renderer.
func (f *Fanout) Render(d Display) {
	for i, r := range f.renderers {
		f.renderOne(i, r, d)
	}
}

func (f *Fanout) renderOne(i int, r Renderer, d Display) {
	defer func() {
		if v := recover(); v != nil {
			f.log.Error().
				Int("renderer", i).
				Str("type", fmt.Sprintf("%T", r)).
				Str("panic", fmt.Sprint(v)).
				Msg("render_panic")
		}
	}()
	r.Render(d)
}
