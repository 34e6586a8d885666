package eraser

import (
	"image"
	"image/color"

	"gioui.org/app"
	"gioui.org/font/gofont"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"golang.org/x/image/math/f32"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

var (
	defaultBkgColor  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	defaultTextColor = color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}
)

// Gui is the Gio host page of the widget. It owns the window, forwards the
// window resize and pointer events to the page and paints the surface.
// Every widget callback runs on the goroutine executing Run.
type Gui struct {
	cfg struct {
		window struct {
			w, h       float32
			title      string
			fullscreen bool
		}
		color struct {
			background color.NRGBA
			text       color.NRGBA
		}
	}
	widget struct {
		cfg    Config
		loader Loader
		w      *Widget
	}
	frame struct {
		version int
		src     paint.ImageOp
	}

	// CloseOnHidden closes the window once the fade out completes.
	CloseOnHidden bool

	page    *Page
	surface *Surface
	label   *Label
	loop    *Loop
	theme   *material.Theme
	ops     op.Ops
	err     error
}

// NewGUI initializes the Gio interface. The widget is mounted on the first
// frame, when the viewport size is known.
func NewGUI(w, h int, title string, fullscreen bool, cfg Config, loader Loader) *Gui {
	gui := &Gui{
		loop:  NewLoop(),
		theme: material.NewTheme(gofont.Collection()),
	}
	gui.cfg.window.w, gui.cfg.window.h = float32(w), float32(h)
	gui.cfg.window.title = title
	gui.cfg.window.fullscreen = fullscreen
	gui.cfg.color.background = defaultBkgColor
	gui.cfg.color.text = defaultTextColor
	gui.theme.Palette.Fg = gui.cfg.color.text

	gui.widget.cfg = cfg
	gui.widget.loader = loader

	gui.page = NewPage(image.Point{})
	gui.surface = NewSurface(cfg.CanvasID)
	gui.page.AddSurface(gui.surface)
	gui.label = gui.page.AddLabel(cfg.PercentageID, "Erased: 0%")

	return gui
}

// Widget returns the mounted widget, or nil before the first frame.
func (g *Gui) Widget() *Widget {
	return g.widget.w
}

// Run is the core method of the Gio GUI application. It processes the window
// events and the widget callbacks until the window is closed.
func (g *Gui) Run() error {
	opts := []app.Option{app.Title(g.cfg.window.title)}
	if g.cfg.window.fullscreen {
		opts = append(opts, app.Fullscreen.Option())
	} else {
		opts = append(opts, app.Size(unit.Dp(g.cfg.window.w), unit.Dp(g.cfg.window.h)))
	}
	w := app.NewWindow(opts...)
	defer g.loop.Close()

	onStateChange := g.widget.cfg.OnStateChange
	g.widget.cfg.OnStateChange = func(from, to State) {
		if onStateChange != nil {
			onStateChange(from, to)
		}
		if to == Hidden && g.CloseOnHidden {
			w.Close()
		}
	}

	for {
		select {
		case e := <-w.Events():
			switch e := e.(type) {
			case system.FrameEvent:
				if err := g.draw(e); err != nil {
					g.err = err
					w.Close()
				}
			case key.Event:
				switch e.Name {
				case key.NameEscape:
					w.Close()
				}
			case system.DestroyEvent:
				if g.widget.w != nil {
					g.widget.w.Close()
				}
				if g.err != nil {
					return g.err
				}
				return e.Err
			}
		case fn := <-g.loop.Events():
			fn()
			w.Invalidate()
		}
	}
}

// draw mounts the widget on the first frame, dispatches the input
// events and paints the drawing surface with the percentage display.
func (g *Gui) draw(e system.FrameEvent) error {
	gtx := layout.NewContext(&g.ops, e)
	size := gtx.Constraints.Max

	if g.widget.w == nil {
		g.page.SetViewport(size)
		w, err := New(g.widget.cfg, g.page, g.loop, g.widget.loader)
		if err != nil {
			e.Frame(gtx.Ops)
			return err
		}
		g.widget.w = w
	} else {
		g.page.SetViewport(size)
	}

	for _, ev := range gtx.Events(g) {
		if ev, ok := ev.(pointer.Event); ok {
			switch ev.Type {
			case pointer.Move, pointer.Drag:
				g.surface.DispatchPointerMove(f32.Vec2{ev.Position.X, ev.Position.Y})
			}
		}
	}

	paint.Fill(gtx.Ops, g.cfg.color.background)

	// The body stays blank while the resize settles.
	if !g.page.Body().Hidden() {
		g.layoutSurface(gtx)
		if g.label.Visible() {
			layout.UniformInset(unit.Dp(12)).Layout(gtx, func(gtx C) D {
				return material.Label(g.theme, unit.Sp(18), g.label.Text()).Layout(gtx)
			})
		}
	}

	e.Frame(gtx.Ops)
	return nil
}

// layoutSurface paints the surface pixels and registers the pointer input area.
// The image operation is rebuilt only when the pixels have changed.
func (g *Gui) layoutSurface(gtx C) D {
	rect := image.Rectangle{Max: g.surface.Size()}
	defer clip.Rect(rect).Push(gtx.Ops).Pop()

	pointer.InputOp{
		Tag:   g,
		Types: pointer.Move | pointer.Drag,
	}.Add(gtx.Ops)

	if rect.Empty() {
		return D{}
	}
	if v := g.surface.Version(); g.frame.src.Size() == (image.Point{}) || g.frame.version != v {
		g.frame.src = paint.NewImageOp(g.surface.Image())
		g.frame.version = v
	}
	g.frame.src.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)

	return D{Size: rect.Size()}
}
