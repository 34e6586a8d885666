package eraser

import "image"

// Document is the host page the widget is mounted on. It provides the
// elements looked up by id, the viewport size and the page body.
type Document interface {
	Surface(id string) (*Surface, bool)
	Element(id string) (Element, bool)
	Viewport() image.Point
	Body() Visibility
	// OnResize registers a viewport resize listener and returns the function removing it.
	OnResize(fn func()) (remove func())
}

// Element is a text bearing page element.
type Element interface {
	SetText(text string)
	SetVisible(visible bool)
}

// Visibility controls whether the whole page is shown.
type Visibility interface {
	Show()
	Hide()
	Hidden() bool
}

// Page is an in-process Document. Elements are registered by the host
// before the widget is created.
type Page struct {
	viewport image.Point
	body     Visibility
	surfaces map[string]*Surface
	labels   map[string]*Label
	resize   listeners[func()]
}

// NewPage creates a page with the given viewport size and a visible body.
func NewPage(viewport image.Point) *Page {
	return &Page{
		viewport: viewport,
		body:     &Body{},
		surfaces: make(map[string]*Surface),
		labels:   make(map[string]*Label),
	}
}

// AddSurface registers a drawing surface.
func (p *Page) AddSurface(s *Surface) {
	p.surfaces[s.ID()] = s
}

// AddLabel registers a text element with its initial text.
func (p *Page) AddLabel(id, text string) *Label {
	l := &Label{id: id, text: text, visible: true}
	p.labels[id] = l
	return l
}

// SetBody replaces the body visibility controller.
func (p *Page) SetBody(v Visibility) {
	p.body = v
}

// SetViewport updates the viewport size and notifies the resize
// listeners if the size has changed.
func (p *Page) SetViewport(size image.Point) {
	if size == p.viewport {
		return
	}
	p.viewport = size
	p.resize.each(func(fn func()) { fn() })
}

// Surface implements Document.
func (p *Page) Surface(id string) (*Surface, bool) {
	s, ok := p.surfaces[id]
	return s, ok
}

// Element implements Document.
func (p *Page) Element(id string) (Element, bool) {
	l, ok := p.labels[id]
	if !ok {
		return nil, false
	}
	return l, true
}

// Label returns the registered label.
func (p *Page) Label(id string) (*Label, bool) {
	l, ok := p.labels[id]
	return l, ok
}

// Viewport implements Document.
func (p *Page) Viewport() image.Point { return p.viewport }

// Body implements Document.
func (p *Page) Body() Visibility { return p.body }

// OnResize implements Document.
func (p *Page) OnResize(fn func()) (remove func()) {
	return p.resize.add(fn)
}

// Label is a text element.
type Label struct {
	id      string
	text    string
	visible bool
}

// SetText implements Element.
func (l *Label) SetText(text string) { l.text = text }

// SetVisible implements Element.
func (l *Label) SetVisible(visible bool) { l.visible = visible }

// Text returns the label content.
func (l *Label) Text() string { return l.text }

// Visible reports whether the label is shown.
func (l *Label) Visible() bool { return l.visible }

// Body is the default page body visibility controller.
type Body struct {
	hidden bool
}

func (b *Body) Show()        { b.hidden = false }
func (b *Body) Hide()        { b.hidden = true }
func (b *Body) Hidden() bool { return b.hidden }

type listener[F any] struct {
	fn      F
	removed bool
}

// listeners keeps the registered callbacks in registration order.
type listeners[F any] struct {
	list []*listener[F]
}

func (l *listeners[F]) add(fn F) func() {
	e := &listener[F]{fn: fn}
	l.list = append(l.list, e)

	return func() {
		if e.removed {
			return
		}
		e.removed = true
		for i, it := range l.list {
			if it == e {
				l.list = append(l.list[:i:i], l.list[i+1:]...)
				break
			}
		}
	}
}

// each calls fn on a copy of the list, so listeners may unregister while being notified.
func (l *listeners[F]) each(fn func(F)) {
	for _, e := range append([]*listener[F](nil), l.list...) {
		if !e.removed {
			fn(e.fn)
		}
	}
}
