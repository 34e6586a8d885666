package eraser

import (
	"errors"
	"fmt"
	"image"
	"log"
	"time"

	"golang.org/x/image/math/f32"
)

const (
	// BrushSize is the diameter of the erasing stroke.
	BrushSize = 300
	// ResizeDelay is the quiet period after the last resize event before re-rendering.
	ResizeDelay = 300 * time.Millisecond
	// Threshold is the erased percentage triggering the fade out.
	Threshold = 50.0
	// FadeInterval is the delay between two fade out steps.
	FadeInterval = 50 * time.Millisecond
	// FadeSteps is the number of steps needed to fade from opaque to invisible.
	FadeSteps = 50
)

var (
	// ErrElementNotFound is returned when the document has no element with the requested id.
	ErrElementNotFound = errors.New("element not found")
	// ErrNoImage is returned when the image path is empty.
	ErrNoImage = errors.New("missing image path")
)

// Config holds the construction time options of the widget.
type Config struct {
	CanvasID     string
	ImagePath    string
	PercentageID string

	// Debug logs the state transitions.
	Debug  bool
	Logger *log.Logger
	// OnStateChange, if set, is called after every state transition.
	OnStateChange func(from, to State)
}

// Widget displays an image the user erases by moving the pointer over it.
// Once the erased area crosses the threshold the surface fades out.
// All methods and callbacks must be invoked from the scheduler goroutine.
type Widget struct {
	cfg     Config
	doc     Document
	sched   Scheduler
	surface *Surface
	display Element
	brush   Brush

	img     image.Image
	err     error
	state   State
	opacity float64
	text    string

	resizeTask Task
	fadeTask   Task
	unbind     []func()
	closed     bool
}

// New creates the widget, sizes the drawing surface to the viewport,
// starts loading the image and registers the resize and pointer listeners.
// It returns immediately, the image is drawn once loaded.
func New(cfg Config, doc Document, sched Scheduler, loader Loader) (*Widget, error) {
	if cfg.ImagePath == "" {
		return nil, ErrNoImage
	}
	surface, ok := doc.Surface(cfg.CanvasID)
	if !ok {
		return nil, fmt.Errorf("%w: drawing surface %q", ErrElementNotFound, cfg.CanvasID)
	}
	display, ok := doc.Element(cfg.PercentageID)
	if !ok {
		return nil, fmt.Errorf("%w: percentage display %q", ErrElementNotFound, cfg.PercentageID)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	w := &Widget{
		cfg:     cfg,
		doc:     doc,
		sched:   sched,
		surface: surface,
		display: display,
		brush:   Brush{Width: BrushSize},
		state:   Loading,
		opacity: 1,
	}
	w.surface.Resize(doc.Viewport())
	w.load(loader)
	w.unbind = []func(){
		doc.OnResize(w.handleResize),
		surface.OnPointerMove(w.handlePointerMove),
	}

	return w, nil
}

// State returns the current lifecycle state.
func (w *Widget) State() State { return w.state }

// Err returns the image loading error, if any.
func (w *Widget) Err() error { return w.err }

// Opacity returns the current opacity of the surface content.
func (w *Widget) Opacity() float64 { return w.opacity }

// Percentage returns the last displayed erased percentage.
func (w *Widget) Percentage() string { return w.text }

// Close unregisters the listeners and cancels the pending tasks.
// The widget ignores every callback afterwards.
func (w *Widget) Close() {
	if w.closed {
		return
	}
	w.closed = true
	for _, fn := range w.unbind {
		fn()
	}
	w.cancelResize()
	if w.fadeTask != nil {
		w.fadeTask.Cancel()
		w.fadeTask = nil
	}
}

// load decodes the image in the background. The result is handled on the scheduler goroutine.
func (w *Widget) load(loader Loader) {
	path := w.cfg.ImagePath
	w.sched.Go(func() func() {
		img, err := loader.Load(path)
		return func() { w.imageLoaded(img, err) }
	})
}

func (w *Widget) imageLoaded(img image.Image, err error) {
	if w.closed {
		return
	}
	if err != nil {
		w.err = fmt.Errorf("unable to load %s: %w", w.cfg.ImagePath, err)
		w.setState(LoadFailed)
		return
	}
	w.img = img
	w.render()
	w.setState(Interactive)
}

// render draws the image stretched over the whole surface.
func (w *Widget) render() {
	w.surface.DrawImage(w.img)
}

// rerender clears and redraws the image, then refreshes the percentage.
func (w *Widget) rerender() {
	w.surface.Clear()
	w.render()
	w.updatePercentage()
}

// handleResize hides the page and schedules the re-render for when the
// resize events stop for ResizeDelay. Only the last event of a burst counts.
func (w *Widget) handleResize() {
	if w.closed || w.state == Fading || w.state == Hidden {
		return
	}
	w.doc.Body().Hide()
	w.cancelResize()
	w.resizeTask = w.sched.AfterFunc(ResizeDelay, w.resizeSettled)
}

func (w *Widget) resizeSettled() {
	w.resizeTask = nil
	w.doc.Body().Show()
	w.surface.Resize(w.doc.Viewport())
	w.rerender()
}

func (w *Widget) cancelResize() {
	if w.resizeTask != nil {
		w.resizeTask.Cancel()
		w.resizeTask = nil
	}
}

// handlePointerMove erases the surface under the pointer.
// The position is expressed in viewport coordinates.
func (w *Widget) handlePointerMove(p f32.Vec2) {
	if w.closed || w.state != Interactive {
		return
	}
	w.surface.Erase(w.surface.ToLocal(p), w.brush)
	w.updatePercentage()
}

// updatePercentage displays the erased percentage and
// starts the fade out once the threshold has been reached.
func (w *Widget) updatePercentage() {
	if w.state != Interactive {
		return
	}
	w.text = FormatPercentage(w.surface.ErasedPercentage())
	w.display.SetText(displayText(w.text))

	if reached(w.text, Threshold) {
		w.display.SetVisible(false)
		w.fadeOut()
	}
}

// fadeOut freezes the surface content and fades it out in FadeSteps steps.
func (w *Widget) fadeOut() {
	if !w.setState(Fading) {
		return
	}
	if w.resizeTask != nil {
		w.cancelResize()
		w.doc.Body().Show()
	}

	snapshot := w.surface.Snapshot()
	step := 0
	w.fadeTask = w.sched.Every(FadeInterval, func() {
		step++
		w.opacity = float64(FadeSteps-step) / FadeSteps

		done := step >= FadeSteps
		if done {
			w.opacity = 0
			w.fadeTask.Cancel()
			w.fadeTask = nil
		}
		w.surface.Clear()
		w.surface.DrawImageAlpha(snapshot, w.opacity)

		if done {
			w.setState(Hidden)
		}
	})
}

// setState moves the widget to the next state if the transition is allowed.
func (w *Widget) setState(next State) bool {
	prev := w.state
	if !prev.can(next) {
		if w.cfg.Debug {
			w.cfg.Logger.Printf("eraser: ignored transition %s -> %s", prev, next)
		}
		return false
	}
	w.state = next
	if w.cfg.Debug {
		w.cfg.Logger.Printf("eraser: %s -> %s", prev, next)
	}
	if w.cfg.OnStateChange != nil {
		w.cfg.OnStateChange(prev, next)
	}
	return true
}
