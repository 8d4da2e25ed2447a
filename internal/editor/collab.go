package editor

import (
	"context"
	"image"
)

// EventKind identifies the phase of a pointer gesture.
type EventKind int

const (
	EventPress EventKind = iota
	EventMove
	EventRelease
	EventClick
	EventDoubleClick
)

func (k EventKind) String() string {
	switch k {
	case EventPress:
		return "press"
	case EventMove:
		return "move"
	case EventRelease:
		return "release"
	case EventClick:
		return "click"
	case EventDoubleClick:
		return "dblclick"
	default:
		return "unknown"
	}
}

// Device identifies where an input event originated.
type Device int

const (
	DeviceMouse Device = iota
	DeviceTouch
)

// Button is the mouse button attached to an event. Touch events use ButtonPrimary.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonMiddle
	ButtonSecondary
)

// InputEvent is a single pointer or touch record delivered by the shell.
// Positions are page coordinates; the Mapper converts them to canvas
// coordinates. Touch events carry the changed touch points in Touches and
// only the first one is consumed.
type InputEvent struct {
	Kind        EventKind
	Device      Device
	Position    Point
	HasPosition bool
	Touches     []Point
	Button      Button
}

// MouseAt builds a mouse event with a resolved position.
func MouseAt(kind EventKind, x, y float64) InputEvent {
	return InputEvent{Kind: kind, Device: DeviceMouse, Position: Point{x, y}, HasPosition: true}
}

// TouchAt builds a touch event whose first changed touch is at (x, y).
func TouchAt(kind EventKind, x, y float64) InputEvent {
	return InputEvent{Kind: kind, Device: DeviceTouch, Touches: []Point{{x, y}}}
}

// KeyCode identifies the non-printable keys the editor cares about.
type KeyCode int

const (
	KeyRune KeyCode = iota
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyDelete
)

// KeyEvent is a key press forwarded by the shell.
type KeyEvent struct {
	Code KeyCode
	Rune rune
}

// Container is the geometry of the drawing surface within the page.
type Container struct {
	Left, Top     float64
	Width, Height float64
}

// ContainerGeometry reports the current drawing surface geometry.
type ContainerGeometry interface {
	Container() Container
}

// FixedContainer is a ContainerGeometry that never changes.
type FixedContainer Container

func (f FixedContainer) Container() Container { return Container(f) }

// ImageLoader decodes an image from a source string. Implementations may
// block; the editor always calls Load off the event loop.
type ImageLoader interface {
	Load(ctx context.Context, source string) (image.Image, error)
}

// Exporter renders the current scene to a pixel buffer.
type Exporter interface {
	RenderToImage() (image.Image, error)
}

// Scheduler posts fn back onto the event loop goroutine.
type Scheduler func(fn func())

// TextInput hosts the editable field used while a Text shape is edited.
type TextInput interface {
	Open(field *TextField)
	Close(field *TextField)
}

// Layer identifies one of the retained layers on a Surface.
type Layer int

const (
	LayerBackground Layer = iota
	LayerAnnotations
	LayerHandles
)

// Node is anything a Surface can retain: *Shape, *Background or *Handles.
type Node interface {
	NodeID() string
}

// Surface is the retained-mode render sink the scene writes to.
type Surface interface {
	AddNode(layer Layer, n Node)
	RemoveNode(layer Layer, id string)
	RemoveChildren(layer Layer)
	Draw()
}

type nopSurface struct{}

func (nopSurface) AddNode(Layer, Node)      {}
func (nopSurface) RemoveNode(Layer, string) {}
func (nopSurface) RemoveChildren(Layer)     {}
func (nopSurface) Draw()                    {}

type nopTextInput struct{}

func (nopTextInput) Open(*TextField)  {}
func (nopTextInput) Close(*TextField) {}
