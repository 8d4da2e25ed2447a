package editor

import (
	"context"
	"image"
	"sync"
)

type recordingSurface struct {
	layers map[Layer][]Node
	draws  int
}

func newRecordingSurface() *recordingSurface {
	return &recordingSurface{layers: map[Layer][]Node{}}
}

func (s *recordingSurface) AddNode(l Layer, n Node) { s.layers[l] = append(s.layers[l], n) }

func (s *recordingSurface) RemoveNode(l Layer, id string) {
	nodes := s.layers[l]
	for i, n := range nodes {
		if n.NodeID() == id {
			s.layers[l] = append(nodes[:i], nodes[i+1:]...)
			return
		}
	}
}

func (s *recordingSurface) RemoveChildren(l Layer) { s.layers[l] = nil }
func (s *recordingSurface) Draw()                  { s.draws++ }

type recordingInput struct {
	open   *TextField
	opened int
	closed int
}

func (r *recordingInput) Open(f *TextField)  { r.open = f; r.opened++ }
func (r *recordingInput) Close(f *TextField) { r.open = nil; r.closed++ }

type loadResult struct {
	img image.Image
	err error
}

// fakeLoader blocks each Load until the test releases the named source.
type fakeLoader struct {
	mu      sync.Mutex
	results map[string]chan loadResult
}

func newFakeLoader(sources ...string) *fakeLoader {
	l := &fakeLoader{results: map[string]chan loadResult{}}
	for _, s := range sources {
		l.results[s] = make(chan loadResult, 1)
	}
	return l
}

func (l *fakeLoader) Load(ctx context.Context, source string) (image.Image, error) {
	l.mu.Lock()
	ch := l.results[source]
	l.mu.Unlock()
	select {
	case r := <-ch:
		return r.img, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (l *fakeLoader) finish(source string, img image.Image, err error) {
	l.mu.Lock()
	ch := l.results[source]
	l.mu.Unlock()
	ch <- loadResult{img, err}
}

// queueScheduler collects posted callbacks for the test to run on its own
// goroutine, standing in for the event loop.
type queueScheduler struct {
	ch chan func()
}

func newQueueScheduler() *queueScheduler { return &queueScheduler{ch: make(chan func(), 8)} }

func (q *queueScheduler) post(fn func()) { q.ch <- fn }

func (q *queueScheduler) runNext() { (<-q.ch)() }

type fakeExporter struct {
	sel   *Selection
	saw   *Shape
	calls int
}

func (f *fakeExporter) RenderToImage() (image.Image, error) {
	f.calls++
	f.saw = f.sel.Selected()
	return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
}
