// Package bgrender runs glyph rasterization on a single worker goroutine.
//
// The caller talks to the worker through two unbounded FIFO mailboxes: one
// for commands (register a face, render a glyph, barrier) and one for
// results. Sending a command and polling for results never block. The worker
// keeps its own list of faces, registered in the same order as the caller's
// store, so face handles mean the same thing on both sides.
//
// The worker only plans and rasterizes. Placing rasters in atlases stays on
// the caller's goroutine.
package bgrender

import (
	"log/slog"

	"github.com/gogpu/glyphatlas/face"
	"github.com/gogpu/glyphatlas/internal/render"
)

// Job asks the worker to render one glyph for atlases of the given size.
type Job struct {
	Face        face.Handle
	Glyph       uint16
	AtlasWidth  uint32
	AtlasHeight uint32
}

// Result is the outcome of one Job. NoShape is set when the glyph has
// nothing to rasterize; Raster is then empty.
type Result struct {
	Face    face.Handle
	Glyph   uint16
	Raster  render.Raster
	NoShape bool
}

type addFace struct {
	face *face.Face
}

type barrier struct {
	done chan struct{}
}

// Actor is the handle to a running worker. Its methods must be called from
// one goroutine.
type Actor struct {
	commands *mailbox
	results  *mailbox
	done     chan struct{}
}

// Start launches the worker. logger is consulted for every log call, so the
// worker follows logger changes made after Start.
func Start(r render.Rasterizer, logger func() *slog.Logger) *Actor {
	a := &Actor{
		commands: newMailbox(),
		results:  newMailbox(),
		done:     make(chan struct{}),
	}
	w := &worker{
		commands:   a.commands,
		results:    a.results,
		rasterizer: r,
		logger:     logger,
	}
	go func() {
		defer close(a.done)
		w.run()
	}()
	return a
}

// AddFace registers a face with the worker. f is owned by the worker from
// now on: pass a clone, never a face the caller keeps using.
func (a *Actor) AddFace(f *face.Face) {
	a.commands.send(addFace{face: f})
}

// Render queues a job.
func (a *Actor) Render(j Job) {
	a.commands.send(j)
}

// Poll returns the next ready result, if any.
func (a *Actor) Poll() (Result, bool) {
	v, ok := a.results.tryReceive()
	if !ok {
		return Result{}, false
	}
	return v.(Result), true
}

// Pending returns the number of results waiting to be polled.
func (a *Actor) Pending() int {
	return a.results.len()
}

// Barrier returns a channel that is closed once the worker has processed
// every command sent before this call. Results of those commands are
// already pollable by then. On a closed actor the channel is closed once the
// worker has exited.
func (a *Actor) Barrier() <-chan struct{} {
	b := barrier{done: make(chan struct{})}
	if !a.commands.send(b) {
		return a.done
	}
	return b.done
}

// Close stops accepting commands and waits for the worker to finish the
// queued ones. Results stay pollable.
func (a *Actor) Close() {
	a.commands.close()
	<-a.done
}

type worker struct {
	commands   *mailbox
	results    *mailbox
	rasterizer render.Rasterizer
	logger     func() *slog.Logger
	faces      []*face.Face
}

func (w *worker) run() {
	for {
		v, ok := w.commands.receive()
		if !ok {
			w.logger().Debug("bgrender: worker stopped", "faces", len(w.faces))
			return
		}
		switch cmd := v.(type) {
		case addFace:
			w.faces = append(w.faces, cmd.face)
		case Job:
			w.results.send(w.render(cmd))
		case barrier:
			close(cmd.done)
		}
	}
}

func (w *worker) render(j Job) Result {
	res := Result{Face: j.Face, Glyph: j.Glyph}
	raster, ok := render.Glyph(w.faces[j.Face], j.Glyph, j.AtlasWidth, j.AtlasHeight, w.rasterizer)
	if !ok {
		res.NoShape = true
		return res
	}
	res.Raster = raster
	return res
}
