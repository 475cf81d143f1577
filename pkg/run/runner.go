// Package run provides a small harness for running background tasks
// and collecting their errors.
package run

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/golang/glog"
)

// Runnable defines a generic interface for background runners.
type Runnable interface {
	Run(context.Context) error
}

// RunFunc is func type of Runnable.
type RunFunc func(context.Context) error

// Run implements Runnable.
func (f RunFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// Named is an abstraction for things with a name.
type Named interface {
	Name() string
}

type namedRunnable struct {
	Runnable
	name string
}

func (r *namedRunnable) Name() string {
	return r.name
}

// NamedRun wraps a Runnable with a name for logging.
func NamedRun(name string, runnable Runnable) Runnable {
	return &namedRunnable{name: name, Runnable: runnable}
}

// Group runs multiple Runnables and aggregates their errors. The
// group context is canceled when any member stops with an error, so
// the remaining members wind down.
type Group struct {
	ctx    context.Context
	cancel context.CancelFunc
	errCh  chan error
	count  int
}

// NewGroup creates a group with the given parent context.
func NewGroup(ctx context.Context) *Group {
	ctx, cancel := context.WithCancel(ctx)
	return &Group{ctx: ctx, cancel: cancel, errCh: make(chan error, 1)}
}

// HandleSignals cancels the group on SIGINT/SIGTERM.
func (g *Group) HandleSignals() *Group {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		glog.Info("stop requested")
		g.cancel()
	}()
	return g
}

// Go spawns Runnables on the group context.
func (g *Group) Go(runnables ...Runnable) *Group {
	for _, runnable := range runnables {
		name := "?"
		if named, ok := runnable.(Named); ok {
			name = named.Name()
		}
		g.count++
		go func(runnable Runnable, name string) {
			glog.V(4).Infof("runner[%s] started", name)
			err := runnable.Run(g.ctx)
			glog.V(4).Infof("runner[%s] stopped: %v", name, err)
			if err != nil && !errors.Is(err, context.Canceled) {
				g.cancel()
			}
			g.errCh <- err
		}(runnable, name)
	}
	return g
}

// Wait blocks until every spawned Runnable stops and aggregates their
// errors, ignoring context cancellation.
func (g *Group) Wait() error {
	defer g.cancel()
	var errs AggregatedError
	for i := 0; i < g.count; i++ {
		if err := <-g.errCh; err != nil && !errors.Is(err, context.Canceled) {
			errs.Add(err)
		}
	}
	return errs.Aggregate()
}

// AggregatedError aggregates multiple errors.
type AggregatedError struct {
	Errors []error
}

// Error implements error.
func (e *AggregatedError) Error() string {
	msg := make([]string, len(e.Errors)+1)
	msg[0] = "multiple errors:"
	for n, err := range e.Errors {
		msg[n+1] = err.Error()
	}
	return strings.Join(msg, "\n")
}

// Add adds errors to be aggregated. nil is skipped.
func (e *AggregatedError) Add(errs ...error) *AggregatedError {
	for _, err := range errs {
		if err != nil {
			e.Errors = append(e.Errors, err)
		}
	}
	return e
}

// Aggregate returns the aggregated error if any error happened. A
// single error is returned as-is.
func (e *AggregatedError) Aggregate() error {
	switch len(e.Errors) {
	case 0:
		return nil
	case 1:
		return e.Errors[0]
	}
	return e
}
