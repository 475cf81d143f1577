package run

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGroupWaitCollectsErrors(t *testing.T) {
	boom := errors.New("boom")
	g := NewGroup(context.Background())
	g.Go(RunFunc(func(ctx context.Context) error { return nil }))
	g.Go(RunFunc(func(ctx context.Context) error { return boom }))
	require.Equal(t, boom, g.Wait())
}

func TestGroupCancelPropagates(t *testing.T) {
	boom := errors.New("boom")
	g := NewGroup(context.Background())
	g.Go(NamedRun("waiter", RunFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})))
	g.Go(RunFunc(func(ctx context.Context) error {
		time.Sleep(10 * time.Millisecond)
		return boom
	}))
	// the failing runner cancels the waiter; cancellation is not an error
	require.Equal(t, boom, g.Wait())
}

func TestAggregatedError(t *testing.T) {
	var errs AggregatedError
	require.NoError(t, errs.Aggregate())

	e1, e2 := errors.New("one"), errors.New("two")
	errs.Add(e1, nil)
	require.Equal(t, e1, errs.Aggregate())

	errs.Add(e2)
	err := errs.Aggregate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "one")
	require.Contains(t, err.Error(), "two")
}
