package serviceworker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHost_StartActivates(t *testing.T) {
	p := &fakePlatform{}
	h := NewHost(p)
	assert.Equal(t, Installing, h.State())

	require.NoError(t, h.Start(context.Background()))

	assert.Equal(t, Activated, h.State())
	assert.Equal(t, 1, p.skipped)
	assert.Equal(t, 1, p.claimed)
}

func TestHost_StartFailureIsRedundant(t *testing.T) {
	tests := []struct {
		name     string
		platform *fakePlatform
		prefix   string
	}{
		{name: "install", platform: &fakePlatform{skipErr: errors.New("boom")}, prefix: "install"},
		{name: "activate", platform: &fakePlatform{claimErr: errors.New("boom")}, prefix: "activate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHost(tt.platform)

			err := h.Start(context.Background())

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.prefix)
			assert.Equal(t, Redundant, h.State())
		})
	}
}

func TestHost_DispatchBeforeActivation(t *testing.T) {
	h := NewHost(&fakePlatform{})

	_, err := h.Dispatch(context.Background(), &Event{Type: EventPush})
	assert.ErrorIs(t, err, ErrNotActivated)

	_, err = h.Dispatch(context.Background(), &Event{Type: EventNotificationClick})
	assert.ErrorIs(t, err, ErrNotActivated)
}

func TestHost_DispatchPush(t *testing.T) {
	p := &fakePlatform{}
	h := NewHost(p)
	require.NoError(t, h.Start(context.Background()))

	task, err := h.Dispatch(context.Background(), &Event{Type: EventPush, Data: []byte(`{"title":"x"}`)})
	require.NoError(t, err)
	require.NoError(t, task.Wait(context.Background()))

	require.Len(t, p.shown, 1)
	assert.Equal(t, "x", p.shown[0].Title)
}

func TestHost_UnknownEvent(t *testing.T) {
	h := NewHost(&fakePlatform{})

	_, err := h.Dispatch(context.Background(), &Event{Type: EventType("sync")})
	assert.ErrorIs(t, err, ErrNoHandler)
}

func TestHost_DrainWaitsForPendingTasks(t *testing.T) {
	p := &fakePlatform{blocking: true, block: make(chan struct{})}
	h := NewHost(p)
	require.NoError(t, h.Start(context.Background()))

	task, err := h.Dispatch(context.Background(), &Event{Type: EventPush})
	require.NoError(t, err)
	assert.Equal(t, 1, h.Pending())

	drained := make(chan error, 1)
	go func() {
		drained <- h.Drain(context.Background())
	}()

	select {
	case <-drained:
		t.Fatal("drain returned before the push task settled")
	case <-time.After(50 * time.Millisecond):
	}

	close(p.block)

	select {
	case err = <-drained:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("drain did not return after the task settled")
	}

	require.NoError(t, task.Err())
	assert.Len(t, p.shown, 1)
	assert.Equal(t, 0, h.Pending())
}

func TestHost_DrainRespectsContext(t *testing.T) {
	p := &fakePlatform{blocking: true, block: make(chan struct{})}
	defer close(p.block)

	h := NewHost(p)
	require.NoError(t, h.Start(context.Background()))
	_, err := h.Dispatch(context.Background(), &Event{Type: EventPush})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err = h.Drain(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHost_RejectsAfterDrain(t *testing.T) {
	h := NewHost(&fakePlatform{})
	require.NoError(t, h.Start(context.Background()))
	require.NoError(t, h.Drain(context.Background()))

	_, err := h.Dispatch(context.Background(), &Event{Type: EventPush})
	assert.ErrorIs(t, err, ErrHostClosed)
}

func TestHost_HandlerPanics(t *testing.T) {
	h := NewHost(&fakePlatform{})
	require.NoError(t, h.Start(context.Background()))

	h.Handle(EventPush, func(ctx context.Context, ev *Event, p Platform) *Task {
		panic("sync panic")
	})
	task, err := h.Dispatch(context.Background(), &Event{Type: EventPush})
	require.NoError(t, err)
	err = task.Wait(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sync panic")

	h.Handle(EventPush, func(ctx context.Context, ev *Event, p Platform) *Task {
		return NewTask(ctx, "push", func(ctx context.Context) error {
			panic("async panic")
		})
	})
	task, err = h.Dispatch(context.Background(), &Event{Type: EventPush})
	require.NoError(t, err)
	err = task.Wait(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "async panic")

	require.NoError(t, h.Drain(context.Background()))
}

func TestHost_NilTaskSettles(t *testing.T) {
	h := NewHost(&fakePlatform{})
	require.NoError(t, h.Start(context.Background()))

	h.Handle(EventPush, func(ctx context.Context, ev *Event, p Platform) *Task { return nil })
	task, err := h.Dispatch(context.Background(), &Event{Type: EventPush})

	require.NoError(t, err)
	require.NoError(t, task.Wait(context.Background()))
	require.NoError(t, h.Drain(context.Background()))
}

func TestTask_ErrBeforeSettle(t *testing.T) {
	release := make(chan struct{})
	task := NewTask(context.Background(), "push", func(ctx context.Context) error {
		<-release
		return errors.New("late")
	})

	assert.NoError(t, task.Err())
	close(release)
	assert.EqualError(t, task.Wait(context.Background()), "late")
	assert.EqualError(t, task.Err(), "late")
	assert.Equal(t, "push", task.Name())
}
