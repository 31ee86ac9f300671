package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWithSignal_StopCancelsContext(t *testing.T) {
	ctx, stop := WithSignal(context.Background())

	select {
	case <-ctx.Done():
		t.Fatal("context canceled before stop")
	default:
	}

	stop()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context not canceled after stop")
	}
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestWithSignal_ParentCancelPropagates(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	ctx, stop := WithSignal(parent)
	defer stop()

	cancel()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("parent cancellation did not propagate")
	}
}
