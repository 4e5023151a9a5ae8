package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/coinboard/coinboard/internal/core/ports"
)

type stubRenderer struct {
	renderFn func(payload, caption string) ([]byte, error)
}

func (s *stubRenderer) Render(payload, caption string) ([]byte, error) {
	return s.renderFn(payload, caption)
}

func TestDispatcher_RendersAndAttaches(t *testing.T) {
	renderer := &stubRenderer{
		renderFn: func(payload, caption string) ([]byte, error) {
			return []byte(payload + "|" + caption), nil
		},
	}
	d := NewDispatcher(2, renderer, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	done := make(chan []byte, 1)
	d.Enqueue(ports.RenderJob{
		Key:     "token-1",
		Payload: "http://coin.local/attribute/token-1",
		Caption: "5 COIN",
		Attach: func(png []byte) bool {
			done <- png
			return true
		},
	})

	select {
	case png := <-done:
		want := "http://coin.local/attribute/token-1|5 COIN"
		if string(png) != want {
			t.Fatalf("expected %q, got %q", want, png)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("render job never completed")
	}
}

func TestDispatcher_RenderFailureSkipsAttach(t *testing.T) {
	rendered := make(chan struct{}, 1)
	renderer := &stubRenderer{
		renderFn: func(payload, caption string) ([]byte, error) {
			defer func() { rendered <- struct{}{} }()
			return nil, errors.New("payload too long")
		},
	}
	d := NewDispatcher(1, renderer, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(ports.RenderJob{
		Key:     "token-1",
		Payload: "p",
		Caption: "c",
		Attach: func([]byte) bool {
			t.Errorf("attach called for failed render")
			return false
		},
	})

	select {
	case <-rendered:
	case <-time.After(2 * time.Second):
		t.Fatalf("render never attempted")
	}
	// Give a misbehaving dispatcher a moment to call Attach anyway.
	time.Sleep(50 * time.Millisecond)
}

func TestDispatcher_SameKeySameWorker(t *testing.T) {
	d := NewDispatcher(4, &stubRenderer{renderFn: func(string, string) ([]byte, error) { return nil, nil }}, zerolog.Nop())

	for _, key := range []string{"a", "b", "token-123"} {
		first := d.shardIndex(key)
		for i := 0; i < 10; i++ {
			if d.shardIndex(key) != first {
				t.Fatalf("shard index unstable for key %q", key)
			}
		}
	}
}
