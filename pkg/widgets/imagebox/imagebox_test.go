package imagebox_test

import (
	"context"
	"errors"
	"image"
	"sort"
	"testing"
	"time"

	"github.com/byosamah/volteria-canvas/pkg/widgets"
	"github.com/byosamah/volteria-canvas/pkg/widgets/imagebox"
)

func TestReloadOnlyOnURLChange(t *testing.T) {
	loaded := make(chan string, 4)
	loader := func(_ context.Context, url string) (image.Image, error) {
		loaded <- url
		return image.NewRGBA(image.Rect(0, 0, 2, 2)), nil
	}
	b := imagebox.New(loader)
	ctx := context.Background()

	b.SetState(ctx, widgets.ImageState{URL: "http://x/a.png"})
	b.SetState(ctx, widgets.ImageState{URL: "http://x/a.png", ShowDot: true, Online: true})
	b.SetState(ctx, widgets.ImageState{URL: "http://x/b.png"})

	var calls []string
	for len(calls) < 2 {
		select {
		case u := <-loaded:
			calls = append(calls, u)
		case <-time.After(time.Second):
			t.Fatalf("expected two loads, got %v", calls)
		}
	}
	sort.Strings(calls)
	if calls[0] != "http://x/a.png" || calls[1] != "http://x/b.png" {
		t.Errorf("unexpected loads: %v", calls)
	}
	select {
	case u := <-loaded:
		t.Errorf("repeated URL should not reload, got %q", u)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSlowLoadDoesNotBlockSetState(t *testing.T) {
	release := make(chan struct{})
	loader := func(context.Context, string) (image.Image, error) {
		<-release
		return image.NewRGBA(image.Rect(0, 0, 2, 2)), nil
	}
	b := imagebox.New(loader)

	done := make(chan struct{})
	go func() {
		b.SetState(context.Background(), widgets.ImageState{URL: "http://x/slow.png"})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("SetState blocked on the image fetch")
	}
	close(release)
}

func TestURLSwitchCancelsPendingLoad(t *testing.T) {
	started := make(chan struct{})
	canceled := make(chan struct{})
	loader := func(ctx context.Context, url string) (image.Image, error) {
		if url == "http://x/slow.png" {
			close(started)
			<-ctx.Done()
			close(canceled)
			return nil, ctx.Err()
		}
		return image.NewRGBA(image.Rect(0, 0, 2, 2)), nil
	}
	b := imagebox.New(loader)
	ctx := context.Background()

	b.SetState(ctx, widgets.ImageState{URL: "http://x/slow.png"})
	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("first load never started")
	}
	b.SetState(ctx, widgets.ImageState{URL: "http://x/fast.png"})
	select {
	case <-canceled:
	case <-time.After(time.Second):
		t.Fatal("pending load should be canceled on URL change")
	}
}

func TestLoaderFailureFallsBack(t *testing.T) {
	failed := make(chan struct{})
	loader := func(context.Context, string) (image.Image, error) {
		defer close(failed)
		return nil, errors.New("boom")
	}
	b := imagebox.New(loader)
	// must not panic; widget falls back to the placeholder
	b.SetState(context.Background(), widgets.ImageState{URL: "http://x/a.png"})
	select {
	case <-failed:
	case <-time.After(time.Second):
		t.Fatal("loader was never invoked")
	}
}
