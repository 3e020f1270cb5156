// Package imagebox renders a remote image with optional decorations:
// a device status dot and a strip of up to two live values. The
// image URL can switch on a condition, so the box reloads only when
// the resolved URL actually changes.
package imagebox

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"net/http"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/avast/retry-go/v4"
	"github.com/byosamah/volteria-canvas/pkg/colors"
	"github.com/byosamah/volteria-canvas/pkg/widgets"
)

// Loader fetches and decodes an image. Swappable so tests never
// touch the network.
type Loader func(ctx context.Context, url string) (image.Image, error)

// HTTPLoader fetches with a short timeout and a couple of retries.
func HTTPLoader(ctx context.Context, url string) (image.Image, error) {
	client := &http.Client{Timeout: 10 * time.Second}
	var img image.Image
	err := retry.Do(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return retry.Unrecoverable(err)
		}
		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("fetch %s: %s", url, resp.Status)
		}
		img, _, err = image.Decode(resp.Body)
		return err
	},
		retry.Attempts(3),
		retry.Delay(200*time.Millisecond),
		retry.Context(ctx),
	)
	return img, err
}

type Box struct {
	widget.BaseWidget

	loader Loader

	img         *canvas.Image
	placeholder *canvas.Text
	dot         *canvas.Circle
	strip       [2]*canvas.Text

	mu         sync.Mutex
	currentURL string
	cancel     context.CancelFunc

	size fyne.Size
}

func New(loader Loader) *Box {
	if loader == nil {
		loader = HTTPLoader
	}
	b := &Box{loader: loader}
	b.ExtendBaseWidget(b)

	b.img = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	b.img.FillMode = canvas.ImageFillContain
	b.img.Hide()

	b.placeholder = canvas.NewText("Image unavailable", colors.Neutral)
	b.placeholder.Alignment = fyne.TextAlignCenter
	b.placeholder.TextStyle.Italic = true
	b.placeholder.TextSize = 12

	b.dot = canvas.NewCircle(colors.Neutral)
	b.dot.Hide()

	for i := range b.strip {
		t := canvas.NewText("", colors.Neutral)
		t.TextSize = 11
		t.TextStyle.Monospace = true
		t.Hide()
		b.strip[i] = t
	}

	return b
}

// SetState applies a resolved image state. The image itself reloads
// only on a URL change.
func (b *Box) SetState(ctx context.Context, st widgets.ImageState) {
	if st.ShowDot {
		if st.Online {
			b.dot.FillColor = colors.Green
		} else {
			b.dot.FillColor = colors.Red
		}
		b.dot.Show()
	} else {
		b.dot.Hide()
	}
	canvas.Refresh(b.dot)

	for i, t := range b.strip {
		if i < len(st.Values) {
			v := st.Values[i]
			text := v.Text
			if v.Unit != "" && v.Text != widgets.NoData {
				text += " " + v.Unit
			}
			if v.Label != "" {
				text = v.Label + ": " + text
			}
			t.Text = text
			t.Show()
		} else {
			t.Text = ""
			t.Hide()
		}
		canvas.Refresh(t)
	}

	b.mu.Lock()
	if st.URL == b.currentURL {
		b.mu.Unlock()
		return
	}
	b.currentURL = st.URL
	b.mu.Unlock()
	b.reload(ctx, st.URL)
}

// reload fetches off the caller's goroutine so a slow loader never
// stalls snapshot routing. A URL switch cancels the pending fetch,
// and a fetch that finishes after another switch is dropped.
func (b *Box) reload(ctx context.Context, url string) {
	b.mu.Lock()
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
	if url == "" {
		b.mu.Unlock()
		b.showPlaceholder()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	b.cancel = cancel
	b.mu.Unlock()

	go func() {
		img, err := b.loader(ctx, url)
		b.mu.Lock()
		stale := url != b.currentURL
		b.mu.Unlock()
		if stale || errors.Is(err, context.Canceled) {
			return
		}
		if err != nil {
			log.Println("image load:", err)
			b.showPlaceholder()
			return
		}
		b.img.Image = img
		b.img.Show()
		b.placeholder.Hide()
		canvas.Refresh(b.img)
		canvas.Refresh(b.placeholder)
	}()
}

func (b *Box) showPlaceholder() {
	b.img.Hide()
	b.placeholder.Show()
	canvas.Refresh(b.img)
	canvas.Refresh(b.placeholder)
}

func (b *Box) CreateRenderer() fyne.WidgetRenderer {
	return &boxRenderer{b}
}

type boxRenderer struct {
	*Box
}

func (r *boxRenderer) Layout(space fyne.Size) {
	if r.size == space {
		return
	}
	r.size = space

	r.img.Move(fyne.NewPos(0, 0))
	r.img.Resize(space)

	r.placeholder.Move(fyne.NewPos(0, space.Height/2-8))
	r.placeholder.Resize(fyne.NewSize(space.Width, 16))

	r.dot.Move(fyne.NewPos(space.Width-16, 6))
	r.dot.Resize(fyne.NewSize(10, 10))

	for i, t := range r.strip {
		t.Move(fyne.NewPos(4, space.Height-16*float32(len(r.strip)-i)))
	}
}

func (r *boxRenderer) MinSize() fyne.Size { return fyne.NewSize(60, 60) }

func (r *boxRenderer) Refresh() {}

func (r *boxRenderer) Destroy() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()
}

func (r *boxRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.img, r.placeholder, r.dot, r.strip[0], r.strip[1]}
}
