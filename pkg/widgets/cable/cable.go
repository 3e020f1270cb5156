// Package cable draws a connector between two grid-anchored points
// with an optional directional flow animation. The dash offset cycles
// forward or backward depending on the resolved flow state; a stopped
// cable keeps its static dashes so it still reads as animatable.
package cable

import (
	"fmt"
	"math"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/byosamah/volteria-canvas/pkg/colors"
	"github.com/byosamah/volteria-canvas/pkg/schema"
	"github.com/byosamah/volteria-canvas/pkg/svgpath"
	"github.com/byosamah/volteria-canvas/pkg/svgrender"
	"github.com/byosamah/volteria-canvas/pkg/widgets"
)

const handleRadius = 6

// grab distance for an endpoint handle, in screen pixels
const grabRange = 24

type Cable struct {
	widget.BaseWidget

	cfg        *schema.CableConfig
	cols, rows int

	img         *canvas.Image
	startHandle *canvas.Circle
	endHandle   *canvas.Circle

	state    widgets.CableState
	resolved bool    // a state from the feed has been applied
	offset   float64 // dash offset in canvas units
	anim     *fyne.Animation
	editMode bool
	selected bool

	dragTarget int // 0 none, 1 start, 2 end
	dragDX     float32
	dragDY     float32

	// OnEndpointMoved reports the accumulated drag of one endpoint in
	// grid-cell units. Mutating the config is the caller's job.
	OnEndpointMoved func(start bool, dx, dy float64)
	OnSelected      func()

	size fyne.Size
}

var _ fyne.Draggable = (*Cable)(nil)
var _ fyne.Tappable = (*Cable)(nil)
var _ desktop.Cursorable = (*Cable)(nil)

func New(cfg *schema.CableConfig, cols, rows int) *Cable {
	c := &Cable{
		cfg:  cfg,
		cols: cols,
		rows: rows,
	}
	c.ExtendBaseWidget(c)

	c.state = widgets.CableState{Flow: widgets.FlowForward, Color: colors.ParseHex(cfg.Color, colors.Green)}

	c.img = canvas.NewImageFromImage(svgrender.Rasterize(c.document(), 100, 100))
	c.img.FillMode = canvas.ImageFillStretch
	c.img.ScaleMode = canvas.ImageScaleFastest

	c.startHandle = canvas.NewCircle(colors.Blue)
	c.endHandle = canvas.NewCircle(colors.Blue)
	c.startHandle.Hide()
	c.endHandle.Hide()

	return c
}

// SetState applies a resolved flow state and restarts or stops the
// dash animation to match.
func (c *Cable) SetState(st widgets.CableState) {
	if c.resolved && c.state == st {
		return
	}
	c.resolved = true
	c.state = st
	c.updateAnimation()
}

// SetEditMode toggles the endpoint handles.
func (c *Cable) SetEditMode(edit bool) {
	c.editMode = edit
	if edit {
		c.startHandle.Show()
		c.endHandle.Show()
	} else {
		c.startHandle.Hide()
		c.endHandle.Hide()
		c.selected = false
	}
	c.redraw()
}

func (c *Cable) SetSelected(sel bool) {
	if c.selected == sel {
		return
	}
	c.selected = sel
	c.redraw()
}

func (c *Cable) Selected() bool { return c.selected }

func (c *Cable) updateAnimation() {
	if c.anim != nil {
		c.anim.Stop()
		c.anim = nil
	}
	if !c.cfg.AnimatedOn() || c.state.Flow == widgets.FlowStopped {
		c.offset = 0
		c.redraw()
		return
	}
	cycle := 6 * c.cfg.Thickness // dash 4t + gap 2t
	speed := c.cfg.AnimationSpeed
	if speed <= 0 {
		speed = 1
	}
	dir := 1.0
	if c.state.Flow == widgets.FlowReverse {
		dir = -1
	}
	c.anim = fyne.NewAnimation(time.Duration(float64(time.Second)/speed), func(p float32) {
		c.offset = -dir * float64(p) * cycle
		c.redraw()
	})
	c.anim.RepeatCount = fyne.AnimationRepeatForever
	c.anim.Start()
}

func (c *Cable) endpoints() (svgpath.Point, svgpath.Point) {
	a := svgpath.GridToCanvas(c.cfg.StartX, c.cfg.StartY, c.cols, c.rows)
	b := svgpath.GridToCanvas(c.cfg.EndX, c.cfg.EndY, c.cols, c.rows)
	return a, b
}

func (c *Cable) pathData() string {
	a, b := c.endpoints()
	switch c.cfg.PathStyle {
	case schema.PathCurved:
		return svgpath.CurvedPath(a, b)
	case schema.PathOrthogonal:
		return svgpath.OrthogonalPath(a, b)
	default:
		return svgpath.StraightPath(a, b)
	}
}

func (c *Cable) document() string {
	d := c.pathData()
	thickness := c.cfg.Thickness
	stroke := colors.Hex(c.state.Color)

	var body string
	if c.selected {
		body += fmt.Sprintf(`<path d="%s" fill="none" stroke="#4488dd" stroke-opacity="0.5" stroke-width="%.2f" stroke-linecap="round"/>`,
			d, thickness*3)
	}
	body += fmt.Sprintf(`<path d="%s" fill="none" stroke="%s" stroke-width="%.2f" stroke-linecap="round" stroke-dasharray="%.2f %.2f" stroke-dashoffset="%.2f"/>`,
		d, stroke, thickness, 4*thickness, 2*thickness, c.offset)
	return svgrender.Document(float64(c.cols*100), float64(c.rows*100), body)
}

func (c *Cable) redraw() {
	w := int(c.size.Width)
	h := int(c.size.Height)
	if w <= 0 || h <= 0 {
		w, h = 100, 100
	}
	c.img.Image = svgrender.Rasterize(c.document(), w, h)
	canvas.Refresh(c.img)
}

// toPixels maps a canvas-unit point to widget pixels.
func (c *Cable) toPixels(p svgpath.Point) fyne.Position {
	return fyne.NewPos(
		float32(p.X/float64(c.cols*100))*c.size.Width,
		float32(p.Y/float64(c.rows*100))*c.size.Height,
	)
}

func (c *Cable) placeHandles() {
	a, b := c.endpoints()
	pa := c.toPixels(a)
	pb := c.toPixels(b)
	c.startHandle.Move(fyne.NewPos(pa.X-handleRadius, pa.Y-handleRadius))
	c.startHandle.Resize(fyne.NewSize(2*handleRadius, 2*handleRadius))
	c.endHandle.Move(fyne.NewPos(pb.X-handleRadius, pb.Y-handleRadius))
	c.endHandle.Resize(fyne.NewSize(2*handleRadius, 2*handleRadius))
}

func (c *Cable) Tapped(*fyne.PointEvent) {
	if !c.editMode {
		return
	}
	c.SetSelected(!c.selected)
	if c.OnSelected != nil && c.selected {
		c.OnSelected()
	}
}

func (c *Cable) Dragged(ev *fyne.DragEvent) {
	if !c.editMode {
		return
	}
	if c.dragTarget == 0 {
		a, b := c.endpoints()
		pa := c.toPixels(a)
		pb := c.toPixels(b)
		if dist(ev.Position, pa) <= grabRange {
			c.dragTarget = 1
		} else if dist(ev.Position, pb) <= grabRange {
			c.dragTarget = 2
		} else {
			return
		}
		c.dragDX, c.dragDY = 0, 0
	}
	c.dragDX += ev.Dragged.DX
	c.dragDY += ev.Dragged.DY
}

func (c *Cable) DragEnd() {
	if c.dragTarget == 0 || c.OnEndpointMoved == nil {
		c.dragTarget = 0
		return
	}
	cellW := c.size.Width / float32(c.cols)
	cellH := c.size.Height / float32(c.rows)
	if cellW > 0 && cellH > 0 {
		c.OnEndpointMoved(c.dragTarget == 1, float64(c.dragDX/cellW), float64(c.dragDY/cellH))
	}
	c.dragTarget = 0
}

func (c *Cable) Cursor() desktop.Cursor {
	if c.editMode {
		return desktop.PointerCursor
	}
	return desktop.DefaultCursor
}

func dist(a, b fyne.Position) float32 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return float32(math.Sqrt(dx*dx + dy*dy))
}

func (c *Cable) CreateRenderer() fyne.WidgetRenderer {
	// Cables without a bound register may never receive a feed state,
	// so the initial forward flow has to start animating on its own.
	if !c.resolved {
		c.updateAnimation()
	}
	return &cableRenderer{c}
}

type cableRenderer struct {
	*Cable
}

func (r *cableRenderer) Layout(space fyne.Size) {
	if r.size == space {
		return
	}
	r.size = space
	r.img.Move(fyne.NewPos(0, 0))
	r.img.Resize(space)
	r.placeHandles()
	r.redraw()
}

func (r *cableRenderer) MinSize() fyne.Size { return fyne.NewSize(20, 20) }

func (r *cableRenderer) Refresh() {
	r.placeHandles()
	r.redraw()
}

func (r *cableRenderer) Destroy() {
	if r.anim != nil {
		r.anim.Stop()
	}
}

func (r *cableRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.img, r.startHandle, r.endHandle}
}
