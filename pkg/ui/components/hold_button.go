package components

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const holdTickInterval = 50 * time.Millisecond

// HoldButton is a button the user must hold for a fixed duration before
// it fires. The fill animates across the button while held and resets
// when the press is released or the pointer leaves.
type HoldButton struct {
	widget.BaseWidget
	Text       string
	HoldTime   time.Duration
	OnComplete func()

	holding  bool
	hovered  bool
	progress float64
	ticker   *time.Ticker
}

// NewHoldButton creates a HoldButton that calls onComplete after the
// button has been held for holdTime.
func NewHoldButton(text string, holdTime time.Duration, onComplete func()) *HoldButton {
	b := &HoldButton{
		Text:       text,
		HoldTime:   holdTime,
		OnComplete: onComplete,
	}
	b.ExtendBaseWidget(b)
	return b
}

// CreateRenderer implements fyne.Widget
func (b *HoldButton) CreateRenderer() fyne.WidgetRenderer {
	text := canvas.NewText(b.Text, theme.ForegroundColor())
	text.Alignment = fyne.TextAlignCenter

	bg := canvas.NewRectangle(theme.ButtonColor())
	fill := canvas.NewRectangle(theme.PrimaryColor())

	return &holdButtonRenderer{
		button: b,
		text:   text,
		bg:     bg,
		fill:   fill,
	}
}

// Tapped implements fyne.Tappable; a plain tap does nothing.
func (b *HoldButton) Tapped(*fyne.PointEvent) {}

// TappedSecondary implements fyne.SecondaryTappable
func (b *HoldButton) TappedSecondary(*fyne.PointEvent) {}

// MouseIn implements desktop.Hoverable
func (b *HoldButton) MouseIn(*desktop.MouseEvent) {
	b.hovered = true
	b.Refresh()
}

// MouseMoved implements desktop.Hoverable
func (b *HoldButton) MouseMoved(*desktop.MouseEvent) {}

// MouseOut implements desktop.Hoverable
func (b *HoldButton) MouseOut() {
	b.hovered = false
	// Leaving the button releases the hold
	b.release()
	b.Refresh()
}

// MouseDown implements desktop.Mouseable
func (b *HoldButton) MouseDown(*desktop.MouseEvent) {
	if b.holding {
		return
	}
	b.holding = true
	b.progress = 0
	b.Refresh()
	b.startTicker()
}

// MouseUp implements desktop.Mouseable
func (b *HoldButton) MouseUp(*desktop.MouseEvent) {
	b.release()
	b.Refresh()
}

func (b *HoldButton) startTicker() {
	increment := float64(holdTickInterval) / float64(b.HoldTime)
	b.ticker = time.NewTicker(holdTickInterval)

	go func(ticker *time.Ticker) {
		for range ticker.C {
			fyne.Do(func() {
				if !b.holding {
					ticker.Stop()
					return
				}

				b.progress += increment
				b.Refresh()

				if b.progress >= 1.0 {
					ticker.Stop()
					b.holding = false
					if b.OnComplete != nil {
						b.OnComplete()
					}
				}
			})
		}
	}(b.ticker)
}

func (b *HoldButton) release() {
	if !b.holding {
		return
	}
	b.holding = false
	if b.ticker != nil {
		b.ticker.Stop()
	}
	b.progress = 0
}

type holdButtonRenderer struct {
	button *HoldButton
	text   *canvas.Text
	bg     *canvas.Rectangle
	fill   *canvas.Rectangle
}

func (r *holdButtonRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.text.Resize(size)

	// Fill grows from left to right as the hold progresses
	fillWidth := size.Width * float32(r.button.progress)
	r.fill.Resize(fyne.NewSize(fillWidth, size.Height))
	r.fill.Move(fyne.NewPos(0, 0))
}

func (r *holdButtonRenderer) MinSize() fyne.Size {
	textSize := r.text.MinSize()
	minWidth := textSize.Width + theme.Padding()*4
	minHeight := textSize.Height + theme.Padding()*2

	// Hold targets need to be large enough to keep the pointer on
	if minWidth < 300 {
		minWidth = 300
	}
	if minHeight < 80 {
		minHeight = 80
	}

	return fyne.NewSize(minWidth, minHeight)
}

func (r *holdButtonRenderer) Refresh() {
	r.text.Text = r.button.Text
	r.text.Color = theme.ForegroundColor()

	if r.button.hovered {
		r.bg.FillColor = theme.HoverColor()
	} else {
		r.bg.FillColor = theme.ButtonColor()
	}

	size := r.bg.Size()
	fillWidth := size.Width * float32(r.button.progress)
	r.fill.Resize(fyne.NewSize(fillWidth, size.Height))

	r.bg.Refresh()
	r.fill.Refresh()
	r.text.Refresh()
}

func (r *holdButtonRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.bg, r.fill, r.text}
}

func (r *holdButtonRenderer) Destroy() {
	if r.button.ticker != nil {
		r.button.ticker.Stop()
	}
}
