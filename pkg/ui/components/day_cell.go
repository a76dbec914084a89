package components

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// DayCell is one day of the calendar grid. The cell itself is tappable
// (to schedule a meeting on that day); the meeting chips inside it are
// widgets with their own tap handling.
type DayCell struct {
	widget.BaseWidget

	day      string
	inMonth  bool
	today    bool
	OnTapped func()

	hovered  bool
	meetings *fyne.Container
}

// NewDayCell creates a cell for the given day number. Padding cells from
// the previous or next month render dimmed; today gets a highlight.
func NewDayCell(day string, inMonth, today bool, onTapped func()) *DayCell {
	c := &DayCell{
		day:      day,
		inMonth:  inMonth,
		today:    today,
		OnTapped: onTapped,
		meetings: container.NewVBox(),
	}
	c.ExtendBaseWidget(c)
	return c
}

// SetMeetings replaces the meeting chips shown inside the cell.
func (c *DayCell) SetMeetings(chips []fyne.CanvasObject) {
	c.meetings.RemoveAll()
	for _, chip := range chips {
		c.meetings.Add(chip)
	}
	c.Refresh()
}

// Tapped implements fyne.Tappable
func (c *DayCell) Tapped(*fyne.PointEvent) {
	if c.OnTapped != nil {
		c.OnTapped()
	}
}

// TappedSecondary implements fyne.SecondaryTappable
func (c *DayCell) TappedSecondary(*fyne.PointEvent) {}

// MouseIn implements desktop.Hoverable
func (c *DayCell) MouseIn(*desktop.MouseEvent) {
	c.hovered = true
	c.Refresh()
}

// MouseMoved implements desktop.Hoverable
func (c *DayCell) MouseMoved(*desktop.MouseEvent) {}

// MouseOut implements desktop.Hoverable
func (c *DayCell) MouseOut() {
	c.hovered = false
	c.Refresh()
}

// CreateRenderer implements fyne.Widget
func (c *DayCell) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(theme.BackgroundColor())
	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = theme.SeparatorColor()
	border.StrokeWidth = 1

	dayText := canvas.NewText(c.day, theme.ForegroundColor())
	dayText.TextStyle = fyne.TextStyle{Bold: c.today}

	return &dayCellRenderer{
		cell:    c,
		bg:      bg,
		border:  border,
		dayText: dayText,
	}
}

type dayCellRenderer struct {
	cell    *DayCell
	bg      *canvas.Rectangle
	border  *canvas.Rectangle
	dayText *canvas.Text
}

func (r *dayCellRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.border.Resize(size)

	pad := theme.Padding()
	r.dayText.Move(fyne.NewPos(pad, pad))
	r.dayText.Resize(r.dayText.MinSize())

	chipTop := pad*2 + r.dayText.MinSize().Height
	r.cell.meetings.Move(fyne.NewPos(pad, chipTop))
	r.cell.meetings.Resize(fyne.NewSize(size.Width-pad*2, size.Height-chipTop-pad))
}

func (r *dayCellRenderer) MinSize() fyne.Size {
	chips := r.cell.meetings.MinSize()
	width := chips.Width + theme.Padding()*2
	if width < 110 {
		width = 110
	}
	height := r.dayText.MinSize().Height + chips.Height + theme.Padding()*3
	if height < 90 {
		height = 90
	}
	return fyne.NewSize(width, height)
}

func (r *dayCellRenderer) Refresh() {
	r.dayText.Text = r.cell.day
	r.dayText.TextStyle = fyne.TextStyle{Bold: r.cell.today}

	switch {
	case r.cell.hovered && r.cell.inMonth:
		r.bg.FillColor = theme.HoverColor()
	case r.cell.today:
		r.bg.FillColor = theme.SelectionColor()
	case !r.cell.inMonth:
		r.bg.FillColor = theme.DisabledButtonColor()
	default:
		r.bg.FillColor = theme.BackgroundColor()
	}

	if r.cell.inMonth {
		r.dayText.Color = theme.ForegroundColor()
	} else {
		r.dayText.Color = theme.DisabledColor()
	}

	r.bg.Refresh()
	r.border.Refresh()
	r.dayText.Refresh()
}

func (r *dayCellRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.bg, r.border, r.dayText, r.cell.meetings}
}

func (r *dayCellRenderer) Destroy() {}
