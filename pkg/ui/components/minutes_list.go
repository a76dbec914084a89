package components

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// MinutesList manages a list of minute offsets with a dropdown to add
// values and plus/minus controls. Values are kept sorted and unique.
type MinutesList struct {
	list        *widget.List
	data        []int
	selectedIdx int
	onChange    func()
}

// NewMinutesList creates the list editor seeded with initial values. The
// options slice holds the choices offered by the add dropdown, e.g.
// "5 min". onChange fires on every add or remove.
func NewMinutesList(initial []int, options []string, onChange func()) (*MinutesList, *fyne.Container) {
	ml := &MinutesList{
		data:        append([]int(nil), initial...),
		selectedIdx: -1,
		onChange:    onChange,
	}
	sort.Ints(ml.data)

	ml.list = widget.NewList(
		func() int {
			return len(ml.data)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("template")
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if i < len(ml.data) {
				o.(*widget.Label).SetText(strconv.Itoa(ml.data[i]) + " min")
			}
		})

	ml.list.OnSelected = func(id widget.ListItemID) {
		ml.selectedIdx = id
	}

	addSelect := widget.NewSelect(options, nil)

	plusButton := widget.NewButton("", func() {
		if addSelect.Selected == "" {
			return
		}
		var val int
		if _, err := fmt.Sscanf(addSelect.Selected, "%d min", &val); err != nil || val <= 0 {
			return
		}
		ml.Add(val)
		addSelect.ClearSelected()
	})
	plusButton.Icon = theme.ContentAddIcon()

	minusButton := widget.NewButton("", func() {
		ml.RemoveSelected()
	})
	minusButton.Icon = theme.ContentRemoveIcon()

	addControls := container.NewBorder(nil, nil, nil,
		container.NewHBox(plusButton, minusButton), addSelect)

	listScroll := container.NewScroll(ml.list)
	listScroll.SetMinSize(fyne.NewSize(0, 150))

	listWithBorder := container.NewBorder(
		widget.NewSeparator(),
		widget.NewSeparator(),
		widget.NewSeparator(),
		widget.NewSeparator(),
		listScroll,
	)

	return ml, container.NewVBox(listWithBorder, addControls)
}

// Add inserts a value, ignoring duplicates, and keeps the list sorted.
func (ml *MinutesList) Add(value int) {
	for _, existing := range ml.data {
		if existing == value {
			return
		}
	}
	ml.data = append(ml.data, value)
	sort.Ints(ml.data)
	ml.list.Refresh()
	if ml.onChange != nil {
		ml.onChange()
	}
}

// RemoveSelected removes the currently selected value.
func (ml *MinutesList) RemoveSelected() {
	if ml.selectedIdx < 0 || ml.selectedIdx >= len(ml.data) {
		return
	}
	ml.data = append(ml.data[:ml.selectedIdx], ml.data[ml.selectedIdx+1:]...)
	ml.list.UnselectAll()
	ml.selectedIdx = -1
	ml.list.Refresh()
	if ml.onChange != nil {
		ml.onChange()
	}
}

// Values returns the current values in ascending order.
func (ml *MinutesList) Values() []int {
	return append([]int(nil), ml.data...)
}

// CSV renders the values as the comma-separated form stored in config.
func (ml *MinutesList) CSV() string {
	parts := make([]string, len(ml.data))
	for i, val := range ml.data {
		parts[i] = strconv.Itoa(val)
	}
	return strings.Join(parts, ",")
}
