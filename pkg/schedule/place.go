package schedule

import (
	"log"
	"sort"
	"time"

	"github.com/borgmon/meetcal/pkg/models"
)

// Place buckets meetings into the grid's day cells by structural date
// equality in the given zone, then sorts each cell by time-of-day with
// ties broken by meeting ID. Meetings whose start instant does not parse,
// or whose date matches no cell, are left out of the grid; the caller's
// full meeting list still holds them. Returns the number of meetings
// dropped from this grid.
func Place(grid []DayCell, meetings []models.Meeting, zone *time.Location) int {
	starts := make(map[string]time.Time, len(meetings))
	dropped := 0

	for _, meeting := range meetings {
		start, err := ParseInstant(meeting.StartTime)
		if err != nil {
			log.Printf("Skipping unplaceable meeting %s: %v", meeting.ID, err)
			dropped++
			continue
		}

		cell := findCell(grid, DateOf(start, zone))
		if cell == nil {
			// Outside the displayed grid; expected at month boundaries.
			dropped++
			continue
		}

		starts[meeting.ID] = start
		cell.Meetings = append(cell.Meetings, meeting)
	}

	for i := range grid {
		cell := &grid[i]
		if len(cell.Meetings) < 2 {
			continue
		}
		sort.SliceStable(cell.Meetings, func(a, b int) bool {
			ta := timeOfDay(starts[cell.Meetings[a].ID], zone)
			tb := timeOfDay(starts[cell.Meetings[b].ID], zone)
			if ta != tb {
				return ta < tb
			}
			return cell.Meetings[a].ID < cell.Meetings[b].ID
		})
	}

	return dropped
}

func findCell(grid []DayCell, date Date) *DayCell {
	for i := range grid {
		if grid[i].Date.Compare(date) == 0 {
			return &grid[i]
		}
	}
	return nil
}

// timeOfDay collapses an instant to seconds since local midnight.
func timeOfDay(t time.Time, zone *time.Location) int {
	local := t.In(zone)
	return local.Hour()*3600 + local.Minute()*60 + local.Second()
}
