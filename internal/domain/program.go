package domain

import "time"

const (
	ProgramTitleMaxLen = 100
	ProgramBodyMaxLen  = 400
	DefaultProgramLink = "#"
)

// Program is one entry of the homepage's featured-programs list.
// The full set forms a single ordered list, sorted by Order ascending.
type Program struct {
	Title string
	Body  string
	Link  string
	Order int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultPrograms is the list served while nothing has been published yet.
// A fresh slice is returned on every call.
func DefaultPrograms() []Program {
	return []Program{
		{
			Title: "Campus Energy Labs",
			Body:  "Hands-on projects that turn classrooms into living labs for energy efficiency, renewables, and conservation.",
			Link:  "programs.html#campus-energy-labs",
			Order: 0,
		},
		{
			Title: "Green Leadership Fellows",
			Body:  "Student and teacher leadership program to design, pilot, and scale sustainability initiatives within institutions.",
			Link:  "programs.html#green-leadership",
			Order: 1,
		},
		{
			Title: "Community Action Drives",
			Body:  "Neighborhood-level drives for waste reduction, tree plantation, and energy awareness campaigns.",
			Link:  "programs.html#community-action",
			Order: 2,
		},
	}
}
