package racepick

import "time"

// Picks holds one user's predictions for one race weekend. Sprint fields are
// only meaningful for sprint rounds. Unset fields are nil.
type Picks struct {
	UserID         string
	Round          int
	QualPole       *string
	QualP2         *string
	QualP3         *string
	RaceWinner     *string
	RaceP2         *string
	RaceP3         *string
	FastestLap     *string
	SafetyCar      *bool
	SprintQualPole *string
	SprintQualP2   *string
	SprintQualP3   *string
	SprintWinner   *string
	SprintP2       *string
	SprintP3       *string
	UpdatedAt      time.Time
}

// FilledCount reports how many of the base (non-sprint) fields are set, with
// sprint fields counted only when countSprint is true. The predictions nav
// uses this to show per-round completion.
func (p Picks) FilledCount(countSprint bool) int {
	n := 0
	for _, v := range []*string{p.QualPole, p.QualP2, p.QualP3, p.RaceWinner, p.RaceP2, p.RaceP3, p.FastestLap} {
		if v != nil {
			n++
		}
	}
	if p.SafetyCar != nil {
		n++
	}
	if countSprint {
		for _, v := range []*string{p.SprintQualPole, p.SprintQualP2, p.SprintQualP3, p.SprintWinner, p.SprintP2, p.SprintP3} {
			if v != nil {
				n++
			}
		}
	}
	return n
}

// HasSprintPicks reports whether any sprint field is set.
func (p Picks) HasSprintPicks() bool {
	for _, v := range []*string{p.SprintQualPole, p.SprintQualP2, p.SprintQualP3, p.SprintWinner, p.SprintP2, p.SprintP3} {
		if v != nil {
			return true
		}
	}
	return false
}

// Update is the projection the activity feed reads.
type Update struct {
	UserID    string
	Round     int
	UpdatedAt time.Time
}
