package season

import "time"

// Race is one round of the season calendar.
type Race struct {
	Round       int
	Name        string
	Circuit     string
	CountryCode string
	// RaceDate is the circuit-local calendar date of the grand prix.
	RaceDate string
	// StartUTC is the approximate UTC race start, used for timezone-aware
	// display on the client.
	StartUTC time.Time
	// WeekendStartUTC is the UTC start of first practice when known; it powers
	// the race-weekend countdown.
	WeekendStartUTC *time.Time
	Sprint          bool
}

// Driver is a catalog entry for one race driver.
type Driver struct {
	ID   string
	Name string
	Team string
}

// Constructor is a catalog entry for one team.
type Constructor struct {
	ID   string
	Name string
}
