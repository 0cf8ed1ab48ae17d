package domain

import "time"

// Report wraps order analytics with what is needed to render it
type Report struct {
	Title     string
	Source    string
	Period    TimePeriod
	Orders    int
	Analytics OrderAnalytics
}

// TimePeriod represents a time range for the report
type TimePeriod struct {
	Start    time.Time
	End      time.Time
	Duration int // in days
}
