package domain

import (
	"fmt"
	"time"
)

// ClockOut is the countdown to the end of the working day.
type ClockOut struct {
	Remaining time.Duration
	OffWork   bool
}

// UntilClockOut computes the time left before hour:00 on now's day.
func UntilClockOut(now time.Time, hour int) ClockOut {
	end := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !now.Before(end) {
		return ClockOut{OffWork: true}
	}
	return ClockOut{Remaining: end.Sub(now)}
}

// Label renders the countdown the way the desk clock shows it.
func (c ClockOut) Label() string {
	if c.OffWork {
		return "已下班！快跑！"
	}
	total := int(c.Remaining / time.Second)
	return fmt.Sprintf("%d时%d分%d秒", total/3600, total%3600/60, total%60)
}
