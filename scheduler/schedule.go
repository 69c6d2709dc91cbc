package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
)

// minSchedulingDelay keeps a zero delay schedulable: the cron timer
// loop computes the first activation strictly after registration time,
// so a fire time of "now" would never run.
const minSchedulingDelay = time.Millisecond

// onceSchedule fires a single time and then never again.
// Returning the zero time tells the cron loop the entry is exhausted.
type onceSchedule struct {
	at time.Time
}

func onceAfter(delay time.Duration) onceSchedule {
	return onceSchedule{at: time.Now().Add(delay)}
}

// Next implements cron.Schedule
func (s onceSchedule) Next(t time.Time) time.Time {
	if t.Before(s.at) {
		return s.at
	}
	return time.Time{}
}

// intervalSchedule fires first at a fixed offset from registration and
// then at a fixed interval. Activation times stay aligned to the first
// fire time regardless of how long each run takes.
type intervalSchedule struct {
	first    time.Time
	interval time.Duration
}

func repeatingAfter(initialDelay, interval time.Duration) intervalSchedule {
	return intervalSchedule{
		first:    time.Now().Add(initialDelay),
		interval: interval,
	}
}

// Next implements cron.Schedule
func (s intervalSchedule) Next(t time.Time) time.Time {
	if t.Before(s.first) {
		return s.first
	}
	elapsed := t.Sub(s.first)
	return s.first.Add(s.interval * (elapsed/s.interval + 1))
}

// Compile-time checks: both schedules satisfy cron.Schedule
var (
	_ cron.Schedule = onceSchedule{}
	_ cron.Schedule = intervalSchedule{}
)
