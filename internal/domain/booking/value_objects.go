package booking

import (
	"errors"
	"time"
)

// TimeRange is the requested borrow window. Second precision; the range is
// inclusive on both ends for CURRENT classification.
type TimeRange struct {
	start time.Time
	end   time.Time
}

// NewTimeRange validates the window against "now" supplied by the caller:
// start must be strictly before end and must not already be in the past.
func NewTimeRange(start, end, now time.Time) (TimeRange, error) {
	if start.IsZero() || end.IsZero() {
		return TimeRange{}, ErrWrongDates
	}
	if !start.Before(end) {
		return TimeRange{}, ErrWrongDates
	}
	if start.Before(now) {
		return TimeRange{}, ErrWrongDates
	}
	return TimeRange{start: start, end: end}, nil
}

// ReconstructTimeRange rebuilds a stored range without creation-time checks.
func ReconstructTimeRange(start, end time.Time) (TimeRange, error) {
	if !start.Before(end) {
		return TimeRange{}, errors.New("stored range has start >= end")
	}
	return TimeRange{start: start, end: end}, nil
}

func (tr TimeRange) Start() time.Time {
	return tr.start
}

func (tr TimeRange) End() time.Time {
	return tr.end
}

func (tr TimeRange) Duration() time.Duration {
	return tr.end.Sub(tr.start)
}

// Contains reports whether the instant falls inside the window, both ends
// inclusive. This is the CURRENT bucket predicate.
func (tr TimeRange) Contains(now time.Time) bool {
	return !tr.start.After(now) && !tr.end.Before(now)
}

func (tr TimeRange) StartsAfter(now time.Time) bool {
	return tr.start.After(now)
}

func (tr TimeRange) EndedBefore(now time.Time) bool {
	return tr.end.Before(now)
}
