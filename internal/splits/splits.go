// Package splits turns a split specifier (preset window, custom range, or
// situational filter) into a predicate over game entries. All date
// comparison is by civil day.
package splits

import (
	"errors"
	"fmt"
	"time"

	"github.com/comcgovern/go-milb-metrics/internal/model"
)

// ErrInvalidRange is returned for a custom range whose start is after its
// end. Callers surface it to the user; it is never silently corrected.
var ErrInvalidRange = errors.New("split range start is after end")

// ErrDataUnavailable is returned by Apply when a situational split keys on
// a field that no entry in the data set carries. It distinguishes "no such
// data collected" from "no qualifying games".
var ErrDataUnavailable = errors.New("split data not collected for this player")

// Kind names a supported split.
type Kind string

const (
	Season    Kind = "season"
	Today     Kind = "today"
	Yesterday Kind = "yesterday"
	Last7     Kind = "last7"
	Last14    Kind = "last14"
	Last30    Kind = "last30"
	Custom    Kind = "custom"
	Home      Kind = "home"
	Away      Kind = "away"
	VsLeft    Kind = "vsLeft"
	VsRight   Kind = "vsRight"
)

// Spec is a split specifier. Start and End are only read for Custom.
type Spec struct {
	Kind  Kind
	Start time.Time
	End   time.Time
}

// Predicate tests a single game entry.
type Predicate func(model.GameEntry) bool

// Resolve builds the predicate for spec relative to ref. Custom ranges
// with start after end fail with ErrInvalidRange; unknown kinds are a
// plain error.
func Resolve(spec Spec, ref time.Time) (Predicate, error) {
	ref = model.Day(ref)

	switch spec.Kind {
	case Season, "":
		return func(model.GameEntry) bool { return true }, nil

	case Today:
		return onDay(ref), nil

	case Yesterday:
		return onDay(ref.AddDate(0, 0, -1)), nil

	case Last7:
		return window(ref, 7), nil
	case Last14:
		return window(ref, 14), nil
	case Last30:
		return window(ref, 30), nil

	case Custom:
		start, end := model.Day(spec.Start), model.Day(spec.End)
		if start.After(end) {
			return nil, fmt.Errorf("%w: %s > %s",
				ErrInvalidRange, start.Format("2006-01-02"), end.Format("2006-01-02"))
		}
		return func(g model.GameEntry) bool {
			d := model.Day(g.Date)
			return !d.Before(start) && !d.After(end)
		}, nil

	case Home:
		return func(g model.GameEntry) bool { return g.Home != nil && *g.Home }, nil
	case Away:
		return func(g model.GameEntry) bool { return g.Home != nil && !*g.Home }, nil
	case VsLeft:
		return func(g model.GameEntry) bool { return g.OpponentHand == "L" }, nil
	case VsRight:
		return func(g model.GameEntry) bool { return g.OpponentHand == "R" }, nil

	default:
		return nil, fmt.Errorf("unknown split %q", spec.Kind)
	}
}

// Apply filters entries through the resolved predicate. For situational
// splits it first checks that the discriminating field exists anywhere in
// the data set and returns ErrDataUnavailable when it does not, so an
// empty result always means "no qualifying games".
func Apply(spec Spec, ref time.Time, entries []model.GameEntry) ([]model.GameEntry, error) {
	pred, err := Resolve(spec, ref)
	if err != nil {
		return nil, err
	}

	switch spec.Kind {
	case Home, Away:
		if !anyEntry(entries, func(g model.GameEntry) bool { return g.Home != nil }) {
			return nil, fmt.Errorf("home/away: %w", ErrDataUnavailable)
		}
	case VsLeft, VsRight:
		if !anyEntry(entries, func(g model.GameEntry) bool { return g.OpponentHand != "" }) {
			return nil, fmt.Errorf("handedness: %w", ErrDataUnavailable)
		}
	}

	var out []model.GameEntry
	for _, g := range entries {
		if pred(g) {
			out = append(out, g)
		}
	}
	return out, nil
}

// onDay matches entries on exactly the given civil day.
func onDay(day time.Time) Predicate {
	return func(g model.GameEntry) bool {
		return model.SameDay(g.Date, day)
	}
}

// window matches an inclusive span of n calendar days ending at ref, so
// "last 7" covers ref and the 6 days before it.
func window(ref time.Time, n int) Predicate {
	start := ref.AddDate(0, 0, -(n - 1))
	return func(g model.GameEntry) bool {
		d := model.Day(g.Date)
		return !d.Before(start) && !d.After(ref)
	}
}

func anyEntry(entries []model.GameEntry, f func(model.GameEntry) bool) bool {
	for _, g := range entries {
		if f(g) {
			return true
		}
	}
	return false
}
