package viewer

import (
	"cmp"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"
)

// batchSize is the number of events one worker formats at a time
const batchSize = 512

// FormatAll renders events with the default formatter
func FormatAll(events []RawEvent, drums DrumChannels) []DisplayRecord {
	return defaultFormatter.FormatAll(events, drums)
}

// FormatAll renders events concurrently. The result has the same order as events.
func (f *Formatter) FormatAll(events []RawEvent, drums DrumChannels) []DisplayRecord {
	out := make([]DisplayRecord, len(events))
	if len(events) <= batchSize {
		for i, ev := range events {
			out[i] = f.Format(ev, drums)
		}
		return out
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for start := 0; start < len(events); start += batchSize {
		end := min(start+batchSize, len(events))
		g.Go(func() error {
			for i := start; i < end; i++ {
				out[i] = f.Format(events[i], drums)
			}
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// SortByTime orders records by absolute time, then by track, keeping the
// original order of events that share both
func SortByTime(records []DisplayRecord) {
	slices.SortStableFunc(records, func(a, b DisplayRecord) int {
		// Track labels are decimal, so shorter means smaller
		return cmp.Or(
			cmp.Compare(a.TotalTime, b.TotalTime),
			cmp.Compare(len(a.Track), len(b.Track)),
			cmp.Compare(a.Track, b.Track),
		)
	})
}

// SortEvents orders raw events by absolute time, then by track
func SortEvents(events []RawEvent) {
	slices.SortStableFunc(events, func(a, b RawEvent) int {
		return cmp.Or(cmp.Compare(a.AbsoluteTime, b.AbsoluteTime), cmp.Compare(a.Track, b.Track))
	})
}
