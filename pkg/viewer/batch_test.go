package viewer

import (
	"testing"
)

func TestFormatAllPreservesOrder(t *testing.T) {
	events := make([]RawEvent, 3000)
	for i := range events {
		ev := noteOn(uint8(i%16), uint8(i%128), 100)
		ev.Track = i % 4
		ev.AbsoluteTime = uint64(i)
		events[i] = ev
	}

	got := FormatAll(events, GMDrums)
	if len(got) != len(events) {
		t.Fatalf("FormatAll() returned %d records, want %d", len(got), len(events))
	}
	for i, rec := range got {
		if want := Format(events[i], GMDrums); rec != want {
			t.Fatalf("record %d = %+v, want %+v", i, rec, want)
		}
	}
}

func TestFormatAllEmpty(t *testing.T) {
	if got := FormatAll(nil, nil); len(got) != 0 {
		t.Errorf("FormatAll(nil) returned %d records", len(got))
	}
}

func TestSortByTime(t *testing.T) {
	records := []DisplayRecord{
		{Track: "10", TotalTime: 0, Status: "a"},
		{Track: "2", TotalTime: 480, Status: "b"},
		{Track: "1", TotalTime: 480, Status: "c"},
		{Track: "9", TotalTime: 0, Status: "d"},
		{Track: "1", TotalTime: 480, Status: "e"},
	}

	SortByTime(records)

	want := []string{"d", "a", "c", "e", "b"}
	for i, rec := range records {
		if rec.Status != want[i] {
			t.Errorf("records[%d].Status = %q, want %q", i, rec.Status, want[i])
		}
	}
}

func TestSortEvents(t *testing.T) {
	events := []RawEvent{
		{Track: 1, AbsoluteTime: 10, Status: 0x91},
		{Track: 0, AbsoluteTime: 10, Status: 0x90},
		{Track: 2, AbsoluteTime: 0, Status: 0x92},
	}

	SortEvents(events)

	want := []uint8{0x92, 0x90, 0x91}
	for i, ev := range events {
		if ev.Status != want[i] {
			t.Errorf("events[%d].Status = 0x%02X, want 0x%02X", i, ev.Status, want[i])
		}
	}
}
