package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/james-see/smfview/pkg/viewer"
	"github.com/sirupsen/logrus"
)

var (
	// ErrEmpty is returned for zero-length input
	ErrEmpty = errors.New("empty input")
	// ErrUnknownFormat is returned when neither the name nor the content identify the format
	ErrUnknownFormat = errors.New("cannot determine input format")
)

// File is a loaded MIDI or SysEx file, flattened into raw events in track order
type File struct {
	Name            string
	Format          Format
	Size            int
	SMFFormat       uint16 // SMF type 0, 1 or 2; 0 for SysEx dumps
	TimeFormat      string
	TicksPerQuarter uint16
	TrackCount      int
	TrackNames      []string
	Tempo           float64 // BPM of the first tempo meta event, 0 if none
	Events          []viewer.RawEvent
}

// Load reads a file from disk and parses it
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return Parse(filepath.Base(path), data)
}

// Parse decodes data, using name to detect the format when the content is ambiguous
func Parse(name string, data []byte) (*File, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}

	format := DetectFormatFromContent(data)
	if format == FormatUnknown {
		format = DetectFormat(name)
	}

	var (
		f   *File
		err error
	)
	switch format {
	case FormatMIDI:
		f, err = parseMIDI(data)
	case FormatSyx:
		f, err = parseSyx(data)
	default:
		return nil, fmt.Errorf("%s: %w", name, ErrUnknownFormat)
	}
	if err != nil {
		return nil, err
	}

	f.Name = name
	f.Format = format
	f.Size = len(data)

	logrus.WithFields(logrus.Fields{
		"file":   name,
		"format": format,
		"tracks": f.TrackCount,
		"events": len(f.Events),
	}).Debug("loaded file")

	return f, nil
}

// Track returns the events of track i, in file order
func (f *File) Track(i int) []viewer.RawEvent {
	var out []viewer.RawEvent
	for _, ev := range f.Events {
		if ev.Track == i {
			out = append(out, ev)
		}
	}
	return out
}

// Timeline returns a copy of all events ordered by absolute time across tracks
func (f *File) Timeline() []viewer.RawEvent {
	out := make([]viewer.RawEvent, len(f.Events))
	copy(out, f.Events)
	viewer.SortEvents(out)
	return out
}

// NewRawEvent splits a complete message into status and data bytes. RawBytes keeps msg.
func NewRawEvent(track int, delta uint32, abs uint64, msg []byte) viewer.RawEvent {
	ev := viewer.RawEvent{
		Track:        track,
		DeltaTime:    delta,
		AbsoluteTime: abs,
		RawBytes:     msg,
	}
	if len(msg) == 0 {
		return ev
	}
	ev.Status = msg[0]
	ev.DataLen = min(len(msg)-1, 2)
	if ev.DataLen > 0 {
		ev.Data1 = msg[1]
	}
	if ev.DataLen > 1 {
		ev.Data2 = msg[2]
	}
	return ev
}
