package loader

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"gitlab.com/gomidi/midi/v2/smf"
)

// parseMIDI reads a Standard MIDI File and flattens its tracks into raw events
func parseMIDI(data []byte) (*File, error) {
	// RMID files wrap the SMF in a RIFF container
	if i := bytes.Index(data, []byte("MThd")); i > 0 {
		data = data[i:]
	}

	s, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse MIDI: %w", err)
	}

	f := &File{
		TrackCount: len(s.Tracks),
		TrackNames: make([]string, len(s.Tracks)),
	}

	// MThd, length, then the 16-bit format field
	if len(data) >= 10 {
		f.SMFFormat = binary.BigEndian.Uint16(data[8:10])
	}

	switch tf := s.TimeFormat.(type) {
	case smf.MetricTicks:
		f.TicksPerQuarter = tf.Resolution()
		f.TimeFormat = fmt.Sprintf("%d ticks per quarter note", tf.Resolution())
	default:
		f.TimeFormat = fmt.Sprint(tf)
	}

	for i, track := range s.Tracks {
		var abs uint64
		for _, ev := range track {
			abs += uint64(ev.Delta)
			msg := ev.Message

			var bpm float64
			if f.Tempo == 0 && msg.GetMetaTempo(&bpm) {
				f.Tempo = bpm
			}
			var name string
			if f.TrackNames[i] == "" && msg.GetMetaTrackName(&name) {
				f.TrackNames[i] = name
			}

			raw := make([]byte, len(msg))
			copy(raw, msg)
			f.Events = append(f.Events, NewRawEvent(i, ev.Delta, abs, raw))
		}
	}

	return f, nil
}
