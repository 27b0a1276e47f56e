package loader

import (
	"errors"
	"fmt"
)

// SysEx constants
const (
	SysExStart = 0xF0
	SysExEnd   = 0xF7
)

// ValidateSyx checks that data is a sequence of complete F0 ... F7 messages
// with 7-bit data bytes in between
func ValidateSyx(data []byte) error {
	_, err := SplitSyx(data)
	return err
}

// SplitSyx splits a .syx dump into its individual SysEx messages
func SplitSyx(data []byte) ([][]byte, error) {
	if len(data) < 2 {
		return nil, errors.New("syx data too short")
	}

	var msgs [][]byte
	start := -1
	for i, b := range data {
		switch {
		case b == SysExStart:
			if start >= 0 {
				return nil, fmt.Errorf("invalid SysEx: unterminated message at position %d", start)
			}
			start = i
		case b == SysExEnd:
			if start < 0 {
				return nil, fmt.Errorf("invalid SysEx: end byte without start at position %d", i)
			}
			msgs = append(msgs, data[start:i+1])
			start = -1
		case start < 0:
			return nil, fmt.Errorf("invalid SysEx: expected start byte 0x%02X at position %d, got 0x%02X", SysExStart, i, b)
		case b > 0x7F:
			return nil, fmt.Errorf("invalid SysEx: byte at position %d is > 127 (0x%02X)", i, b)
		}
	}
	if start >= 0 {
		return nil, fmt.Errorf("invalid SysEx: expected end byte 0x%02X for message at position %d", SysExEnd, start)
	}
	return msgs, nil
}

// parseSyx turns each message of a SysEx dump into an event on track 0
func parseSyx(data []byte) (*File, error) {
	msgs, err := SplitSyx(data)
	if err != nil {
		return nil, err
	}

	f := &File{
		TimeFormat: "none",
		TrackCount: 1,
		TrackNames: []string{"SysEx"},
	}
	for _, msg := range msgs {
		raw := make([]byte, len(msg))
		copy(raw, msg)
		f.Events = append(f.Events, NewRawEvent(0, 0, 0, raw))
	}
	return f, nil
}
