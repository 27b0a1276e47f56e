// Package viewer turns decoded Standard MIDI File events into display records
package viewer

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxStrLen is the maximum length, in characters, of any DisplayRecord field
const MaxStrLen = 50

// RawEvent is a single decoded SMF event as handed over by a parser
type RawEvent struct {
	Track        int    `json:"track"`
	DeltaTime    uint32 `json:"deltaTime"`
	AbsoluteTime uint64 `json:"absoluteTime"`
	Status       uint8  `json:"status"`
	Data1        uint8  `json:"data1"`
	Data2        uint8  `json:"data2"`
	DataLen      int    `json:"dataLen"` // Number of valid data bytes (0-2)
	// Complete message. SysEx is in wire form (F0 <data> F7) without the SMF
	// length prefix; meta events are FF <type> <len> <data>.
	RawBytes []byte `json:"rawBytes"`
}

// DrumChannels answers whether a channel (0-15) is a percussion channel
type DrumChannels interface {
	IsDrum(channel uint8) bool
}

// ChannelSet is a bit set of MIDI channels 0-15
type ChannelSet uint16

// GMDrums is the General MIDI percussion channel (channel 10, zero-based 9)
const GMDrums ChannelSet = 1 << 9

// NewChannelSet builds a set from the given channels, ignoring values above 15
func NewChannelSet(channels ...uint8) ChannelSet {
	var s ChannelSet
	for _, ch := range channels {
		if ch <= 0x0F {
			s |= 1 << ch
		}
	}
	return s
}

// ParseChannelSet parses a comma separated list of zero-based channels such as "9,10"
func ParseChannelSet(list string) (ChannelSet, error) {
	var s ChannelSet
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return 0, fmt.Errorf("invalid drum channel %q: %w", part, err)
		}
		if n < 0 || n > 15 {
			return 0, fmt.Errorf("drum channel %d out of range 0-15", n)
		}
		s |= 1 << uint(n)
	}
	return s, nil
}

// IsDrum implements DrumChannels
func (s ChannelSet) IsDrum(channel uint8) bool {
	return channel <= 0x0F && s&(1<<channel) != 0
}

// Channels returns the members of the set in ascending order
func (s ChannelSet) Channels() []uint8 {
	var out []uint8
	for ch := uint8(0); ch <= 0x0F; ch++ {
		if s.IsDrum(ch) {
			out = append(out, ch)
		}
	}
	return out
}

func (s ChannelSet) String() string {
	chs := s.Channels()
	parts := make([]string, len(chs))
	for i, ch := range chs {
		parts[i] = strconv.Itoa(int(ch))
	}
	return strings.Join(parts, ",")
}

// Kind is the category of a MIDI status byte
type Kind int

const (
	KindUnknown Kind = iota
	KindNoteOff
	KindNoteOn
	KindPolyPressure
	KindControlChange
	KindProgramChange
	KindChannelPressure
	KindPitchBend
	KindSysEx
	KindSysExEscape
	KindMeta
	KindSystemCommon
	KindSystemRealTime
)

var kindNames = [...]string{
	KindUnknown:         "Unknown",
	KindNoteOff:         "Note Off",
	KindNoteOn:          "Note On",
	KindPolyPressure:    "Poly Pressure",
	KindControlChange:   "Control Change",
	KindProgramChange:   "Program Change",
	KindChannelPressure: "Channel Pressure",
	KindPitchBend:       "Pitch Bend",
	KindSysEx:           "SysEx",
	KindSysExEscape:     "SysEx Escape",
	KindMeta:            "Meta",
	KindSystemCommon:    "System Common",
	KindSystemRealTime:  "System Real-Time",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

// IsChannelVoice reports whether the kind carries a channel in its status byte
func (k Kind) IsChannelVoice() bool {
	return k >= KindNoteOff && k <= KindPitchBend
}

// Classify maps a status byte to its category
func Classify(status uint8) Kind {
	switch {
	case status < 0x80:
		return KindUnknown
	case status < 0xF0:
		return KindNoteOff + Kind((status>>4)-0x8)
	case status == 0xF0:
		return KindSysEx
	case status == 0xF7:
		return KindSysExEscape
	case status == 0xFF:
		return KindMeta
	case status < 0xF8:
		return KindSystemCommon
	default:
		return KindSystemRealTime
	}
}

// Event is the typed form of a RawEvent, before any text is produced
type Event struct {
	Track    int
	Time     uint64
	Delta    uint32
	Status   uint8
	Kind     Kind
	Channel  int // -1 when the message has no channel
	Drum     bool
	MetaType uint8
	// HasMetaType is false for a meta event too short to carry its type
	HasMetaType bool
	Data        []uint8 // Data1/Data2 as present in the raw event
	Payload     []byte  // Meta or SysEx payload, without status, type or length
	Length      int
	Bytes       []byte
}

// DisplayRecord is the text form of an event, one table row
type DisplayRecord struct {
	Track     string `json:"track"`
	Time      string `json:"time"`
	TotalTime uint64 `json:"totalTime"`
	DeltaTime string `json:"deltaTime"`
	Channel   string `json:"channel"`
	Status    string `json:"status"`
	Data1     string `json:"data1"`
	Data2     string `json:"data2"`
	Length    string `json:"length"`
	Hex       string `json:"hex"`
	Truncated bool   `json:"truncated,omitempty"`
}

// Columns returns the record's fields in table column order
func (r DisplayRecord) Columns() []string {
	return []string{r.Track, r.Time, r.DeltaTime, r.Channel, r.Status, r.Data1, r.Data2, r.Length, r.Hex}
}

// ColumnTitles are the headers matching DisplayRecord.Columns
var ColumnTitles = []string{"Track", "Time", "Delta", "Channel", "Status", "Data 1", "Data 2", "Length", "Hex"}
