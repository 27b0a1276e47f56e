package viewer

import (
	"fmt"
	"strconv"
)

// DrumSuffix marks a channel label that belongs to a percussion channel
const DrumSuffix = " (drum)"

// Formatter renders events to DisplayRecords. The zero value is not ready for
// use; create one with NewFormatter.
type Formatter struct {
	channelBase int
	noteNames   bool
	maxLen      int
}

// Option configures a Formatter
type Option func(*Formatter)

// WithChannelBase sets whether channels are shown zero-based (0) or one-based (1)
func WithChannelBase(base int) Option {
	return func(f *Formatter) {
		if base == 0 || base == 1 {
			f.channelBase = base
		}
	}
}

// WithNoteNames toggles pitch and instrument names next to note, program and controller numbers
func WithNoteNames(on bool) Option {
	return func(f *Formatter) {
		f.noteNames = on
	}
}

// WithMaxLen sets the maximum field length. Values below 8 are raised to 8.
func WithMaxLen(n int) Option {
	return func(f *Formatter) {
		if n < 8 {
			n = 8
		}
		f.maxLen = n
	}
}

// NewFormatter creates a Formatter with zero-based channels, note names on and
// MaxStrLen field length, then applies opts
func NewFormatter(opts ...Option) *Formatter {
	f := &Formatter{
		channelBase: 0,
		noteNames:   true,
		maxLen:      MaxStrLen,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// MaxLen returns the field length limit of f
func (f *Formatter) MaxLen() int {
	return f.maxLen
}

var defaultFormatter = NewFormatter()

// Format renders ev with the default formatter
func Format(ev RawEvent, drums DrumChannels) DisplayRecord {
	return defaultFormatter.Format(ev, drums)
}

// Format decodes and renders a single event
func (f *Formatter) Format(ev RawEvent, drums DrumChannels) DisplayRecord {
	return f.Render(Decode(ev, drums))
}

// Render produces the text fields of a decoded event
func (f *Formatter) Render(e Event) DisplayRecord {
	hex, truncated := HexDump(e.Bytes, f.maxLen)
	d1, d2 := f.dataLabels(e)
	return DisplayRecord{
		Track:     f.clip(strconv.Itoa(e.Track)),
		Time:      f.clip(strconv.FormatUint(e.Time, 10)),
		TotalTime: e.Time,
		DeltaTime: f.clip(strconv.FormatUint(uint64(e.Delta), 10)),
		Channel:   f.clip(f.channelLabel(e)),
		Status:    f.clip(statusLabel(e)),
		Data1:     f.clip(d1),
		Data2:     f.clip(d2),
		Length:    f.clip(strconv.Itoa(e.Length)),
		Hex:       hex,
		Truncated: truncated,
	}
}

func (f *Formatter) clip(s string) string {
	return truncate(s, f.maxLen)
}

func (f *Formatter) channelLabel(e Event) string {
	if e.Channel < 0 {
		return ""
	}
	label := strconv.Itoa(e.Channel + f.channelBase)
	if e.Drum {
		label += DrumSuffix
	}
	return label
}

func statusLabel(e Event) string {
	switch e.Kind {
	case KindMeta:
		if !e.HasMetaType {
			return "Meta"
		}
		return "Meta: " + MetaName(e.MetaType)
	case KindSystemCommon, KindSystemRealTime:
		if name, ok := systemNames[e.Status]; ok {
			return name
		}
		return fmt.Sprintf("Undefined 0x%02X", e.Status)
	case KindUnknown:
		return fmt.Sprintf("Unknown 0x%02X", e.Status)
	default:
		return e.Kind.String()
	}
}

func (f *Formatter) dataLabels(e Event) (string, string) {
	switch e.Kind {
	case KindNoteOff, KindNoteOn, KindPolyPressure:
		return f.labelAt(e, 0, f.noteLabel(e.Drum)), rawAt(e.Data, 1)
	case KindControlChange:
		return f.labelAt(e, 0, ControllerName), rawAt(e.Data, 1)
	case KindProgramChange:
		if e.Drum {
			return f.labelAt(e, 0, DrumKitName), ""
		}
		return f.labelAt(e, 0, ProgramName), ""
	case KindChannelPressure:
		return rawAt(e.Data, 0), ""
	case KindPitchBend:
		return pitchBendLabels(e.Data)
	case KindSysEx, KindSysExEscape:
		return sysexLabels(e)
	case KindMeta:
		return metaLabels(e.MetaType, e.Payload)
	case KindSystemCommon:
		if e.Status == 0xF2 && len(e.Data) == 2 {
			return strconv.Itoa(int(e.Data[0]) | int(e.Data[1])<<7), ""
		}
		return rawAt(e.Data, 0), rawAt(e.Data, 1)
	case KindSystemRealTime:
		return "", ""
	default:
		return rawAt(e.Data, 0), rawAt(e.Data, 1)
	}
}

// labelAt renders data byte i as "<n> <name>" when names are enabled and a
// name is known for in-range values, else just "<n>"
func (f *Formatter) labelAt(e Event, i int, name func(uint8) string) string {
	if i >= len(e.Data) {
		return ""
	}
	v := e.Data[i]
	s := strconv.Itoa(int(v))
	if !f.noteNames || v > 0x7F {
		return s
	}
	if n := name(v); n != "" {
		return s + " " + n
	}
	return s
}

func (f *Formatter) noteLabel(drum bool) func(uint8) string {
	if drum {
		return DrumName
	}
	return NoteName
}

func rawAt(data []uint8, i int) string {
	if i >= len(data) {
		return ""
	}
	return strconv.Itoa(int(data[i]))
}

func pitchBendLabels(data []uint8) (string, string) {
	if len(data) < 2 {
		return rawAt(data, 0), ""
	}
	if data[0] > 0x7F || data[1] > 0x7F {
		return rawAt(data, 0), rawAt(data, 1)
	}
	value := int(data[0]) | int(data[1])<<7
	return strconv.Itoa(value), fmt.Sprintf("%+d", value-0x2000)
}

func sysexLabels(e Event) (string, string) {
	size := pluralBytes(len(e.Payload))
	if len(e.Payload) == 0 {
		return "", size
	}
	if e.Kind == KindSysExEscape {
		return "", size
	}
	name, _ := ManufacturerName(e.Payload)
	return name, size
}
