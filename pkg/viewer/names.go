package viewer

import (
	"fmt"
	"strconv"
)

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName returns the pitch name of a note number, with middle C (60) as C4
func NoteName(note uint8) string {
	octave := int(note)/12 - 1
	return noteNames[note%12] + strconv.Itoa(octave)
}

// General MIDI percussion key map, keys 35-81
// Reference: https://computermusicresource.com/GM.Percussion.KeyMap.html
var gmDrumNames = map[uint8]string{
	35: "Acoustic Bass Drum",
	36: "Bass Drum 1",
	37: "Side Stick",
	38: "Acoustic Snare",
	39: "Hand Clap",
	40: "Electric Snare",
	41: "Low Floor Tom",
	42: "Closed Hi Hat",
	43: "High Floor Tom",
	44: "Pedal Hi-Hat",
	45: "Low Tom",
	46: "Open Hi-Hat",
	47: "Low-Mid Tom",
	48: "Hi Mid Tom",
	49: "Crash Cymbal 1",
	50: "High Tom",
	51: "Ride Cymbal 1",
	52: "Chinese Cymbal",
	53: "Ride Bell",
	54: "Tambourine",
	55: "Splash Cymbal",
	56: "Cowbell",
	57: "Crash Cymbal 2",
	58: "Vibraslap",
	59: "Ride Cymbal 2",
	60: "Hi Bongo",
	61: "Low Bongo",
	62: "Mute Hi Conga",
	63: "Open Hi Conga",
	64: "Low Conga",
	65: "High Timbale",
	66: "Low Timbale",
	67: "High Agogo",
	68: "Low Agogo",
	69: "Cabasa",
	70: "Maracas",
	71: "Short Whistle",
	72: "Long Whistle",
	73: "Short Guiro",
	74: "Long Guiro",
	75: "Claves",
	76: "Hi Wood Block",
	77: "Low Wood Block",
	78: "Mute Cuica",
	79: "Open Cuica",
	80: "Mute Triangle",
	81: "Open Triangle",
}

// DrumName returns the GM percussion name for a key, or "" if the key is not mapped
func DrumName(key uint8) string {
	return gmDrumNames[key]
}

// https://en.wikipedia.org/wiki/General_MIDI#Program_change_events
var gmInstruments = [128]string{
	"Acoustic Grand Piano", "Bright Acoustic Piano", "Electric Grand Piano", "Honky-tonk Piano",
	"Electric Piano 1", "Electric Piano 2", "Harpsichord", "Clavi",
	"Celesta", "Glockenspiel", "Music Box", "Vibraphone",
	"Marimba", "Xylophone", "Tubular Bells", "Dulcimer",
	"Drawbar Organ", "Percussive Organ", "Rock Organ", "Church Organ",
	"Reed Organ", "Accordion", "Harmonica", "Tango Accordion",
	"Acoustic Guitar (nylon)", "Acoustic Guitar (steel)", "Electric Guitar (jazz)", "Electric Guitar (clean)",
	"Electric Guitar (muted)", "Overdriven Guitar", "Distortion Guitar", "Guitar Harmonics",
	"Acoustic Bass", "Electric Bass (finger)", "Electric Bass (pick)", "Fretless Bass",
	"Slap Bass 1", "Slap Bass 2", "Synth Bass 1", "Synth Bass 2",
	"Violin", "Viola", "Cello", "Contrabass",
	"Tremolo Strings", "Pizzicato Strings", "Orchestral Harp", "Timpani",
	"String Ensemble 1", "String Ensemble 2", "Synth Strings 1", "Synth Strings 2",
	"Choir Aahs", "Voice Oohs", "Synth Voice", "Orchestra Hit",
	"Trumpet", "Trombone", "Tuba", "Muted Trumpet",
	"French Horn", "Brass Section", "Synth Brass 1", "Synth Brass 2",
	"Soprano Sax", "Alto Sax", "Tenor Sax", "Baritone Sax",
	"Oboe", "English Horn", "Bassoon", "Clarinet",
	"Piccolo", "Flute", "Recorder", "Pan Flute",
	"Blown Bottle", "Shakuhachi", "Whistle", "Ocarina",
	"Lead 1 (square)", "Lead 2 (sawtooth)", "Lead 3 (calliope)", "Lead 4 (chiff)",
	"Lead 5 (charang)", "Lead 6 (voice)", "Lead 7 (fifths)", "Lead 8 (bass + lead)",
	"Pad 1 (new age)", "Pad 2 (warm)", "Pad 3 (polysynth)", "Pad 4 (choir)",
	"Pad 5 (bowed)", "Pad 6 (metallic)", "Pad 7 (halo)", "Pad 8 (sweep)",
	"FX 1 (rain)", "FX 2 (soundtrack)", "FX 3 (crystal)", "FX 4 (atmosphere)",
	"FX 5 (brightness)", "FX 6 (goblins)", "FX 7 (echoes)", "FX 8 (sci-fi)",
	"Sitar", "Banjo", "Shamisen", "Koto",
	"Kalimba", "Bag pipe", "Fiddle", "Shanai",
	"Tinkle Bell", "Agogo", "Steel Drums", "Woodblock",
	"Taiko Drum", "Melodic Tom", "Synth Drum", "Reverse Cymbal",
	"Guitar Fret Noise", "Breath Noise", "Seashore", "Bird Tweet",
	"Telephone Ring", "Helicopter", "Applause", "Gunshot",
}

// ProgramName returns the GM instrument name for a program number
func ProgramName(program uint8) string {
	if int(program) < len(gmInstruments) {
		return gmInstruments[program]
	}
	return ""
}

// GS drum kits, selected by program change on a percussion channel
var drumKits = map[uint8]string{
	0:   "Standard Kit",
	8:   "Room Kit",
	16:  "Power Kit",
	24:  "Electronic Kit",
	25:  "TR-808 Kit",
	32:  "Jazz Kit",
	40:  "Brush Kit",
	48:  "Orchestra Kit",
	56:  "SFX Kit",
	127: "CM-64/32 Kit",
}

// DrumKitName returns the GS drum kit name for a program number, or ""
func DrumKitName(program uint8) string {
	return drumKits[program]
}

var controllerNames = map[uint8]string{
	0:   "Bank Select",
	1:   "Modulation",
	2:   "Breath",
	4:   "Foot Pedal",
	5:   "Portamento Time",
	6:   "Data Entry",
	7:   "Volume",
	8:   "Balance",
	10:  "Pan",
	11:  "Expression",
	12:  "Effect 1",
	13:  "Effect 2",
	32:  "Bank Select LSB",
	33:  "Modulation LSB",
	38:  "Data Entry LSB",
	39:  "Volume LSB",
	42:  "Pan LSB",
	43:  "Expression LSB",
	64:  "Sustain",
	65:  "Portamento",
	66:  "Sostenuto",
	67:  "Soft Pedal",
	68:  "Legato",
	69:  "Hold 2",
	70:  "Sound Variation",
	71:  "Resonance",
	72:  "Release Time",
	73:  "Attack Time",
	74:  "Cutoff",
	75:  "Decay Time",
	76:  "Vibrato Rate",
	77:  "Vibrato Depth",
	78:  "Vibrato Delay",
	84:  "Portamento Control",
	91:  "Reverb",
	92:  "Tremolo",
	93:  "Chorus",
	94:  "Detune",
	95:  "Phaser",
	96:  "Data Increment",
	97:  "Data Decrement",
	98:  "NRPN LSB",
	99:  "NRPN MSB",
	100: "RPN LSB",
	101: "RPN MSB",
	120: "All Sound Off",
	121: "Reset All Controllers",
	122: "Local Control",
	123: "All Notes Off",
	124: "Omni Off",
	125: "Omni On",
	126: "Mono On",
	127: "Poly On",
}

// ControllerName returns the conventional name of a controller number, or ""
func ControllerName(cc uint8) string {
	return controllerNames[cc]
}

// Meta event types
const (
	MetaSequenceNumber    = 0x00
	MetaText              = 0x01
	MetaCopyright         = 0x02
	MetaTrackName         = 0x03
	MetaInstrumentName    = 0x04
	MetaLyric             = 0x05
	MetaMarker            = 0x06
	MetaCuePoint          = 0x07
	MetaProgramName       = 0x08
	MetaDeviceName        = 0x09
	MetaChannelPrefix     = 0x20
	MetaPort              = 0x21
	MetaEndOfTrack        = 0x2F
	MetaTempo             = 0x51
	MetaSMPTEOffset       = 0x54
	MetaTimeSignature     = 0x58
	MetaKeySignature      = 0x59
	MetaSequencerSpecific = 0x7F
)

var metaNames = map[uint8]string{
	MetaSequenceNumber:    "Sequence Number",
	MetaText:              "Text",
	MetaCopyright:         "Copyright",
	MetaTrackName:         "Track Name",
	MetaInstrumentName:    "Instrument Name",
	MetaLyric:             "Lyric",
	MetaMarker:            "Marker",
	MetaCuePoint:          "Cue Point",
	MetaProgramName:       "Program Name",
	MetaDeviceName:        "Device Name",
	MetaChannelPrefix:     "Channel Prefix",
	MetaPort:              "Port",
	MetaEndOfTrack:        "End of Track",
	MetaTempo:             "Tempo",
	MetaSMPTEOffset:       "SMPTE Offset",
	MetaTimeSignature:     "Time Signature",
	MetaKeySignature:      "Key Signature",
	MetaSequencerSpecific: "Sequencer Specific",
}

// MetaName returns the name of a meta event type, or its hex value if unknown
func MetaName(metaType uint8) string {
	if name, ok := metaNames[metaType]; ok {
		return name
	}
	return fmt.Sprintf("0x%02X", metaType)
}

var systemNames = map[uint8]string{
	0xF1: "MTC Quarter Frame",
	0xF2: "Song Position",
	0xF3: "Song Select",
	0xF6: "Tune Request",
	0xF8: "Timing Clock",
	0xFA: "Start",
	0xFB: "Continue",
	0xFC: "Stop",
	0xFE: "Active Sensing",
}

// Single byte manufacturer IDs; 0x00 introduces a three byte ID
var manufacturers = map[uint8]string{
	0x01: "Sequential",
	0x04: "Moog",
	0x06: "Lexicon",
	0x07: "Kurzweil",
	0x0F: "Ensoniq",
	0x10: "Oberheim",
	0x18: "E-mu",
	0x1A: "ART",
	0x24: "Hohner",
	0x2F: "Elka",
	0x40: "Kawai",
	0x41: "Roland",
	0x42: "Korg",
	0x43: "Yamaha",
	0x44: "Casio",
	0x47: "Akai",
	0x7D: "Non-Commercial",
	0x7E: "Universal Non-RT",
	0x7F: "Universal RT",
}

var extendedManufacturers = map[[2]uint8]string{
	{0x00, 0x0E}: "Alesis",
	{0x00, 0x15}: "KAT",
	{0x20, 0x29}: "Novation",
	{0x20, 0x32}: "Behringer",
	{0x20, 0x33}: "Access",
	{0x20, 0x3C}: "Elektron",
	{0x20, 0x6B}: "Arturia",
	{0x20, 0x76}: "Teenage Engineering",
	{0x21, 0x09}: "Native Instruments",
}

// ManufacturerName names the manufacturer ID at the start of a SysEx payload.
// It returns the name and the number of ID bytes consumed (0 if the payload is empty).
func ManufacturerName(payload []byte) (string, int) {
	if len(payload) == 0 {
		return "", 0
	}
	if payload[0] != 0x00 {
		if name, ok := manufacturers[payload[0]]; ok {
			return name, 1
		}
		return fmt.Sprintf("ID %02X", payload[0]), 1
	}
	if len(payload) < 3 {
		return fmt.Sprintf("ID % X", payload), len(payload)
	}
	if name, ok := extendedManufacturers[[2]uint8{payload[1], payload[2]}]; ok {
		return name, 3
	}
	return fmt.Sprintf("ID %02X %02X %02X", payload[0], payload[1], payload[2]), 3
}
