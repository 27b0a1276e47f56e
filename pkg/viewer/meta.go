package viewer

import (
	"fmt"
	"strconv"
)

var majorKeys = [15]string{"Cb", "Gb", "Db", "Ab", "Eb", "Bb", "F", "C", "G", "D", "A", "E", "B", "F#", "C#"}
var minorKeys = [15]string{"Ab", "Eb", "Bb", "F", "C", "G", "D", "A", "E", "B", "F#", "C#", "G#", "D#", "A#"}

var smpteRates = [4]string{"24 fps", "25 fps", "29.97 fps", "30 fps"}

func metaLabels(metaType uint8, p []byte) (string, string) {
	if metaType >= MetaText && metaType <= 0x0F {
		return sanitize(p), ""
	}

	switch metaType {
	case MetaSequenceNumber:
		if len(p) >= 2 {
			return strconv.Itoa(int(p[0])<<8 | int(p[1])), ""
		}
	case MetaChannelPrefix, MetaPort:
		if len(p) >= 1 {
			return strconv.Itoa(int(p[0])), ""
		}
	case MetaEndOfTrack:
		return "", ""
	case MetaTempo:
		if len(p) >= 3 {
			usPerQuarter := uint32(p[0])<<16 | uint32(p[1])<<8 | uint32(p[2])
			if usPerQuarter == 0 {
				return "", "0 us/qn"
			}
			bpm := 60000000.0 / float64(usPerQuarter)
			return fmt.Sprintf("%.2f BPM", bpm), fmt.Sprintf("%d us/qn", usPerQuarter)
		}
	case MetaSMPTEOffset:
		if len(p) >= 5 {
			return fmt.Sprintf("%02d:%02d:%02d:%02d.%02d", p[0]&0x1F, p[1], p[2], p[3], p[4]),
				smpteRates[(p[0]>>5)&0x03]
		}
	case MetaTimeSignature:
		if len(p) >= 4 {
			denom := "2^" + strconv.Itoa(int(p[1]))
			if p[1] < 16 {
				denom = strconv.Itoa(1 << p[1])
			}
			return fmt.Sprintf("%d/%s", p[0], denom), fmt.Sprintf("%d clk, %d 32nd", p[2], p[3])
		}
	case MetaKeySignature:
		if len(p) >= 2 {
			return keySignature(int8(p[0]), p[1])
		}
	case MetaSequencerSpecific:
		name, _ := ManufacturerName(p)
		return name, byteCount(p)
	default:
		return "", byteCount(p)
	}
	return "", byteCount(p)
}

func keySignature(sf int8, minor uint8) (string, string) {
	accidentals := accidentalCount(sf)
	if sf < -7 || sf > 7 || minor > 1 {
		return strconv.Itoa(int(sf)) + " " + strconv.Itoa(int(minor)), accidentals
	}
	if minor == 1 {
		return minorKeys[sf+7] + " minor", accidentals
	}
	return majorKeys[sf+7] + " major", accidentals
}

func accidentalCount(sf int8) string {
	switch {
	case sf == 0:
		return "no accidentals"
	case sf == 1:
		return "1 sharp"
	case sf == -1:
		return "1 flat"
	case sf > 0:
		return fmt.Sprintf("%d sharps", sf)
	default:
		return fmt.Sprintf("%d flats", -int(sf))
	}
}

func byteCount(p []byte) string {
	if len(p) == 0 {
		return ""
	}
	return pluralBytes(len(p))
}

func pluralBytes(n int) string {
	if n == 1 {
		return "1 byte"
	}
	return fmt.Sprintf("%d bytes", n)
}
