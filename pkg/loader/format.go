// Package loader reads MIDI and SysEx files into raw events for the viewer
package loader

import (
	"path/filepath"
	"strings"
)

// Format represents an input file format
type Format string

const (
	FormatMIDI    Format = "midi"
	FormatSyx     Format = "syx"
	FormatUnknown Format = "unknown"
)

// Extensions lists the file extensions the loader accepts
var Extensions = []string{".mid", ".midi", ".smf", ".kar", ".syx"}

// DetectFormat detects the format of a file based on its extension
func DetectFormat(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".mid", ".midi", ".smf", ".kar":
		return FormatMIDI
	case ".syx":
		return FormatSyx
	default:
		return FormatUnknown
	}
}

// DetectFormatFromContent detects format from file content
func DetectFormatFromContent(data []byte) Format {
	if len(data) >= 4 && string(data[:4]) == "MThd" {
		return FormatMIDI
	}

	// RIFF wrapped MIDI (RMID) keeps the MThd chunk inside
	if len(data) >= 20 && string(data[:4]) == "RIFF" && string(data[8:12]) == "RMID" {
		return FormatMIDI
	}

	if len(data) >= 2 && data[0] == SysExStart {
		return FormatSyx
	}

	return FormatUnknown
}

// GetSupportedFormats returns the input formats the loader understands
func GetSupportedFormats() []string {
	return []string{string(FormatMIDI), string(FormatSyx)}
}
