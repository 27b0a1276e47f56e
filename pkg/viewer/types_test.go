package viewer

import (
	"testing"
)

func TestChannelSet(t *testing.T) {
	s := NewChannelSet(9, 10, 16, 200)

	if !s.IsDrum(9) || !s.IsDrum(10) {
		t.Error("IsDrum() should report channels 9 and 10")
	}
	if s.IsDrum(0) || s.IsDrum(16) {
		t.Error("IsDrum() should not report channels 0 or 16")
	}
	if s.String() != "9,10" {
		t.Errorf("String() = %q, want %q", s.String(), "9,10")
	}
	if !GMDrums.IsDrum(9) {
		t.Error("GMDrums should contain channel 9")
	}
}

func TestParseChannelSet(t *testing.T) {
	tests := []struct {
		in      string
		want    ChannelSet
		wantErr bool
	}{
		{"", 0, false},
		{"9", GMDrums, false},
		{" 9, 10 ", NewChannelSet(9, 10), false},
		{"9,,15", NewChannelSet(9, 15), false},
		{"16", 0, true},
		{"-1", 0, true},
		{"drums", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseChannelSet(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseChannelSet(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseChannelSet(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNames(t *testing.T) {
	if got := NoteName(60); got != "C4" {
		t.Errorf("NoteName(60) = %q, want C4", got)
	}
	if got := NoteName(0); got != "C-1" {
		t.Errorf("NoteName(0) = %q, want C-1", got)
	}
	if got := NoteName(127); got != "G9" {
		t.Errorf("NoteName(127) = %q, want G9", got)
	}
	if got := DrumName(42); got != "Closed Hi Hat" {
		t.Errorf("DrumName(42) = %q", got)
	}
	if got := DrumName(20); got != "" {
		t.Errorf("DrumName(20) = %q, want empty", got)
	}
	if got := ProgramName(127); got != "Gunshot" {
		t.Errorf("ProgramName(127) = %q", got)
	}
	if got := ProgramName(200); got != "" {
		t.Errorf("ProgramName(200) = %q, want empty", got)
	}
	if got := MetaName(0x51); got != "Tempo" {
		t.Errorf("MetaName(0x51) = %q", got)
	}
	if got := MetaName(0x60); got != "0x60" {
		t.Errorf("MetaName(0x60) = %q", got)
	}
}

func TestManufacturerName(t *testing.T) {
	tests := []struct {
		payload []byte
		want    string
		size    int
	}{
		{nil, "", 0},
		{[]byte{0x43, 0x10}, "Yamaha", 1},
		{[]byte{0x55}, "ID 55", 1},
		{[]byte{0x00, 0x20, 0x32, 0x00}, "Behringer", 3},
		{[]byte{0x00, 0x20}, "ID 00 20", 2},
		{[]byte{0x00, 0x01, 0x02}, "ID 00 01 02", 3},
	}

	for _, tt := range tests {
		name, size := ManufacturerName(tt.payload)
		if name != tt.want || size != tt.size {
			t.Errorf("ManufacturerName(% X) = %q, %d, want %q, %d", tt.payload, name, size, tt.want, tt.size)
		}
	}
}

func TestKindString(t *testing.T) {
	if KindPitchBend.String() != "Pitch Bend" {
		t.Errorf("KindPitchBend.String() = %q", KindPitchBend.String())
	}
	if Kind(99).String() != "Unknown" {
		t.Errorf("Kind(99).String() = %q", Kind(99).String())
	}
	if KindMeta.IsChannelVoice() || !KindNoteOn.IsChannelVoice() {
		t.Error("IsChannelVoice() misclassified")
	}
}
