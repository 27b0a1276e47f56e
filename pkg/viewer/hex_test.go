package viewer

import (
	"bytes"
	"strings"
	"testing"
)

func TestHexDump(t *testing.T) {
	tests := []struct {
		name      string
		data      []byte
		max       int
		want      string
		truncated bool
	}{
		{"empty", nil, 50, "", false},
		{"single", []byte{0x0A}, 50, "0A", false},
		{"note on", []byte{0x91, 0x3C, 0x64}, 50, "91 3C 64", false},
		{"exact fit", bytes.Repeat([]byte{0xAB}, 17), 50, strings.TrimSpace(strings.Repeat("AB ", 17)), false},
		{"one over", bytes.Repeat([]byte{0xAB}, 18), 50, strings.Repeat("AB ", 15) + "...", true},
		{"narrow", []byte{1, 2, 3, 4}, 8, "01 ...", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := HexDump(tt.data, tt.max)
			if got != tt.want {
				t.Errorf("HexDump() = %q, want %q", got, tt.want)
			}
			if truncated != tt.truncated {
				t.Errorf("HexDump() truncated = %v, want %v", truncated, tt.truncated)
			}
			if len(got) > tt.max {
				t.Errorf("HexDump() length %d exceeds %d", len(got), tt.max)
			}
		})
	}
}

func TestHexRoundTrip(t *testing.T) {
	inputs := [][]byte{
		{0x91, 0x3C, 0x64},
		{0xFF, 0x51, 0x03, 0x07, 0xA1, 0x20},
		{0xF0, 0x00, 0x20, 0x32, 0xF7},
		{0x00},
	}

	for _, in := range inputs {
		dump, truncated := HexDump(in, MaxStrLen)
		if truncated {
			t.Fatalf("HexDump(% X) unexpectedly truncated", in)
		}
		out, err := ParseHex(dump)
		if err != nil {
			t.Fatalf("ParseHex(%q) error = %v", dump, err)
		}
		if !bytes.Equal(out, in) {
			t.Errorf("ParseHex(HexDump(% X)) = % X", in, out)
		}
	}
}

func TestParseHex(t *testing.T) {
	got, err := ParseHex("90,3c, 7f")
	if err != nil {
		t.Fatalf("ParseHex() error = %v", err)
	}
	if !bytes.Equal(got, []byte{0x90, 0x3C, 0x7F}) {
		t.Errorf("ParseHex() = % X", got)
	}

	for _, bad := range []string{"9", "ZZ", "90 3C ..."} {
		if _, err := ParseHex(bad); err == nil {
			t.Errorf("ParseHex(%q) expected error", bad)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"ÄÖÜäöüßÄÖÜ", 10, "ÄÖÜäöüßÄÖÜ"},
		{"ÄÖÜäöüßÄÖÜx", 10, "ÄÖÜäöüß..."},
		{"abcdef", 2, "ab"},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
