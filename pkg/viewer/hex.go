package viewer

import (
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const ellipsis = "..."

// HexDump renders b as space separated two-digit uppercase hex. If the result
// would be longer than max characters, only whole bytes that fit are kept and
// " ..." is appended; the second return value reports that case.
func HexDump(b []byte, max int) (string, bool) {
	if len(b) == 0 {
		return "", false
	}
	if 3*len(b)-1 <= max {
		return fmt.Sprintf("% X", b), false
	}
	keep := (max - len(" "+ellipsis) + 1) / 3
	if keep < 0 {
		keep = 0
	}
	if keep == 0 {
		return truncate(ellipsis, max), true
	}
	return fmt.Sprintf("% X", b[:keep]) + " " + ellipsis, true
}

// ParseHex decodes the output of HexDump. Spaces and commas are accepted as
// separators; a trailing "..." is rejected since the dump is incomplete.
func ParseHex(s string) ([]byte, error) {
	if strings.HasSuffix(strings.TrimSpace(s), ellipsis) {
		return nil, fmt.Errorf("hex dump %q is truncated", s)
	}
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	out := make([]byte, 0, len(fields))
	for _, f := range fields {
		if len(f)%2 != 0 {
			return nil, fmt.Errorf("invalid hex byte %q", f)
		}
		b, err := hex.DecodeString(f)
		if err != nil {
			return nil, fmt.Errorf("invalid hex byte %q: %w", f, err)
		}
		out = append(out, b...)
	}
	return out, nil
}

// truncate limits s to max runes, ending in "..." when cut
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	if max <= len(ellipsis) {
		return string([]rune(s)[:max])
	}
	return string([]rune(s)[:max-len(ellipsis)]) + ellipsis
}

// sanitize turns meta text into printable, valid UTF-8
func sanitize(b []byte) string {
	s := strings.ToValidUTF8(string(b), "�")
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return '.'
		}
		return r
	}, s)
}
