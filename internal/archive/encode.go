package archive

import (
	"fmt"
	"strings"
)

// EncodeHeaderValue makes a metadata value safe for an HTTP header. Control
// characters become spaces, whitespace runs collapse and the ends are
// trimmed. Values that are not printable ASCII are wrapped as
// uri(<percent-encoded>), the archive's convention for UTF-8 metadata.
// An empty result means the value should be dropped.
func EncodeHeaderValue(raw string) string {
	cleaned := strings.Join(strings.Fields(strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return ' '
		}
		return r
	}, raw)), " ")

	if cleaned == "" {
		return ""
	}
	if isPrintableASCII(cleaned) {
		return cleaned
	}
	return "uri(" + encodeURIComponent(cleaned) + ")"
}

func isPrintableASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return false
		}
	}
	return true
}

// encodeURIComponent escapes every byte except A-Z a-z 0-9 and -_.!~*'().
func encodeURIComponent(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
			b.WriteByte(c)
		case strings.IndexByte("-_.!~*'()", c) >= 0:
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}
