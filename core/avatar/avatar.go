// Package avatar derives the generated avatar of a display name.
package avatar

import (
	"strings"
	"unicode"
	"unicode/utf16"
)

// Palette holds the background colors, hex without '#'.
var Palette = []string{"ff6b9d", "4ecdc4", "ffd93d", "b4a7d6", "ff8a80"}

// Color picks the palette entry at the name's UTF-16 length modulo the palette size.
func Color(name string) string {
	return Palette[len(utf16.Encode([]rune(name)))%len(Palette)]
}

// URL builds the image URL of the avatar generation service for name.
func URL(service, name string) string {
	q := strings.Join([]string{
		"name=" + escape(name),
		"background=" + Color(name),
		"color=fff",
		"size=200",
		"format=svg",
		"bold=true",
		"rounded=true",
	}, "&")
	return service + "?" + q
}

// escape percent-encodes the UTF-8 bytes of s the way encodeURIComponent does:
// letters, digits and -_.!~*'() are kept, everything else becomes %XX.
func escape(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isURIUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isURIUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}

// Initials are the uppercased first letters of each whitespace-separated token.
func Initials(name string) string {
	var b strings.Builder
	for _, tok := range strings.Fields(name) {
		for _, r := range tok {
			b.WriteRune(unicode.ToUpper(r))
			break
		}
	}
	return b.String()
}
