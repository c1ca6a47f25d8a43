package task

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// sentinelPattern matches the canonical [U+XXXX] encoding of a non-BMP code
// point. Decode consumes a match only when its value lies above U+FFFF
// (the only values EncodeNonBMP produces), so a literal BMP-valued
// "[U+XXXX]" substring already present in source text round-trips
// unchanged rather than being corrupted.
var sentinelPattern = regexp.MustCompile(`\[U\+([0-9A-Fa-f]{4,6})\]`)

// EncodeNonBMP replaces every code point above U+FFFF in s with the
// reversible textual sentinel "[U+XXXX]" (uppercase hex, no leading
// zeros beyond 4 digits). Device stores text in a 3-byte character
// encoding incapable of representing non-BMP code points directly, so
// this is applied before writing.
func EncodeNonBMP(s string) string {
	var b strings.Builder

	for _, r := range s {
		if r > 0xFFFF {
			fmt.Fprintf(&b, "[U+%04X]", r)
			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}

// DecodeNonBMP reverses EncodeNonBMP, replacing each "[U+XXXX]" sentinel
// with the code point it represents. Applied on read from Device.
func DecodeNonBMP(s string) string {
	return sentinelPattern.ReplaceAllStringFunc(s, func(match string) string {
		hexPart := sentinelPattern.FindStringSubmatch(match)[1]

		code, err := strconv.ParseInt(hexPart, 16, 32)
		if err != nil || code <= 0xFFFF || code > 0x10FFFF {
			return match
		}

		return string(rune(code))
	})
}

// caser performs Unicode-aware case folding for title/category comparisons.
var caser = cases.Fold()

// FoldTrim lowercases (Unicode-aware) and trims s for case-insensitive
// comparisons used by repeating-task dedup and title-bootstrap pairing.
func FoldTrim(s string) string {
	return caser.String(strings.TrimSpace(s))
}
