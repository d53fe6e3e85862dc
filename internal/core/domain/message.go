package domain

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MessageLength counts characters of a donation message. The text is NFC
// normalised first so a precomposed and a decomposed accent count the same.
func MessageLength(msg string) int {
	return utf8.RuneCountInString(norm.NFC.String(msg))
}
