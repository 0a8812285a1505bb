// Package answer maps the textual answer tokens found in question files to booleans.
package answer

import "strings"

type Format string

const (
	FormatTrueFalse     Format = "true/false"
	Format10            Format = "1/0"
	FormatJaNein        Format = "ja/nein"
	FormatRichtigFalsch Format = "richtig/falsch"
)

// sampleSize is how many leading tokens DetectFormat inspects.
const sampleSize = 10

type family struct {
	format Format
	tokens map[string]bool
}

// Checked in this order by DetectFormat.
var families = []family{
	{FormatTrueFalse, map[string]bool{
		"true": true, "false": false,
		"True": true, "False": false,
		"TRUE": true, "FALSE": false,
	}},
	{Format10, map[string]bool{
		"1": true, "0": false,
	}},
	{FormatJaNein, map[string]bool{
		"ja": true, "nein": false,
		"Ja": true, "Nein": false,
		"JA": true, "NEIN": false,
	}},
	{FormatRichtigFalsch, map[string]bool{
		"richtig": true, "falsch": false,
		"Richtig": true, "Falsch": false,
		"RICHTIG": true, "FALSCH": false,
	}},
}

var tokens = func() map[string]bool {
	all := make(map[string]bool)
	for _, f := range families {
		for k, v := range f.tokens {
			all[k] = v
		}
	}
	return all
}()

// Normalize returns the boolean a token stands for. ok is false for unknown tokens.
// Only the listed case variants are recognized, so "tRuE" is unknown.
func Normalize(token string) (value bool, ok bool) {
	value, ok = tokens[strings.TrimSpace(token)]
	return value, ok
}

// DetectFormat reports the family shared by all of the first ten tokens.
// A single token outside that family makes it fall back to true/false.
func DetectFormat(sample []string) Format {
	if len(sample) > sampleSize {
		sample = sample[:sampleSize]
	}
	if len(sample) == 0 {
		return FormatTrueFalse
	}

	for _, f := range families {
		if f.containsAll(sample) {
			return f.format
		}
	}
	return FormatTrueFalse
}

func (f family) containsAll(sample []string) bool {
	for _, s := range sample {
		if _, ok := f.tokens[strings.TrimSpace(s)]; !ok {
			return false
		}
	}
	return true
}

func (f Format) IsValid() bool {
	for _, fam := range families {
		if fam.format == f {
			return true
		}
	}
	return false
}
