package patterns

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	wordRe     = regexp.MustCompile(`[\p{L}\p{N}]+(?:['’][\p{L}]+)*`)
	sentenceRe = regexp.MustCompile(`[^.!?]+[.!?]*`)
)

// Normalize lowercases text for matching one rune at a time, so the result
// has the same rune count as text and character offsets (see CharOffset) line
// up with the original.
func Normalize(text string) string {
	return strings.Map(unicode.ToLower, text)
}

// Words splits text into word tokens.
func Words(text string) []string {
	return wordRe.FindAllString(text, -1)
}

func WordCount(text string) int {
	return len(wordRe.FindAllStringIndex(text, -1))
}

// Sentence is one sentence of a transcript. Start is the byte offset of its
// first non-space character in the source text.
type Sentence struct {
	Text  string
	Start int
	Words []string
}

// Sentences splits text on terminal punctuation. Fragments without any word
// are dropped.
func Sentences(text string) []Sentence {
	var out []Sentence
	for _, loc := range sentenceRe.FindAllStringIndex(text, -1) {
		raw := text[loc[0]:loc[1]]
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		words := Words(trimmed)
		if len(words) == 0 {
			continue
		}
		out = append(out, Sentence{
			Text:  trimmed,
			Start: loc[0] + strings.Index(raw, trimmed),
			Words: words,
		})
	}
	return out
}

// CharOffset converts a byte offset in text into a character offset.
func CharOffset(text string, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset > len(text) {
		byteOffset = len(text)
	}
	return utf8.RuneCountInString(text[:byteOffset])
}

// Snippet returns up to radius characters either side of the character
// range [start, end) in text, with ellipses where it was cut.
func Snippet(text string, start, end, radius int) string {
	runes := []rune(text)
	from := start - radius
	if from < 0 {
		from = 0
	}
	to := end + radius
	if to > len(runes) {
		to = len(runes)
	}
	if from >= to {
		return ""
	}
	out := strings.TrimSpace(string(runes[from:to]))
	if from > 0 {
		out = "..." + out
	}
	if to < len(runes) {
		out += "..."
	}
	return out
}
