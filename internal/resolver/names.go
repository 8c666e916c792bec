package resolver

import (
	"strings"
	"unicode"
)

// nameStopWords are query words stripped before name extraction.
var nameStopWords = map[string]struct{}{
	"show": {}, "me": {}, "about": {}, "stats": {}, "profile": {},
	"tell": {}, "value": {}, "worth": {}, "price": {}, "what": {},
	"is": {}, "the": {}, "his": {}, "her": {}, "auction": {},
	"find": {}, "get": {}, "display": {}, "give": {}, "whats": {},
	"what's": {}, "of": {}, "for": {}, "a": {}, "an": {},
	"which": {}, "country": {}, "role": {}, "team": {}, "compare": {},
}

// knownPlayers short-circuits extraction for frequent lookups.
var knownPlayers = []string{
	"virat kohli",
	"rohit sharma",
	"ms dhoni",
	"jasprit bumrah",
	"hardik pandya",
}

// ExtractPlayerName pulls a probable player name out of a message.
// Best effort: known names match case-insensitively, otherwise
// capitalized non-stop words are joined (up to three). Returns "" when
// nothing name-like is found; all-lowercase unknown names are a known
// false negative.
func ExtractPlayerName(message string) string {
	lower := strings.ToLower(message)
	for _, known := range knownPlayers {
		if strings.Contains(lower, known) {
			return titleCase(known)
		}
	}

	var parts []string
	for _, word := range strings.Fields(message) {
		if _, stop := nameStopWords[strings.ToLower(word)]; stop {
			continue
		}
		if !hasUpper(word) {
			continue
		}
		clean := lettersOnly(word)
		if len(clean) > 2 {
			parts = append(parts, clean)
		}
		if len(parts) == 3 {
			break
		}
	}
	return strings.Join(parts, " ")
}

// ExtractPlayerNames splits a comparison message on "and"/"vs"/commas
// and extracts a name from each part.
func ExtractPlayerNames(message string) []string {
	replaced := strings.NewReplacer(" and ", "|", " vs ", "|", " versus ", "|", ",", "|").Replace(message)

	var names []string
	for _, part := range strings.Split(replaced, "|") {
		if name := ExtractPlayerName(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

func lettersOnly(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
