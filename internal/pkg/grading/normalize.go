// Package grading проверяет ответы игроков: нормализация, приведение к единственному
// числу и частичное совпадение по словам.
package grading

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var articles = map[string]struct{}{
	"a":   {},
	"an":  {},
	"the": {},
}

var irregularPlurals = map[string]string{
	"children": "child",
	"people":   "person",
	"men":      "man",
	"women":    "woman",
	"feet":     "foot",
	"teeth":    "tooth",
	"mice":     "mouse",
	"geese":    "goose",
}

// Normalize приводит строку к виду для сравнения:
// без диакритики, в нижнем регистре, без пунктуации, без ведущего артикля, в единственном числе
func Normalize(s string) string {
	s = stripDiacritics(s)
	s = strings.ToLower(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '-' {
			return r
		}
		return ' '
	}, s)

	words := strings.Fields(s)
	if len(words) > 0 {
		if _, ok := articles[words[0]]; ok {
			words = words[1:]
		}
	}

	for i, w := range words {
		words[i] = Singularize(w)
	}

	return strings.Join(words, " ")
}

// Singularize приводит одно слово к единственному числу, первое совпавшее правило побеждает
func Singularize(word string) string {
	if singular, ok := irregularPlurals[word]; ok {
		return singular
	}

	n := utf8.RuneCountInString(word)
	switch {
	case n > 3 && strings.HasSuffix(word, "ies"):
		return strings.TrimSuffix(word, "ies") + "y"
	case n > 3 && strings.HasSuffix(word, "oes"):
		return strings.TrimSuffix(word, "es")
	case n > 3 && strings.HasSuffix(word, "ves"):
		return strings.TrimSuffix(word, "ves") + "f"
	case n > 1 && strings.HasSuffix(word, "s"):
		return strings.TrimSuffix(word, "s")
	default:
		return word
	}
}

// stripDiacritics раскладывает символы (NFKD) и выбрасывает combining marks.
// transform.Chain хранит состояние, поэтому цепочка создаётся на каждый вызов
func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
