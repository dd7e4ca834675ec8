package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/admin/games/daily-guess/internal/domain"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "diacritics and punctuation", input: "Café!", expected: "cafe"},
		{name: "leading article dropped", input: "The Cats", expected: "cat"},
		{name: "only first article dropped", input: "a the", expected: "the"},
		{name: "article in the middle kept", input: "cat in a hat", expected: "cat in a hat"},
		{name: "whitespace collapsed", input: "  police \t  car  ", expected: "police car"},
		{name: "hyphen kept", input: "Ice-Cream", expected: "ice-cream"},
		{name: "apostrophe becomes space", input: "dog's bowl", expected: "dog s bowl"},
		{name: "irregular plural", input: "the children", expected: "child"},
		{name: "every token singularized", input: "wolves and mice", expected: "wolf and mouse"},
		{name: "empty", input: "", expected: ""},
		{name: "punctuation only", input: "?!...", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestSingularize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"people", "person"},
		{"geese", "goose"},
		{"cities", "city"},
		{"ies", "ie"},
		{"heroes", "hero"},
		{"wolves", "wolf"},
		{"cats", "cat"},
		{"s", "s"},
		{"bus", "bu"},
		{"cat", "cat"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Singularize(tt.input), "Singularize(%q)", tt.input)
	}
}

func TestGrade(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		canonical string
		aliases   []string
		expected  domain.GuessResult
	}{
		{
			name:      "case punctuation and diacritics ignored",
			input:     "Café!",
			canonical: "cafe",
			expected:  domain.GuessResult{Correct: true, Reason: domain.GuessReasonExact},
		},
		{
			name:      "article stripped and plural singularized",
			input:     "the cats",
			canonical: "cat",
			expected:  domain.GuessResult{Correct: true, Reason: domain.GuessReasonExact},
		},
		{
			name:      "partial credit by token overlap",
			input:     "car",
			canonical: "police car",
			expected:  domain.GuessResult{Correct: true, Reason: domain.GuessReasonTokens},
		},
		{
			name:      "descriptive guess against short canonical",
			input:     "a red police car",
			canonical: "car",
			expected:  domain.GuessResult{Correct: true, Reason: domain.GuessReasonTokens},
		},
		{
			name:      "non match",
			input:     "butterfly",
			canonical: "dragonfly",
			expected:  domain.GuessResult{Correct: false},
		},
		{
			name:      "empty guess",
			input:     "",
			canonical: "cat",
			expected:  domain.GuessResult{Correct: false},
		},
		{
			name:      "empty guess against empty canonical",
			input:     "",
			canonical: "",
			expected:  domain.GuessResult{Correct: false},
		},
		{
			name:      "alias exact match",
			input:     "Kitty",
			canonical: "cat",
			aliases:   []string{"kitten", "kitty"},
			expected:  domain.GuessResult{Correct: true, Reason: domain.GuessReasonExact},
		},
		{
			name:      "short words do not count as overlap",
			input:     "of it",
			canonical: "top of it all",
			expected:  domain.GuessResult{Correct: false},
		},
		{
			name:      "overlap below half",
			input:     "red fire engine truck",
			canonical: "blue garbage engine lorry",
			expected:  domain.GuessResult{Correct: false},
		},
		{
			name:      "overlap of exactly half",
			input:     "red fire engine",
			canonical: "fire engine ladder truck",
			expected:  domain.GuessResult{Correct: true, Reason: domain.GuessReasonTokens},
		},
		{
			name:      "token match through alias",
			input:     "sports car",
			canonical: "automobile",
			aliases:   []string{"car"},
			expected:  domain.GuessResult{Correct: true, Reason: domain.GuessReasonTokens},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Grade(tt.input, tt.canonical, tt.aliases...))
		})
	}
}
