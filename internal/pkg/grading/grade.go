package grading

import (
	"strings"
	"unicode/utf8"

	"github.com/admin/games/daily-guess/internal/domain"
)

// minWordLen слова короче или равные этой длине не участвуют в сравнении по словам
const minWordLen = 2

// Grade проверяет ответ игрока против каноничного ответа и синонимов.
// Точное совпадение после нормализации даёт reason=exact, пересечение
// не меньше половины значимых слов - reason=tokens. Пустой ответ всегда неверный
func Grade(input, canonical string, aliases ...string) domain.GuessResult {
	guess := Normalize(input)
	if guess == "" {
		return domain.GuessResult{Correct: false}
	}

	candidates := make([]string, 0, len(aliases)+1)
	candidates = append(candidates, Normalize(canonical))
	for _, alias := range aliases {
		candidates = append(candidates, Normalize(alias))
	}

	for _, candidate := range candidates {
		if candidate == guess {
			return domain.GuessResult{Correct: true, Reason: domain.GuessReasonExact}
		}
	}

	guessWords := wordSet(guess)
	if len(guessWords) == 0 {
		return domain.GuessResult{Correct: false}
	}

	for _, candidate := range candidates {
		candidateWords := wordSet(candidate)

		inter := 0
		for w := range guessWords {
			if _, ok := candidateWords[w]; ok {
				inter++
			}
		}

		// ceil(0.5 * min(|g|, |c|))
		need := max(1, (min(len(guessWords), len(candidateWords))+1)/2)
		if inter > 0 && inter >= need {
			return domain.GuessResult{Correct: true, Reason: domain.GuessReasonTokens}
		}
	}

	return domain.GuessResult{Correct: false}
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		if utf8.RuneCountInString(w) > minWordLen {
			set[w] = struct{}{}
		}
	}
	return set
}
