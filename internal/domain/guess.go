package domain

// GuessReason причина засчитанного ответа
type GuessReason string

const (
	GuessReasonExact  GuessReason = "exact"
	GuessReasonTokens GuessReason = "tokens"
	// GuessReasonTypo объявлен в клиентском API, грейдер его не выдаёт
	GuessReasonTypo GuessReason = "typo"
)

// GuessResult результат проверки ответа
type GuessResult struct {
	Correct bool        `json:"correct"`
	Reason  GuessReason `json:"reason,omitempty"`
}
