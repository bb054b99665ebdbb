package model

// LocationGuess is the response of the request-origin lookup
type LocationGuess struct {
	IP            string  `json:"ip"`
	GuessedCounty *string `json:"guessed_county"`
	Confidence    float64 `json:"confidence"`
}
