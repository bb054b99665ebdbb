package geo

import (
	"explore-islands/pkg/model"
)

// Locator guesses which county a request comes from.
// No lookup is performed: every request gets the same configured guess.
type Locator struct {
	defaultCounty string
	confidence    float64
}

// NewLocator creates a locator answering with defaultCounty. An empty
// defaultCounty makes every guess null with zero confidence.
func NewLocator(defaultCounty string, confidence float64) *Locator {
	return &Locator{
		defaultCounty: defaultCounty,
		confidence:    confidence,
	}
}

// Guess returns the location guess for ip
func (l *Locator) Guess(ip string) model.LocationGuess {
	if l.defaultCounty == "" {
		return model.LocationGuess{IP: ip}
	}

	county := l.defaultCounty
	return model.LocationGuess{
		IP:            ip,
		GuessedCounty: &county,
		Confidence:    l.confidence,
	}
}

// DefaultCounty returns the slug every guess points at, if any
func (l *Locator) DefaultCounty() string {
	return l.defaultCounty
}
