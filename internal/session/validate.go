package session

import (
	"errors"
	"fmt"
)

const (
	// GuessLength is the fixed code length the server scores against.
	GuessLength = 4

	digitMin = '1'
	digitMax = '6'
)

var (
	ErrGuessLength = fmt.Errorf("a guess is exactly %d digits", GuessLength)
	ErrGuessDigit  = errors.New("every digit must be between 1 and 6")
)

// ValidateGuess accepts only a whole well-formed guess: exactly GuessLength
// characters, each a digit in [1,6]. Anything else is rejected outright, no
// partial acceptance or correction.
func ValidateGuess(guess string) error {
	if len(guess) != GuessLength {
		return ErrGuessLength
	}
	for _, r := range guess {
		if r < digitMin || r > digitMax {
			return ErrGuessDigit
		}
	}
	return nil
}
