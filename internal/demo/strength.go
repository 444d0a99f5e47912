package demo

import zxcvbn "github.com/nbutton23/zxcvbn-go"

// MaxStrengthRunes caps the input handed to zxcvbn. Its matchers grow
// superlinearly with length, so longer passwords are scored on this prefix.
const MaxStrengthRunes = 100

// Strength is a zxcvbn estimate shown next to the dictionary attack result.
// Score ranges from 0 (guessable) to 4 (very unguessable).
type Strength struct {
	Score            int     `json:"score"`
	Entropy          float64 `json:"entropy"`
	CrackTimeDisplay string  `json:"crackTimeDisplay"`
	// Truncated is set when only the first MaxStrengthRunes runes were scored.
	Truncated bool `json:"truncated,omitempty"`
}

// EstimateStrength scores password with zxcvbn.
func EstimateStrength(password string) Strength {
	scored, truncated := runePrefix(password, MaxStrengthRunes)
	res := zxcvbn.PasswordStrength(scored, nil)
	return Strength{
		Score:            res.Score,
		Entropy:          res.Entropy,
		CrackTimeDisplay: res.CrackTimeDisplay,
		Truncated:        truncated,
	}
}

func runePrefix(s string, n int) (string, bool) {
	count := 0
	for i := range s {
		if count == n {
			return s[:i], true
		}
		count++
	}
	return s, false
}
