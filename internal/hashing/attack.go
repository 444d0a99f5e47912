package hashing

// CommonPasswords is the demo wordlist, in lookup order.
var CommonPasswords = []string{
	"password", "123456", "123456789", "qwerty", "abc123",
	"password123", "letmein", "welcome", "admin", "iloveyou", "monkey",
}

// AttackResult reports the outcome of a dictionary attack.
// RecoveredPassword is nil when Found is false.
type AttackResult struct {
	Found             bool    `json:"found"`
	RecoveredPassword *string `json:"password"`
}

// DictionaryAttack looks up unsalted digests against a small wordlist.
//
// Only unsalted digests are meaningful targets: a salted or adaptive hash can
// never match because the attacker does not know the salt.
type DictionaryAttack struct {
	wordlist []string
}

// NewDictionaryAttack copies wordlist; an empty list selects CommonPasswords.
func NewDictionaryAttack(wordlist []string) *DictionaryAttack {
	if len(wordlist) == 0 {
		wordlist = CommonPasswords
	}
	words := make([]string, len(wordlist))
	copy(words, wordlist)
	return &DictionaryAttack{wordlist: words}
}

// Size returns the number of candidates tried on a miss.
func (a *DictionaryAttack) Size() int { return len(a.wordlist) }

// AttemptCrack hashes each candidate with Digest and returns the first whose
// digest equals targetDigestHex. The target is lowercased first so it matches
// Digest's encoding.
func (a *DictionaryAttack) AttemptCrack(targetDigestHex string) AttackResult {
	target := NormalizeDigest(targetDigestHex)
	if len(target) != DigestSize {
		return AttackResult{}
	}
	for _, candidate := range a.wordlist {
		if Digest([]byte(candidate)) == target {
			recovered := candidate
			return AttackResult{Found: true, RecoveredPassword: &recovered}
		}
	}
	return AttackResult{}
}
