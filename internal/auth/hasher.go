package auth

import "golang.org/x/crypto/bcrypt"

// Hasher wraps bcrypt so the rest of the code never touches hash records
// directly. Each call salts independently, so hashing the same password
// twice yields different records.
type Hasher struct {
	cost int
}

func NewHasher() *Hasher {
	return &Hasher{cost: bcrypt.DefaultCost}
}

func (h *Hasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plaintext reproduces the hash record. Malformed
// records verify to false, never to an error.
func (h *Hasher) Verify(plaintext, hashRecord string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashRecord), []byte(plaintext)) == nil
}
