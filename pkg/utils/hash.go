package utils

import "golang.org/x/crypto/bcrypt"

// HashCost is the bcrypt work factor for stored passwords.
const HashCost = 12

func HashPassword(p string) (string, error) {
	return HashPasswordCost(p, HashCost)
}

// HashPasswordCost hashes with an explicit cost; tests use bcrypt.MinCost.
func HashPasswordCost(p string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(p), cost)
	return string(bytes), err
}

func CheckPassword(hash, pass string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pass)) == nil
}
