package utils

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var seededRand *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))

// GenerateCode returns prefix followed by length random characters, e.g.
// "PRJ-7Q2K".
func GenerateCode(prefix string, length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[seededRand.Intn(len(charset))]
	}
	return prefix + string(b)
}

// GeneratePassword returns a random throwaway password for seeded accounts.
func GeneratePassword() string {
	return uuid.NewString()
}
