package utils

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLength     = 16
	hashIterations = 100000
	hashKeyLength  = 64
)

// HashPassword derives a PBKDF2-SHA512 hash with a fresh random salt.
// The plaintext is never stored anywhere.
func HashPassword(plaintext string) (hash, salt []byte, err error) {
	salt = make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, err
	}
	hash = pbkdf2.Key([]byte(plaintext), salt, hashIterations, hashKeyLength, sha512.New)
	return hash, salt, nil
}

// VerifyPassword recomputes the derivation with the stored salt and compares
// in constant time. A false result is a normal "credentials do not match"
// outcome, not an error.
func VerifyPassword(plaintext string, hash, salt []byte) bool {
	candidate := pbkdf2.Key([]byte(plaintext), salt, hashIterations, hashKeyLength, sha512.New)
	return subtle.ConstantTimeCompare(candidate, hash) == 1
}
