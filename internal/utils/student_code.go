package utils

import (
	"crypto/rand"
	"math/big"
)

const studentCodeLength = 6

// studentCodeChars deliberately keeps ambiguous characters (0/O, 1/I) out so
// a child can read the code aloud to a parent without confusion.
const studentCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateStudentCode generates the short uppercase code a student account
// displays so a parent can link to it.
func GenerateStudentCode() (string, error) {
	code := make([]byte, studentCodeLength)
	for i := 0; i < studentCodeLength; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(studentCodeChars))))
		if err != nil {
			return "", err
		}
		code[i] = studentCodeChars[num.Int64()]
	}
	return string(code), nil
}
