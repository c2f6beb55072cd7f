package service

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const (
	codeDigits   = "23456789"
	codeLetters  = "ABCDEFGHJKMNPQRSTUVWXYZabcdefghjkmnpqrstuvwxyz"
	codeAlphabet = codeDigits + codeLetters
	codeLength   = 6
)

// GenerateResultCode devuelve un codigo de 6 caracteres sin glifos ambiguos
// que contiene al menos un digito.
func GenerateResultCode() (string, error) {
	size := big.NewInt(int64(len(codeAlphabet)))
	buf := make([]byte, codeLength)
	for {
		for i := range buf {
			n, err := rand.Int(rand.Reader, size)
			if err != nil {
				return "", err
			}
			buf[i] = codeAlphabet[n.Int64()]
		}
		code := string(buf)
		if strings.ContainsAny(code, codeDigits) {
			return code, nil
		}
	}
}

// IsValidResultCode valida largo y alfabeto de un codigo.
func IsValidResultCode(code string) bool {
	if len(code) != codeLength {
		return false
	}
	for _, r := range code {
		if !strings.ContainsRune(codeAlphabet, r) {
			return false
		}
	}
	return true
}
