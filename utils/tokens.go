package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
)

// GenerateSecureToken returns 2*length hex characters of crypto randomness.
func GenerateSecureToken(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("invalid token length")
	}
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// MaskEmail hides most of an address for log lines: j**n@e******.com
func MaskEmail(email string) string {
	email = strings.TrimSpace(email)
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return email
	}
	local, domain := parts[0], parts[1]

	switch {
	case len(local) > 2:
		local = local[:1] + strings.Repeat("*", len(local)-2) + local[len(local)-1:]
	case len(local) == 2:
		local = local[:1] + "*"
	}

	domainParts := strings.Split(domain, ".")
	if len(domainParts) >= 2 && len(domainParts[0]) > 1 {
		domainParts[0] = domainParts[0][:1] + strings.Repeat("*", len(domainParts[0])-1)
	}
	return local + "@" + strings.Join(domainParts, ".")
}
