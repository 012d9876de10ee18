package storage

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-booking/clock"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidSignature = errors.New("invalid or expired signed url")

type signedClaims struct {
	Path string `json:"path"`
	jwt.RegisteredClaims
}

// URLSigner issues time limited links to private objects. The token is a
// compact HS256 JWT carrying the object path.
type URLSigner struct {
	secret  []byte
	baseURL string
	clock   clock.Clock
}

func NewURLSigner(secret, baseURL string, c clock.Clock) *URLSigner {
	return &URLSigner{secret: []byte(secret), baseURL: strings.TrimRight(baseURL, "/"), clock: c}
}

func (s *URLSigner) SignedURL(objectPath string, ttl time.Duration) (string, error) {
	p, err := CleanPath(objectPath)
	if err != nil {
		return "", err
	}
	now := s.clock.Now()
	claims := signedClaims{
		Path: p,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign url: %w", err)
	}
	return s.baseURL + "/" + token, nil
}

// Verify returns the object path a token grants access to.
func (s *URLSigner) Verify(token string) (string, error) {
	claims := &signedClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.clock.Now))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	if claims.Path == "" {
		return "", ErrInvalidSignature
	}
	return claims.Path, nil
}
