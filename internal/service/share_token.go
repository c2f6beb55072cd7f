package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ShareTokenService emite y valida los tokens que habilitan el envio del
// email de resultados. El token se entrega solo a quien hizo el submit.
type ShareTokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	store  ShareTokenStore
}

type ShareClaims struct {
	Code      string `json:"code"`
	Email     string `json:"email"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

var (
	ErrShareTokenInvalid = errors.New("share token invalid")
	ErrShareTokenExpired = errors.New("share token expired")
)

const shareTokenType = "share"

func NewShareTokenService(secret string, ttl time.Duration) *ShareTokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &ShareTokenService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "charm-money",
		store:  NewMemoryShareTokenStore(),
	}
}

func NewShareTokenServiceWithStore(secret string, ttl time.Duration, store ShareTokenStore) *ShareTokenService {
	svc := NewShareTokenService(secret, ttl)
	if store != nil {
		svc.store = store
	}
	return svc
}

// Issue firma un token para el codigo y email dados.
func (s *ShareTokenService) Issue(code, emailAddr string) (string, error) {
	if s == nil || len(s.secret) == 0 {
		return "", ErrShareTokenInvalid
	}
	now := time.Now().UTC()
	jti := uuid.NewString()
	claims := ShareClaims{
		Code:      code,
		Email:     emailAddr,
		TokenType: shareTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Issuer:    s.issuer,
			Subject:   code,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}
	if s.store != nil {
		if err := s.store.Store(jti, code, s.ttl); err != nil {
			return "", err
		}
	}
	return signed, nil
}

// Verify valida firma, tipo y emisor, y que el jti siga registrado para el
// mismo codigo que viaja en los claims. No consume el token.
func (s *ShareTokenService) Verify(tokenString string) (ShareClaims, error) {
	claims, err := s.claimsFrom(tokenString)
	if err != nil {
		return ShareClaims{}, err
	}
	if s.store != nil {
		code, ok, err := s.store.Lookup(claims.ID)
		if err != nil || !ok || code != claims.Code {
			return ShareClaims{}, ErrShareTokenInvalid
		}
	}
	return claims, nil
}

// Consume valida el token y lo da de baja. Un segundo Consume del mismo
// token devuelve ErrShareTokenInvalid.
func (s *ShareTokenService) Consume(tokenString string) (ShareClaims, error) {
	claims, err := s.claimsFrom(tokenString)
	if err != nil {
		return ShareClaims{}, err
	}
	if s.store != nil {
		code, ok, err := s.store.Consume(claims.ID)
		if err != nil || !ok || code != claims.Code {
			return ShareClaims{}, ErrShareTokenInvalid
		}
	}
	return claims, nil
}

// Restore vuelve a registrar un token consumido por el tiempo que le queda.
// Se usa cuando el envio falla despues de Consume.
func (s *ShareTokenService) Restore(claims ShareClaims) error {
	if s == nil || s.store == nil || claims.ExpiresAt == nil {
		return nil
	}
	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		return nil
	}
	return s.store.Store(claims.ID, claims.Code, remaining)
}

func (s *ShareTokenService) claimsFrom(tokenString string) (ShareClaims, error) {
	if s == nil || len(s.secret) == 0 {
		return ShareClaims{}, ErrShareTokenInvalid
	}
	if strings.TrimSpace(tokenString) == "" {
		return ShareClaims{}, ErrShareTokenInvalid
	}
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return ShareClaims{}, err
	}
	if !s.isValidClaims(claims) {
		return ShareClaims{}, ErrShareTokenInvalid
	}
	return claims, nil
}

func (s *ShareTokenService) parseToken(tokenString string) (ShareClaims, error) {
	var claims ShareClaims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ShareClaims{}, ErrShareTokenExpired
		}
		return ShareClaims{}, ErrShareTokenInvalid
	}
	return claims, nil
}

func (s *ShareTokenService) isValidClaims(claims ShareClaims) bool {
	if claims.TokenType != shareTokenType {
		return false
	}
	if strings.TrimSpace(claims.Code) == "" || claims.Subject != claims.Code {
		return false
	}
	if strings.TrimSpace(claims.ID) == "" {
		return false
	}
	return claims.Issuer == s.issuer
}
