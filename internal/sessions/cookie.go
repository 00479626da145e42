package sessions

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"

	"pgmaint/internal/models"
)

const cookieIssuer = "pgmaint"

var ErrInvalidCookie = errors.New("invalid session cookie")

// CookieSigner wraps a session token in an HS256 JWT so tampered cookies are
// rejected before the store is consulted.
type CookieSigner struct {
	secret []byte
	clock  clockwork.Clock
}

func NewCookieSigner(secret []byte, clock clockwork.Clock) *CookieSigner {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &CookieSigner{secret: secret, clock: clock}
}

// Sign issues the cookie value for token. exp is rounded up to the next second so
// the JWT never dies before the session it carries.
func (s *CookieSigner) Sign(token string, expiresAt time.Time) (string, error) {
	exp := expiresAt.Truncate(time.Second)
	if exp.Before(expiresAt) {
		exp = exp.Add(time.Second)
	}
	claims := jwt.RegisteredClaims{
		ID:        token,
		Issuer:    cookieIssuer,
		IssuedAt:  jwt.NewNumericDate(s.clock.Now()),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session cookie: %w", err)
	}
	return signed, nil
}

// Verify returns the session token carried by a cookie value.
func (s *CookieSigner) Verify(value string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(value, claims,
		func(*jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cookieIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCookie, err)
	}
	if claims.ID == "" {
		return "", ErrInvalidCookie
	}
	return claims.ID, nil
}

type CookieConfig struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

// CookieManager builds and reads the session cookie.
type CookieManager struct {
	cfg    CookieConfig
	signer *CookieSigner
}

func NewCookieManager(cfg CookieConfig, signer *CookieSigner) *CookieManager {
	return &CookieManager{cfg: cfg, signer: signer}
}

func (m *CookieManager) Name() string {
	return m.cfg.Name
}

// Issue returns the cookie that binds the client to s.
func (m *CookieManager) Issue(s *models.Session) (*http.Cookie, error) {
	value, err := m.signer.Sign(s.Token, s.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return &http.Cookie{
		Name:     m.cfg.Name,
		Value:    value,
		Path:     "/",
		Expires:  s.ExpiresAt,
		MaxAge:   int(m.cfg.TTL / time.Second),
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// Clear returns a cookie that makes the browser drop the session cookie.
func (m *CookieManager) Clear() *http.Cookie {
	return &http.Cookie{
		Name:     m.cfg.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// TokenFrom extracts and verifies the session token on r. A missing or forged
// cookie yields ok == false.
func (m *CookieManager) TokenFrom(r *http.Request) (token string, ok bool) {
	c, err := r.Cookie(m.cfg.Name)
	if err != nil || c.Value == "" {
		return "", false
	}
	token, err = m.signer.Verify(c.Value)
	if err != nil {
		return "", false
	}
	return token, true
}
