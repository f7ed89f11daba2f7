package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/rbhz/dictionary-lookup/app/history"
	"github.com/rs/zerolog/log"
)

const (
	sessionCookie     = "session"
	defaultSessionTTL = 24 * time.Hour
)

// JWTClaims custom claims with session id
type JWTClaims struct {
	Session string `json:"session"`
	jwt.StandardClaims
}

// sessionAuth keeps session id in a signed cookie
type sessionAuth struct {
	secret []byte
	ttl    time.Duration
}

func (s *sessionAuth) lifetime() time.Duration {
	if s.ttl <= 0 {
		return defaultSessionTTL
	}
	return s.ttl
}

// createToken creates JWT token
func (s *sessionAuth) createToken(sessionID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, JWTClaims{
		Session: sessionID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().UTC().Add(s.lifetime()).Unix(),
			NotBefore: time.Now().UTC().Unix(),
		},
	})
	tokenStr, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return tokenStr, nil
}

// parseToken returns session id from a valid token
func (s *sessionAuth) parseToken(tokenStr string) (string, bool) {
	token, err := jwt.ParseWithClaims(tokenStr, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", false
	}
	claims := token.Claims.(*JWTClaims)
	if claims.Session == "" {
		return "", false
	}
	now := time.Now().Unix()
	if claims.NotBefore > now || claims.ExpiresAt < now {
		return "", false
	}
	return claims.Session, true
}

// SessionCtx adds session id to context, a new session is started when
// cookie is missing or invalid
func (s *sessionAuth) SessionCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sessionID string
		if cookie, err := r.Cookie(sessionCookie); err == nil {
			sessionID, _ = s.parseToken(cookie.Value)
		}
		if sessionID == "" {
			sessionID = history.NewSessionID()
			token, err := s.createToken(sessionID)
			if err != nil {
				log.Error().Err(err).Msg("failed to create token")
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    token,
				Path:     "/",
				MaxAge:   int(s.lifetime().Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := context.WithValue(r.Context(), ctxSessionKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
