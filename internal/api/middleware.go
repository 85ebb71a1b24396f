package api

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/sana-health/sana/internal/models"
)

type authClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}

var errInvalidToken = errors.New("invalid auth token")

// AuthRequired accepts the auth token from the cookie or a Bearer header and
// stores the authenticated user id in request locals.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	token := c.Cookies(authCookieName)
	if token == "" {
		header := c.Get(fiber.HeaderAuthorization)
		if strings.HasPrefix(header, "Bearer ") {
			token = strings.TrimPrefix(header, "Bearer ")
		}
	}
	if token == "" {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	userID, err := handler.parseToken(token)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals(contextUserKey, userID)
	return c.Next()
}

func currentUserID(c *fiber.Ctx) uint {
	userID, _ := c.Locals(contextUserKey).(uint)
	return userID
}

// rememberMeLifetime extends the session for logins that ask to be kept.
const rememberMeLifetime = 30 * 24 * time.Hour

func (handler *Handler) buildToken(user models.User, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = handler.tokenLifetime
	}
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	now := time.Now()

	claims := authClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(handler.secretKey)
}

func (handler *Handler) parseToken(raw string) (uint, error) {
	parsed, err := jwt.ParseWithClaims(raw, &authClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return handler.secretKey, nil
	})
	if err != nil || !parsed.Valid {
		return 0, errInvalidToken
	}

	claims, ok := parsed.Claims.(*authClaims)
	if !ok || claims.UserID == 0 {
		return 0, errInvalidToken
	}
	return claims.UserID, nil
}

func (handler *Handler) setAuthCookie(c *fiber.Ctx, token string, ttl time.Duration) {
	if ttl <= 0 {
		ttl = handler.tokenLifetime
	}
	c.Cookie(&fiber.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(ttl),
	})
}

func (handler *Handler) clearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}
