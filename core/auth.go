package core

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

type Auth struct {
	store  Store
	secret []byte
	ttl    time.Duration
}

func NewAuth(store Store, secret []byte, ttl time.Duration) *Auth {
	return &Auth{
		store:  store,
		secret: secret,
		ttl:    ttl,
	}
}

// NormalizeEmail lowercases an email before storage and lookup, so
// case-insensitive duplicates collide on the unique constraint.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *Auth) Register(ctx context.Context, name, email, password string) (string, User, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return "", User{}, fmt.Errorf("%w: must provide name, email and password", ErrInvalidArgs)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := a.store.CreateUser(ctx, name, email, string(hash))
	if err != nil {
		return "", User{}, err
	}

	token, err := a.sign(user.ID)
	if err != nil {
		return "", User{}, err
	}
	return token, user, nil
}

func (a *Auth) Login(ctx context.Context, email, password string) (string, User, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return "", User{}, fmt.Errorf("%w: must provide email and password", ErrInvalidArgs)
	}

	user, err := a.store.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", User{}, ErrInvalidCredentials
		}
		return "", User{}, err
	}

	// The verification result gates token issuance.
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", User{}, ErrInvalidCredentials
	}

	token, err := a.sign(user.ID)
	if err != nil {
		return "", User{}, err
	}
	return token, user, nil
}

// Authenticate resolves a bearer token to the user it was issued for.
func (a *Auth) Authenticate(ctx context.Context, tokenString string) (User, error) {
	if tokenString == "" {
		return User{}, ErrUnauthenticated
	}

	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return User{}, fmt.Errorf("%w: invalid token", ErrUnauthenticated)
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return User{}, fmt.Errorf("%w: invalid token", ErrUnauthenticated)
	}

	return a.store.UserByID(ctx, id)
}

func (a *Auth) sign(userID int64) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}
