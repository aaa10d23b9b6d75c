package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-story-sync/models"
	"github.com/golang-jwt/jwt/v5"
)

const bearerScheme = "Bearer"

var (
	errInvalidTokenParams = errors.New("invalid params for generating JWT token")
	errEmptySubject       = errors.New("token has no subject")
	errInvalidBearer      = errors.New("invalid bearer authorization header")
)

// GenerateJWTToken signs an HS256 token for userID. The subject carries the
// user id, so devices can learn who they are logged in as without another
// request.
func GenerateJWTToken(issuer string, userID int64, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || tokenDuration <= 0 || signKey == "" {
		return models.Token{}, errInvalidTokenParams
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   strconv.FormatInt(userID, 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	})

	signed, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("sign JWT token: %w", err)
	}

	return models.Token{Token: token, SignedString: signed, UserID: userID}, nil
}

// ValidateAndParseJWTToken checks the signature, the issuer and the expiry
// of tokenString and returns the user id from its subject. Tokens signed
// with anything but HS256 or without an expiry are rejected.
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.Token{}, func(*jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("validate token: %w", err)
	}

	userID, err := subjectUserID(token.Claims)
	if err != nil {
		return models.Token{}, err
	}

	return models.Token{Token: token, UserID: userID}, nil
}

// ParseBearerToken takes the token out of a "Bearer <token>" header value.
// The scheme is matched case-insensitively.
func ParseBearerToken(authorizationHeader string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(authorizationHeader), " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, bearerScheme) || token == "" {
		return "", errInvalidBearer
	}
	return token, nil
}

// ParseUserIDFromJWT reads the subject of a token without verifying it. The
// client uses it on tokens it has just received from the server.
func ParseUserIDFromJWT(tokenString string) (int64, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return 0, fmt.Errorf("parse token: %w", err)
	}
	return subjectUserID(token.Claims)
}

func subjectUserID(claims jwt.Claims) (int64, error) {
	sub, err := claims.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("read token subject: %w", err)
	}
	if sub == "" {
		return 0, errEmptySubject
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("token subject is not a user id: %w", err)
	}
	return userID, nil
}
