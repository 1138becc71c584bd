package auth

import "projectboard/internal/domain/models"

// JWTVerifier verifies bearer tokens presented to the board API
type JWTVerifier interface {
	// VerifyToken validates a token string and returns its claims.
	// Invalid, expired or wrongly signed tokens yield domain.ErrUnauthorized.
	VerifyToken(tokenString string) (*models.Claims, error)

	// Close releases resources held by the verifier
	Close() error
}
