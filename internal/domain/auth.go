package domain

import "time"

// TokenKind enumerates supported token kinds. Only bearer tokens exist today.
type TokenKind string

const TokenKindBearer TokenKind = "BEARER"

// Token is the persisted record of an issued bearer credential.
// At most one live token exists per user; a login replaces the prior record.
type Token struct {
	ID        string
	Token     string
	UserID    string
	Kind      TokenKind
	CreatedAt time.Time
}
