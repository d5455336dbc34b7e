package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	OwnerIDKey contextKey = "owner_id"
	RoleKey    contextKey = "role"
	TokenKey   contextKey = "token"
)

func GetOwnerIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	ownerIDVal := ctx.Value(OwnerIDKey)
	if ownerIDVal == nil {
		return uuid.Nil, false
	}

	ownerIDStr, ok := ownerIDVal.(string)
	if !ok {
		return uuid.Nil, false
	}

	ownerID, err := uuid.Parse(ownerIDStr)
	if err != nil {
		return uuid.Nil, false
	}

	return ownerID, true
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	roleVal := ctx.Value(RoleKey)
	if roleVal == nil {
		return "", false
	}

	role, ok := roleVal.(string)
	return role, ok
}

func SetOwnerContext(ctx context.Context, ownerID uuid.UUID, role string) context.Context {
	ctx = context.WithValue(ctx, OwnerIDKey, ownerID.String())
	ctx = context.WithValue(ctx, RoleKey, role)
	return ctx
}

func GetTokenFromContext(ctx context.Context) (string, bool) {
	tokenVal := ctx.Value(TokenKey)
	if tokenVal == nil {
		return "", false
	}

	token, ok := tokenVal.(string)
	return token, ok
}

func SetTokenContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}
