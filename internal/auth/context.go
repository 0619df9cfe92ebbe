package auth

import (
	"context"

	"github.com/dukerupert/taskquest/internal/model"
)

type contextKey struct{}

// AuthContext identifies the member a request acts as.
type AuthContext struct {
	MemberID    int64
	WorkspaceID int64
	Role        string
}

func WithAuth(ctx context.Context, ac AuthContext) context.Context {
	return context.WithValue(ctx, contextKey{}, ac)
}

func FromContext(ctx context.Context) (AuthContext, bool) {
	ac, ok := ctx.Value(contextKey{}).(AuthContext)
	return ac, ok
}

func WorkspaceID(ctx context.Context) int64 {
	ac, ok := FromContext(ctx)
	if !ok {
		return 0
	}
	return ac.WorkspaceID
}

func MemberID(ctx context.Context) int64 {
	ac, ok := FromContext(ctx)
	if !ok {
		return 0
	}
	return ac.MemberID
}

func (ac AuthContext) IsManager() bool {
	return ac.Role == model.RoleManager
}

func IsManager(ctx context.Context) bool {
	ac, ok := FromContext(ctx)
	if !ok {
		return false
	}
	return ac.IsManager()
}
