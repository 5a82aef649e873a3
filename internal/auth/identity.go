package auth

import "context"

type Role string

const (
	RoleStudent  Role = "student"
	RolePersonal Role = "personal"
)

func (r Role) IsValid() bool {
	return r == RoleStudent || r == RolePersonal
}

// Identity is the acting user of a request, as resolved from its session.
type Identity struct {
	UserID string `json:"userId"`
	Role   Role   `json:"role"`
}

func (i Identity) Is(userID string) bool {
	return i.UserID != "" && i.UserID == userID
}

type identityCtxKey struct{}

func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, identity)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityCtxKey{}).(Identity)
	return identity, ok && identity.UserID != ""
}
