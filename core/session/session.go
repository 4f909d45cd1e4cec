// Package session carries the authenticated caller through a context.Context.
//
// An Identity is read-only: the API layer sets it once per request and every
// component reads it from the context it was handed.
package session

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

const defaultDisplayName = "Student"

// ErrNoIdentity is returned by operations that need a signed-in user.
var ErrNoIdentity = errors.New("no signed-in user")

type Identity struct {
	UserID   string
	Email    string
	FullName string
}

// IsZero reports whether no user is signed in.
func (id Identity) IsZero() bool {
	return id.UserID == ""
}

// DisplayName is the full name, falling back to the e-mail then to a generic name.
func (id Identity) DisplayName() string {
	if name := strings.TrimSpace(id.FullName); name != "" {
		return name
	}
	if id.Email != "" {
		return id.Email
	}
	return defaultDisplayName
}

// FirstName is the first token of the full name, used for greetings.
func (id Identity) FirstName() string {
	if fields := strings.Fields(id.FullName); len(fields) > 0 {
		return fields[0]
	}
	return defaultDisplayName
}

type ctxKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the signed-in Identity, or a zero Identity if there is none.
func FromContext(ctx context.Context) Identity {
	if ctx == nil {
		return Identity{}
	}
	id, _ := ctx.Value(ctxKey{}).(Identity)
	return id
}
