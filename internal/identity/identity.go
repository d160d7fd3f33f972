// Package identity resolves who is editing a CV. Identities come from an
// external provider as signed tokens; requests without one act as the guest.
package identity

import (
	"context"

	"github.com/jonathan/resume-builder/internal/cvdata"
)

// Identity is the signed-in user, or the guest when UserID is empty
type Identity struct {
	UserID      string `json:"userId,omitempty"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}

// Guest returns the anonymous identity
func Guest() Identity {
	return Identity{}
}

// IsGuest reports whether no user is signed in
func (i Identity) IsGuest() bool {
	return i.UserID == ""
}

// StorageUID returns the uid used to build the storage key
func (i Identity) StorageUID() string {
	if i.IsGuest() {
		return cvdata.GuestUID
	}
	return i.UserID
}

type contextKey struct{}

// WithIdentity returns a copy of ctx carrying id
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity stored in ctx, or the guest
func FromContext(ctx context.Context) Identity {
	if id, ok := ctx.Value(contextKey{}).(Identity); ok {
		return id
	}
	return Guest()
}
