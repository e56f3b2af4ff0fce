// Package devtoken accepts "dev-<uid>" bearer tokens so the API can run
// against the in-memory store without a Firebase project.
package devtoken

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/scouting-platform/internal/domain/user"
	"github.com/riskibarqy/scouting-platform/internal/usecase"
)

const Prefix = "dev-"

type Verifier struct {
	users map[string]user.Principal
}

// NewVerifier resolves known users to their seeded name and email; any other
// uid still verifies with an empty profile.
func NewVerifier(known []user.User) *Verifier {
	users := make(map[string]user.Principal, len(known))
	for _, u := range known {
		users[u.ID] = user.Principal{UserID: u.ID, Email: u.Email, Name: u.Name}
	}
	return &Verifier{users: users}
}

func (v *Verifier) VerifyIDToken(_ context.Context, raw string) (user.Principal, error) {
	raw = strings.TrimSpace(raw)
	uid, ok := strings.CutPrefix(raw, Prefix)
	if !ok || strings.TrimSpace(uid) == "" {
		return user.Principal{}, fmt.Errorf("%w: expected a %s<uid> token", usecase.ErrUnauthorized, Prefix)
	}

	if p, found := v.users[uid]; found {
		return p, nil
	}
	return user.Principal{UserID: uid}, nil
}
