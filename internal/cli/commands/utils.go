package commands

// Helper functions shared across commands

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kutbudev/lifedeck-cli/internal/api"
	"github.com/kutbudev/lifedeck-cli/internal/config"
	"github.com/kutbudev/lifedeck-cli/internal/store"
)

// newSession builds a store session for the signed-in user.
func newSession() (*store.Session, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.APIKey == "" || cfg.UserID == "" {
		return nil, fmt.Errorf("not signed in; run 'lifedeck setup' first")
	}
	userID, err := uuid.Parse(cfg.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id in config: %w", err)
	}
	return store.NewSession(api.NewClient(), userID), nil
}

// storeIDs collects the ids of every cached item in a store.
func storeIDs[T store.Entity](s *store.Store[T]) []uuid.UUID {
	items := s.Items()
	ids := make([]uuid.UUID, len(items))
	for i, item := range items {
		ids[i] = item.EntityID()
	}
	return ids
}

// matchID resolves a full or prefix id against a set of candidates, so
// commands accept the 8-char ids the list views print.
func matchID(arg string, ids []uuid.UUID) (uuid.UUID, error) {
	if id, err := uuid.Parse(arg); err == nil {
		return id, nil
	}
	prefix := strings.ToLower(arg)
	var found []uuid.UUID
	for _, id := range ids {
		if strings.HasPrefix(id.String(), prefix) {
			found = append(found, id)
		}
	}
	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		return uuid.Nil, fmt.Errorf("no match for id %q", arg)
	default:
		return uuid.Nil, fmt.Errorf("id %q is ambiguous (%d matches)", arg, len(found))
	}
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
