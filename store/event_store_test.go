package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInsertRejectsLoopbackURL(t *testing.T) {
	// Validation runs before any storage round trip, so no database is
	// needed to exercise the rejection path.
	s := NewEventStore(nil, zap.NewNop())

	for _, raw := range []string{
		"http://localhost:3000/x",
		"http://127.0.0.1/page",
		"http://[::1]:5775/",
	} {
		_, err := s.Insert(context.Background(), raw, nil, "enter", "01A")
		require.ErrorIs(t, err, ErrValidation, "url %q must be rejected", raw)
	}
}
