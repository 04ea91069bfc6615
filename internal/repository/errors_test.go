package repository

import (
	"fmt"
	"testing"

	"github.com/Domenick1991/hoteldesk/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	t.Run("Nil", func(t *testing.T) {
		assert.NoError(t, translate(nil, "client"))
	})

	t.Run("NoRows", func(t *testing.T) {
		err := translate(pgx.ErrNoRows, "room")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.EqualError(t, err, "room not found")
	})

	t.Run("KnownUniqueConstraint", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "clients_email_key"}
		err := translate(fmt.Errorf("insert: %w", pgErr), "client")
		assert.ErrorIs(t, err, domain.ErrIntegrity)
		assert.EqualError(t, err, "a client with this email already exists")
		assert.ErrorIs(t, domain.AsBusinessRule(err), domain.ErrBusinessRule)
	})

	t.Run("UnknownUniqueConstraint", func(t *testing.T) {
		err := translate(&pgconn.PgError{Code: "23505", ConstraintName: "other"}, "payment")
		assert.EqualError(t, err, "payment violates a uniqueness constraint")
	})

	t.Run("ForeignKey", func(t *testing.T) {
		err := translate(&pgconn.PgError{Code: "23503"}, "room")
		assert.Equal(t, domain.KindIntegrity, domain.KindOf(err))
	})

	t.Run("PassThrough", func(t *testing.T) {
		err := translate(assert.AnError, "stay")
		assert.Same(t, assert.AnError, err)
	})
}

func TestNewRepositories(t *testing.T) {
	pool := &pgxpool.Pool{}
	repos := NewRepositories(pool)
	assert.NotNil(t, repos.Clients)
	assert.NotNil(t, repos.Rooms)
	assert.NotNil(t, repos.Reservations)
	assert.NotNil(t, repos.Stays)
	assert.NotNil(t, repos.Payments)
	assert.NotNil(t, repos.Extras)
	assert.NotNil(t, repos.LineItems)
	assert.NotNil(t, repos.Staff)

	store := NewStore(pool)
	assert.NotNil(t, store.Reservations)
}
