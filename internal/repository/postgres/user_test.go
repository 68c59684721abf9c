package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/dtroode/tasktracker-server/internal/model"
)

func TestNewUserRepository(t *testing.T) {
	db := &Connection{}
	repo := NewUserRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestUserRepository_Structure(t *testing.T) {
	repo := &UserRepository{
		db: nil,
	}

	assert.NotNil(t, repo)
	assert.Nil(t, repo.db)
}

func TestMapConstraintError(t *testing.T) {
	t.Parallel()

	plain := errors.New("connection reset")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "unique violation", err: &pgconn.PgError{Code: uniqueViolation}, want: model.ErrAlreadyExists},
		{name: "wrapped unique violation", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: uniqueViolation}), want: model.ErrAlreadyExists},
		{name: "foreign key violation", err: &pgconn.PgError{Code: foreignKeyViolation}, want: model.ErrNotFound},
		{name: "other pg error", err: &pgconn.PgError{Code: "42P01"}, want: nil},
		{name: "not a pg error", err: plain, want: plain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := mapConstraintError(tt.err)
			if tt.want == nil {
				assert.Equal(t, tt.err, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestConnection_PingNilPool(t *testing.T) {
	c := &Connection{}
	assert.Error(t, c.Ping(t.Context()))
	assert.NoError(t, c.Close())
}
