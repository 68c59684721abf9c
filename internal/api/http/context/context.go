package context

import (
	"context"

	"github.com/dtroode/tasktracker-server/internal/model"
)

type tokenDataKey struct{}

// Manager stores the verified token identity in a request context.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetTokenDataToContext returns a copy of ctx carrying data.
func (m *Manager) SetTokenDataToContext(ctx context.Context, data model.TokenData) context.Context {
	return context.WithValue(ctx, tokenDataKey{}, data)
}

// GetTokenDataFromContext returns the identity set by SetTokenDataToContext.
// It reports false when the request was not authenticated.
func (m *Manager) GetTokenDataFromContext(ctx context.Context) (model.TokenData, bool) {
	data, ok := ctx.Value(tokenDataKey{}).(model.TokenData)
	return data, ok
}
