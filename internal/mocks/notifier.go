package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/segyhp/shelfmark/internal/domain"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, n domain.NotificationCandidate) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}
