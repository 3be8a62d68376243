package moderation

import (
	"context"
)

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=moderation_repository_mock.go --case=underscore --with-expecter

// Repository is the audit store for verdicts. Every verdict is written on
// creation and updated once when a reviewer acts; records are never deleted.
type Repository interface {
	Create(ctx context.Context, result *Result) error
	Update(ctx context.Context, result *Result) error
	GetByContentID(ctx context.Context, contentID string) ([]Result, error)
}
