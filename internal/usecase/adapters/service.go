package adapters

import (
	"context"
	"xpath-finder/internal/entity"
)

type FinderService interface {
	FindLocator(ctx context.Context, url, hint, elementType string, resultCount int) ([]entity.Candidate, error)
	FindLocators(ctx context.Context, url string, hints []string, resultCount int) (map[string][]entity.Candidate, error)
}

type BrowserService interface {
	Launch(ctx context.Context) error
	Close(ctx context.Context) error
	Sessions() []entity.SessionInfo
	IsReady() bool
}
