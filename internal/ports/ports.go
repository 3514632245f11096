package ports

import (
	"context"
	"xpath-finder/internal/entity"

	"github.com/playwright-community/playwright-go"
)

type SessionManager interface {
	Launch(ctx context.Context) error
	Close(ctx context.Context) error
	GetPage(ctx context.Context, url string) (playwright.Page, error)
	Sessions() []entity.SessionInfo
	IsReady() bool
}

type LocatorFinder interface {
	FindLocator(ctx context.Context, url string, hint string, elementType string, resultCount int) ([]entity.Candidate, error)
	FindLocators(ctx context.Context, url string, hints []string, resultCount int) (map[string][]entity.Candidate, error)
}
