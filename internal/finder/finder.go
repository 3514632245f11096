package finder

import (
	"context"
	"errors"
	"xpath-finder/internal/config"
	"xpath-finder/internal/entity"
	"xpath-finder/internal/ports"
	"xpath-finder/pkg/apperr"
	"xpath-finder/pkg/logg"
	"xpath-finder/pkg/tracing"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	finderName   = "LocatorFinder"
	finderTracer = "finder.discovery"
)

// Finder turns a free-text hint into a ranked list of locator candidates
// by running the three discovery strategies against one page session.
type Finder struct {
	config  *config.Config
	logger  *zap.Logger
	tracer  trace.Tracer
	browser ports.SessionManager
}

type Params struct {
	fx.In

	Config  *config.Config
	Logger  *zap.Logger
	Browser ports.SessionManager
}

func NewFinder(params Params) *Finder {
	return &Finder{
		config:  params.Config,
		logger:  params.Logger.With(zap.String(logg.Layer, finderName)),
		tracer:  otel.Tracer(finderTracer),
		browser: params.Browser,
	}
}

// FindLocator resolves url, runs all strategies for hint and returns the
// top resultCount candidates ordered by confidence. An empty result is a
// valid outcome, not an error.
func (f *Finder) FindLocator(ctx context.Context, url, hint, elementType string, resultCount int) (candidates []entity.Candidate, err error) {
	const op = "FindLocator"
	logger := f.logger.With(
		zap.String(logg.Operation, op),
		zap.String(logg.RequestID, uuid.New().String()),
		zap.String(logg.URL, url),
		zap.String(logg.Hint, hint),
	)

	ctx, step := tracing.StartSpan(ctx, f.tracer, logger, op,
		attribute.String("url", url),
		attribute.String("hint", hint),
		attribute.String("element_type", elementType))
	defer func() {
		step.End(err)
	}()

	if url == "" {
		return nil, apperr.InvalidReqError(op, "url", errors.New("url cannot be empty"))
	}
	if hint == "" {
		return nil, apperr.InvalidReqError(op, "hint", errors.New("hint cannot be empty"))
	}

	if elementType == "" {
		elementType = "*"
	}
	if resultCount <= 0 {
		resultCount = f.config.FinderConfig.DefaultResultCount
	}

	page, err := f.browser.GetPage(ctx, url)
	if err != nil {
		return nil, apperr.Wrap(op, apperr.CodeBrowserNotReady, err, map[string]any{
			apperr.MetaReason: "page_unavailable",
			apperr.MetaStage:  apperr.StageDiscovery,
			apperr.MetaURL:    url,
		})
	}

	step.AddEvent("page resolved")

	candidates = f.discover(logger, page, parseHint(hint), elementType, resultCount)

	logger.Info("Discovery finished", zap.Int("candidates", len(candidates)))
	step.SetAttributes(attribute.Int("candidates", len(candidates)))

	return candidates, nil
}

// FindLocators is the batch form: the page is loaded once and every hint
// is discovered against the same session.
func (f *Finder) FindLocators(ctx context.Context, url string, hints []string, resultCount int) (results map[string][]entity.Candidate, err error) {
	const op = "FindLocators"
	logger := f.logger.With(
		zap.String(logg.Operation, op),
		zap.String(logg.RequestID, uuid.New().String()),
		zap.String(logg.URL, url),
	)

	ctx, step := tracing.StartSpan(ctx, f.tracer, logger, op,
		attribute.String("url", url),
		attribute.Int("hints", len(hints)))
	defer func() {
		step.End(err)
	}()

	if url == "" {
		return nil, apperr.InvalidReqError(op, "url", errors.New("url cannot be empty"))
	}

	if resultCount <= 0 {
		resultCount = f.config.FinderConfig.BatchResultCount
	}

	page, err := f.browser.GetPage(ctx, url)
	if err != nil {
		return nil, apperr.Wrap(op, apperr.CodeBrowserNotReady, err, map[string]any{
			apperr.MetaReason: "page_unavailable",
			apperr.MetaStage:  apperr.StageDiscovery,
			apperr.MetaURL:    url,
		})
	}

	results = make(map[string][]entity.Candidate, len(hints))

	for _, hint := range hints {
		hintLogger := logger.With(zap.String(logg.Hint, hint))
		step.AddEvent("discovering hint", attribute.String("hint", hint))

		results[hint] = f.discover(hintLogger, page, parseHint(hint), "*", resultCount)
	}

	return results, nil
}

// discover runs the strategies sequentially so candidate ordering stays
// deterministic, then ranks the combined pool.
func (f *Finder) discover(logger *zap.Logger, page playwright.Page, searchText, elementType string, resultCount int) []entity.Candidate {
	var pool []entity.Candidate

	pool = append(pool, f.findViaNative(logger, page, searchText, elementType)...)
	pool = append(pool, f.findViaFuzzyText(logger, page, searchText, elementType)...)
	pool = append(pool, f.findViaAttributes(logger, page, searchText, elementType)...)

	return rankCandidates(pool, resultCount)
}
