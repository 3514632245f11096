package finder

import (
	"fmt"
	"regexp"
	"strings"
	"xpath-finder/internal/entity"
	"xpath-finder/internal/match"
	"xpath-finder/pkg/logg"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

const (
	elementReadTimeout = 1000
	maxElementTextLen  = 200

	fuzzyDefaultSelector = "button, a, input, label, span, div, h1, h2, h3, p, li"
)

// matchableAttributes is the fixed scan order for the attribute strategy.
var matchableAttributes = []string{
	"id", "name", "class", "data-testid", "aria-label",
	"placeholder", "title", "value", "alt",
}

type nativeAttempt struct {
	strategy string
	base     float64
	locate   func() playwright.Locator
}

// findViaNative tries the driver's semantic query primitives in priority
// order. Each attempt that resolves to at least one node contributes one
// candidate built from the first match.
func (f *Finder) findViaNative(logger *zap.Logger, page playwright.Page, searchText, elementType string) []entity.Candidate {
	insensitive := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(searchText))

	attempts := []nativeAttempt{
		{entity.StrategyText, textBaseConfidence, func() playwright.Locator {
			return page.GetByText(searchText)
		}},
	}

	if elementType != "*" {
		attempts = append(attempts, nativeAttempt{entity.StrategyRole, roleBaseConfidence, func() playwright.Locator {
			return page.GetByRole(playwright.AriaRole(elementType), playwright.PageGetByRoleOptions{
				Name: insensitive,
			})
		}})
	}

	attempts = append(attempts,
		nativeAttempt{entity.StrategyLabel, labelBaseConfidence, func() playwright.Locator {
			return page.GetByLabel(insensitive)
		}},
		nativeAttempt{entity.StrategyPlaceholder, placeholderBaseConfidence, func() playwright.Locator {
			return page.GetByPlaceholder(insensitive)
		}},
	)

	var candidates []entity.Candidate

	for _, attempt := range attempts {
		locator := attempt.locate()

		count, err := locator.Count()
		if err != nil {
			logger.Debug("Native query failed", zap.String(logg.Strategy, attempt.strategy), zap.Error(err))

			continue
		}
		if count == 0 {
			continue
		}

		info, err := describeElement(locator.First())
		if err != nil || info.Empty() {
			if err != nil {
				logger.Debug("Synthesis failed", zap.String(logg.Strategy, attempt.strategy), zap.Error(err))
			}

			continue
		}

		sim := match.Similarity(searchText, info.Text)
		confidence := nativeConfidence(attempt.base, sim, info.Text != "", count)

		candidates = append(candidates, info.Candidate(confidence, attempt.strategy))
	}

	return candidates
}

// findViaFuzzyText scans text-bearing elements and scores their trimmed
// inner text against the hint, accepting similarities of 0.5 and up.
func (f *Finder) findViaFuzzyText(logger *zap.Logger, page playwright.Page, searchText, elementType string) []entity.Candidate {
	selector := elementType
	if selector == "*" {
		selector = fuzzyDefaultSelector
	}

	elements, err := page.Locator(selector).All()
	if err != nil {
		logger.Debug("Fuzzy text enumeration failed", zap.Error(err))

		return nil
	}

	if limit := f.config.FinderConfig.MaxTextElements; len(elements) > limit {
		elements = elements[:limit]
	}

	var candidates []entity.Candidate

	for _, el := range elements {
		text, err := el.InnerText(playwright.LocatorInnerTextOptions{
			Timeout: playwright.Float(elementReadTimeout),
		})
		if err != nil {
			continue
		}

		text = strings.TrimSpace(text)
		if text == "" || len(text) > maxElementTextLen {
			continue
		}

		sim := match.Similarity(searchText, text)
		if sim < fuzzyMinSimilarity {
			continue
		}

		info, err := describeElement(el)
		if err != nil || info.Empty() {
			continue
		}

		candidates = append(candidates, info.Candidate(fuzzyConfidence(sim), entity.StrategyFuzzyText))
	}

	return candidates
}

// findViaAttributes compares the hint against identifier-like attribute
// values using separator-insensitive similarity.
func (f *Finder) findViaAttributes(logger *zap.Logger, page playwright.Page, searchText, elementType string) []entity.Candidate {
	var candidates []entity.Candidate

	for _, attr := range matchableAttributes {
		elements, err := page.Locator(fmt.Sprintf("%s[%s]", elementType, attr)).All()
		if err != nil {
			logger.Debug("Attribute enumeration failed", zap.String(logg.Attribute, attr), zap.Error(err))

			continue
		}

		if limit := f.config.FinderConfig.MaxAttrElements; len(elements) > limit {
			elements = elements[:limit]
		}

		for _, el := range elements {
			value, err := el.GetAttribute(attr, playwright.LocatorGetAttributeOptions{
				Timeout: playwright.Float(elementReadTimeout),
			})
			if err != nil || value == "" {
				continue
			}

			sim := match.IDSimilarity(searchText, value)
			if sim < attrMinSimilarity {
				continue
			}

			info, err := describeElement(el)
			if err != nil || info.Empty() {
				continue
			}

			candidates = append(candidates, info.Candidate(attrConfidence(attr, sim), entity.StrategyAttributePrefix+attr))
		}
	}

	return candidates
}
