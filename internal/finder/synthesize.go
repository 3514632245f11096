package finder

import (
	"fmt"
	"xpath-finder/internal/entity"

	"github.com/playwright-community/playwright-go"
)

// describeElement runs the locator synthesis script against a single
// element and decodes the result. Failures bubble up to the caller,
// which treats them as zero contribution.
func describeElement(loc playwright.Locator) (entity.ElementInfo, error) {
	result, err := loc.Evaluate(locatorScript(), nil)
	if err != nil {
		return entity.ElementInfo{}, fmt.Errorf("locator synthesis failed: %w", err)
	}

	resultMap, ok := result.(map[string]interface{})
	if !ok {
		return entity.ElementInfo{}, fmt.Errorf("unexpected synthesis result type %T", result)
	}

	info := entity.ElementInfo{
		Locator:    getString(resultMap, "xpath"),
		MatchCount: getInt(resultMap, "matchCount"),
		Tag:        getString(resultMap, "tag"),
		Text:       getString(resultMap, "text"),
		CSS:        getString(resultMap, "css"),
		Attributes: make(map[string]string),
	}

	if attrs, ok := resultMap["attributes"].(map[string]interface{}); ok {
		for k, v := range attrs {
			if str, ok := v.(string); ok {
				info.Attributes[k] = str
			}
		}
	}

	return info, nil
}

func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}

	return ""
}

func getInt(m map[string]interface{}, key string) int {
	if v, ok := m[key].(int); ok {
		return v
	}

	if v, ok := m[key].(float64); ok {
		return int(v)
	}

	return 0
}
