package provider

import (
	"math"
	"strconv"
	"strings"

	"yieldcurve/internal/domain"

	"github.com/tidwall/gjson"
)

// placeholders are the non-numeric markers providers publish for missing days.
var placeholders = map[string]struct{}{
	"":     {},
	".":    {},
	"NAN":  {},
	"N/A":  {},
	"NA":   {},
	"NULL": {},
}

// parseYield parses a provider value; placeholders and non-finite numbers are absent.
func parseYield(raw string) (domain.Yield, bool) {
	v := strings.TrimSpace(raw)
	if _, skip := placeholders[strings.ToUpper(v)]; skip {
		return domain.AbsentYield(), false
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return domain.AbsentYield(), false
	}
	return domain.SomeYield(n), true
}

// yieldFromJSON accepts both numeric and quoted numeric JSON values.
func yieldFromJSON(v gjson.Result) (domain.Yield, bool) {
	switch v.Type {
	case gjson.Number:
		n := v.Float()
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return domain.AbsentYield(), false
		}
		return domain.SomeYield(n), true
	case gjson.String:
		return parseYield(v.Str)
	default:
		return domain.AbsentYield(), false
	}
}
