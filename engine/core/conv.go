package core

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// CleanCell renders a raw sheet cell as a trimmed string. Numeric cells are
// formatted without a trailing ".0"; nil yields the empty string.
func CleanCell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

// ParseFlexibleBool coerces the mixed boolean representations found in sheet
// cells: bool true, the string "true" (any case), or numeric 1. Everything
// else is false. An absent or blank cell yields defaultWhenAbsent, which the
// call site must state explicitly since the variants disagree on it.
func ParseFlexibleBool(v any, defaultWhenAbsent bool) bool {
	switch t := v.(type) {
	case nil:
		return defaultWhenAbsent
	case bool:
		return t
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return defaultWhenAbsent
		}
		return strings.EqualFold(s, "true") || s == "1"
	case int:
		return t == 1
	case int64:
		return t == 1
	case float64:
		return t == 1
	default:
		return false
	}
}

// ParseDecimal coerces a cell to a decimal amount, defaulting to zero when
// the cell is absent or fails to parse. Malformed cells are never an error.
func ParseDecimal(v any) decimal.Decimal {
	switch t := v.(type) {
	case nil:
		return decimal.Zero
	case float64:
		return decimal.NewFromFloat(t)
	case int:
		return decimal.NewFromInt(int64(t))
	case int64:
		return decimal.NewFromInt(t)
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return decimal.Zero
		}
		// Sheets sometimes carry currency noise like "$1,234.50".
		s = strings.ReplaceAll(strings.TrimPrefix(s, "$"), ",", "")
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// ParseSortRank coerces a cell to an integer sort rank, defaulting to zero.
func ParseSortRank(v any) int {
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0
		}
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f)
		}
		return 0
	default:
		return 0
	}
}
