package adapt

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseCurrency converts an upstream monetary value into a float64. String
// values follow the pt-BR convention where "." separates thousands and ","
// is the decimal mark ("R$ 1.200.000,50" -> 1200000.50). Numbers pass
// through untouched. Anything unparseable resolves to 0; this function
// never fails.
func ParseCurrency(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return finiteOrZero(n)
	case float32:
		return finiteOrZero(float64(n))
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return finiteOrZero(f)
	case string:
		return parseCurrencyString(n)
	default:
		return parseCurrencyString(fmt.Sprint(v))
	}
}

func parseCurrencyString(s string) float64 {
	cleaned := stripCurrencyNoise(s)
	cleaned = stripThousandsDots(cleaned)
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	f, err := strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
	if err != nil {
		return 0
	}
	return finiteOrZero(f)
}

// stripCurrencyNoise drops everything except digits, comma, dot and minus.
func stripCurrencyNoise(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' || r == ',' || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// stripThousandsDots removes each dot followed by exactly three digits and
// then a non-digit or end of string. Those are thousands separators; a dot
// followed by a different digit count is kept as a decimal mark.
func stripThousandsDots(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '.' && isThousandsSeparator(s, i) {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isThousandsSeparator(s string, dot int) bool {
	j := dot + 1
	for ; j < len(s) && j <= dot+3; j++ {
		if s[j] < '0' || s[j] > '9' {
			return false
		}
	}
	if j != dot+4 {
		return false // fewer than three digits follow
	}
	return j == len(s) || s[j] < '0' || s[j] > '9'
}

func finiteOrZero(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
