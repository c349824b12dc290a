package detect

import (
	"strconv"
	"strings"
)

// parseMoneyPence turns a human-authored cost cell into integer pence.
// Currency symbols and thousands separators are tolerated; fractions
// beyond two places round half away from zero.
func parseMoneyPence(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	for _, symbol := range []string{"£", "$", "€", "GBP", "gbp"} {
		s = strings.ReplaceAll(s, symbol, "")
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, false
	}

	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	pounds, err := strconv.Atoi(whole)
	if err != nil {
		return 0, false
	}

	pence := pounds * 100
	if frac != "" {
		for _, r := range frac {
			if r < '0' || r > '9' {
				return 0, false
			}
		}
		switch {
		case len(frac) == 1:
			pence += int(frac[0]-'0') * 10
		default:
			pence += int(frac[0]-'0')*10 + int(frac[1]-'0')
			if len(frac) > 2 && frac[2] >= '5' {
				pence++
			}
		}
	}

	if negative {
		pence = -pence
	}
	return pence, true
}
