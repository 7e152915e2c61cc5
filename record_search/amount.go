package recordsearch

import (
	"regexp"
	"strconv"
	"strings"
)

var amountPattern = regexp.MustCompile(`\$\s?([0-9][0-9,]*(?:\.[0-9]+)?)`)

// ExtractAmount scans content for the first currency-prefixed number and
// returns its value. This is a best-effort enrichment: free text does not
// reliably carry a structured amount, so a record without a recognizable
// token is treated as 0, not excluded.
func ExtractAmount(content string) float64 {
	match := amountPattern.FindStringSubmatch(content)
	if match == nil {
		return 0
	}

	raw := strings.ReplaceAll(match[1], ",", "")

	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}

	return amount
}
