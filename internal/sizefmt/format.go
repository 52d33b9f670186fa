// Package sizefmt renders byte counts for file cards.
package sizefmt

import (
	"fmt"
	"strconv"
)

var units = []string{"KB", "MB", "GB", "TB", "PB"}

// Format returns bytes in the largest unit whose factor (1024^rank) does not
// exceed the value, with two decimals. Below 1024 it falls back to
// "<n> bytes".
func Format(bytes int64) string {
	result := strconv.FormatInt(bytes, 10) + " bytes"

	factor := int64(1024)
	for _, unit := range units {
		if factor > bytes {
			break
		}
		result = fmt.Sprintf("%.2f %s", float64(bytes)/float64(factor), unit)
		factor *= 1024
	}

	return result
}
