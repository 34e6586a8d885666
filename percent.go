package eraser

import (
	"fmt"
	"strconv"
)

// FormatPercentage formats the erased percentage with exactly two fractional digits.
func FormatPercentage(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64)
}

// displayText returns the text shown by the percentage display.
func displayText(p string) string {
	return fmt.Sprintf("Erased: %s%%", p)
}

// reached reports whether the formatted percentage has crossed the threshold.
// The comparison is made on the displayed value, so 49.996 already counts as 50.00.
func reached(p string, threshold float64) bool {
	v, err := strconv.ParseFloat(p, 64)
	return err == nil && v >= threshold
}
