package analytics

import "math"

// Round — округление до ближайшего целого, половина вверх.
func Round(x float64) int {
	return int(math.Floor(x + 0.5))
}

// Percent — round(100*part/total); при total == 0 результат 0.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return Round(100 * float64(part) / float64(total))
}

// Ratio — round(a/b); при b == 0 результат 0.
func Ratio(a, b int) int {
	if b <= 0 {
		return 0
	}
	return Round(float64(a) / float64(b))
}
