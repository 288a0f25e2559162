// Package ledger holds the bookkeeping primitives every subsystem shares:
// clamping, money formatting, account movements and bounded histories.
package ledger

import (
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

// Magnitude thresholds for abbreviated money display.
const (
	Thousand = int64(1_000)
	Million  = int64(1_000_000)
	Billion  = int64(1_000_000_000)
)

// FormatMoney abbreviates an amount of roubles: "1.5 млрд ₽", "15 млн ₽",
// "250 тыс ₽", "900 ₽".
func FormatMoney(amount int64) string {
	sign := ""
	abs := amount
	if amount < 0 {
		sign = "-"
		abs = -amount
	}
	switch {
	case abs >= Billion:
		return sign + humanize.FtoaWithDigits(float64(abs)/float64(Billion), 1) + " млрд ₽"
	case abs >= Million:
		return sign + humanize.FtoaWithDigits(float64(abs)/float64(Million), 1) + " млн ₽"
	case abs >= Thousand:
		return sign + humanize.FtoaWithDigits(float64(abs)/float64(Thousand), 1) + " тыс ₽"
	default:
		return sign + strconv.FormatInt(abs, 10) + " ₽"
	}
}

// FormatMoneyFull renders the exact amount with thousands separators.
func FormatMoneyFull(amount int64) string {
	return humanize.Comma(amount) + " ₽"
}

// Round converts a float amount to whole currency units.
func Round(v float64) int64 {
	return int64(math.Round(v))
}

// Percent returns part/whole*100, or 0 when whole is zero.
func Percent(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
