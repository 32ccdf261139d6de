package utils

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Round2 rounds x to 2 decimal places (banking-style simple round).
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

var trPrinter = message.NewPrinter(language.Turkish)

// FormatEUR renders a money value with Turkish number conventions and the
// euro sign, e.g. 12345.6 -> "12.345,60 €".
func FormatEUR(x float64) string {
	return trPrinter.Sprintf("%.2f €", Round2(x))
}
