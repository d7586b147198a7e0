package inventory

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText recorta espacios y lleva el texto a forma NFC, de modo que
// "é" compuesto y "e"+acento combinado se comparen como iguales.
func NormalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func itoa(i int) string { return strconv.Itoa(i) }
