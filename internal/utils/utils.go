package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// SanitizeName troca todo caractere que não seja letra ou dígito por '_'.
func SanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// FormatThousands formata um inteiro com separador de milhar (250000 -> "250,000").
func FormatThousands(n int64) string {
	return printer.Sprintf("%d", n)
}
