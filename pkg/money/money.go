// Package money formatea montos en won coreano (enteros, sin decimales).
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Korean)

// Format devuelve el monto con separador de miles y sufijo de moneda. Ej: 1500000 → "1,500,000원".
func Format(amount int64) string {
	return printer.Sprintf("%d원", amount)
}

// Number devuelve solo la cifra con separador de miles. Ej: 25000 → "25,000".
func Number(n int64) string {
	return printer.Sprintf("%d", n)
}
