// Package money formatea importes y cantidades para reportes (PDF/XLSX) con
// separadores de miles según la configuración regional de la agencia.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Symbol es el prefijo de moneda usado en los reportes.
const Symbol = "Rs."

// Formatter formatea importes con la configuración regional indicada.
type Formatter struct {
	p *message.Printer
}

// NewFormatter construye el formatter. Una etiqueta inválida cae a inglés.
func NewFormatter(tag string) *Formatter {
	t, err := language.Parse(tag)
	if err != nil {
		t = language.English
	}
	return &Formatter{p: message.NewPrinter(t)}
}

// Amount devuelve el importe con dos decimales y separador de miles, ej. "1,234.50".
func (f *Formatter) Amount(d decimal.Decimal) string {
	return f.p.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

// WithSymbol antepone el símbolo de moneda; los negativos llevan el signo delante.
func (f *Formatter) WithSymbol(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + Symbol + " " + f.Amount(d.Abs())
	}
	return Symbol + " " + f.Amount(d)
}

// Quantity formatea cantidades enteras de cilindros.
func (f *Formatter) Quantity(n int) string {
	return f.p.Sprintf("%d", n)
}
