package sheet

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/Daniel-dg-conta1/math-Suite/trig"
)

// Supported sheet languages. English strings are the message keys.
var supported = []language.Tag{language.English, language.BrazilianPortuguese}

var matcher = language.NewMatcher(supported)

// dateLayout is itself translated so each language picks its own order.
const dateLayout = "01/02/2006"

func init() {
	pt := language.BrazilianPortuguese
	for _, m := range []struct{ key, msg string }{
		{"Exercise List", "Lista de Exercícios"},
		{"Answer Key", "Gabarito Oficial"},
		{"Exercise List - Trigonometry", "Lista de Exercícios - Trigonometria"},
		{"Answer Key - Trigonometry", "Gabarito - Trigonometria"},
		{"Date: %s", "Data: %s"},
		{dateLayout, "02/01/2006"},
		{"Question %d", "Questão %d"},
		{"Question %d (%s)", "Questão %d (%s)"},
		{"Q%d (%s)", "Q%d (%s)"},
		{"Find the resultant vector (R) of the system.", "Determine o vetor resultante (R) do sistema."},
		{"Find the missing vector (Vf) for equilibrium.", "Determine o vetor faltante (Vf) para o equilíbrio."},
		{"Space for calculations:", "Espaço para cálculos:"},
		{"Space for calculations", "Espaço para cálculos"},
		{"Answer: %s = (%s; %s)   |%s| = %s   angle = %s°", "Resposta: %s = (%s; %s)   |%s| = %s   ângulo = %s°"},
		{"Given: %s", "Dados: %s"},
		{"Find the remaining sides and angles.", "Calcule os lados e ângulos restantes."},
		{"Complete Solution:", "Solução Completa:"},
		{"Angle %s = %s°", "Âng. %s = %s°"},
		{"Area = %s", "Área = %s"},
		{"Perimeter = %s", "Perímetro = %s"},
		{"Ans: a=%s, b=%s, c=%s", "Resp: a=%s, b=%s, c=%s"},
		{"Angles: A=%s°, B=%s°, C=%s°", "Ângs: A=%s°, B=%s°, C=%s°"},
		{"Area: %s", "Área: %s"},
		{"Side-Side-Side", "Lado-Lado-Lado"},
		{"Side-Angle-Side", "Lado-Ângulo-Lado"},
		{"Angle-Side-Angle", "Ângulo-Lado-Ângulo"},
		{"Angle-Angle-Side", "Lado-Ângulo-Ângulo"},
		{"Right Triangle", "Triângulo Retângulo"},
	} {
		if err := message.SetString(pt, m.key, m.msg); err != nil {
			panic(err)
		}
	}
}

// Locale translates sheet text and formats numbers with the language's
// decimal separator.
type Locale struct {
	Tag language.Tag
	p   *message.Printer
}

// NewLocale returns the closest supported locale for tag.
func NewLocale(tag language.Tag) Locale {
	_, idx, _ := matcher.Match(tag)
	t := supported[idx]
	return Locale{Tag: t, p: message.NewPrinter(t)}
}

// ParseLocale parses a BCP 47 tag such as "pt-BR" or "en".
func ParseLocale(s string) (Locale, error) {
	tag, err := language.Parse(s)
	if err != nil {
		return Locale{}, err
	}
	return NewLocale(tag), nil
}

// T translates a message key and applies args.
func (l Locale) T(key string, args ...any) string {
	return l.p.Sprintf(key, args...)
}

// Date formats d in the locale's short date order.
func (l Locale) Date(d time.Time) string {
	return d.Format(l.p.Sprintf(dateLayout))
}

// Number formats a vector value: "0" near zero, integers as is, three
// decimals below 1 and one decimal otherwise.
func (l Locale) Number(v float64) string {
	switch {
	case v > -0.00001 && v < 0.00001:
		return "0"
	case v == float64(int64(v)):
		return l.p.Sprintf("%v", number.Decimal(v, number.NoSeparator()))
	case v > -1 && v < 1:
		return l.decimal(v, 3)
	default:
		return l.decimal(v, 1)
	}
}

// Fixed formats a triangle value: three decimals below 1, one otherwise,
// keeping trailing zeros.
func (l Locale) Fixed(v float64) string {
	if v > -1 && v < 1 {
		return l.decimal(v, 3)
	}
	return l.decimal(v, 1)
}

func (l Locale) decimal(v float64, places int) string {
	return l.p.Sprintf("%v", number.Decimal(v, number.Scale(places), number.NoSeparator()))
}

// CaseName is the long name of a triangle case.
func (l Locale) CaseName(c trig.Case) string {
	switch c {
	case trig.SSS:
		return l.T("Side-Side-Side")
	case trig.SAS:
		return l.T("Side-Angle-Side")
	case trig.ASA:
		return l.T("Angle-Side-Angle")
	case trig.AAS:
		return l.T("Angle-Angle-Side")
	case trig.Right:
		return l.T("Right Triangle")
	}
	return c.String()
}
