package entity

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout es el formato de fecha que intercambia el backend ("2006-01-02").
const DateLayout = "2006-01-02"

// Date fecha contable sin hora. Acepta "2006-01-02" o RFC3339 al decodificar y
// siempre se codifica como "2006-01-02".
type Date struct {
	time.Time
}

// NewDate construye una Date a partir de año, mes y día (UTC).
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate interpreta "2006-01-02" o RFC3339.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Date{Time: t}, nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{Time: t}, nil
		}
	}
	return Date{}, fmt.Errorf("fecha inválida %q", s)
}

// String devuelve la fecha en formato "2006-01-02" (vacío si es cero).
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// MarshalJSON codifica como "2006-01-02" o null.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateLayout))
}

// UnmarshalJSON acepta string o null.
func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("fecha: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
