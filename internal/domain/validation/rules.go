// Package validation evalúa formularios con una tabla declarativa de reglas por campo.
//
// Cada regla es una función pura del estado completo del formulario, así que las dependencias
// entre campos (ej. "si hay monto recibido, el modo de pago es obligatorio") se expresan en la
// propia tabla y se reevalúan completas en cada cambio.
package validation

import (
	"sort"
	"strings"

	"github.com/jhoicas/gasagency-backoffice/internal/domain"
)

// Errors errores por campo. Envuelve domain.ErrInvalidInput.
type Errors struct {
	Fields map[string][]string `json:"fields"`
}

// NewErrors construye un contenedor vacío.
func NewErrors() *Errors {
	return &Errors{Fields: make(map[string][]string)}
}

// Add registra un mensaje para el campo.
func (e *Errors) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// Merge incorpora los errores de otro contenedor.
func (e *Errors) Merge(other *Errors) {
	if other == nil {
		return
	}
	for f, msgs := range other.Fields {
		for _, m := range msgs {
			e.Add(f, m)
		}
	}
}

// Empty indica que no hay errores.
func (e *Errors) Empty() bool { return e == nil || len(e.Fields) == 0 }

// OrNil devuelve nil si no hay errores (evita el nil tipado en interfaces error).
func (e *Errors) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *Errors) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+strings.Join(e.Fields[f], ", "))
	}
	return "validación: " + strings.Join(parts, "; ")
}

func (e *Errors) Unwrap() error { return domain.ErrInvalidInput }

// Rule regla de un campo. When (opcional) activa la regla según el estado; Check devuelve el
// mensaje de error o "" si el campo es válido.
type Rule[S any] struct {
	Field string
	When  func(S) bool
	Check func(S) string
}

// Table conjunto de reglas de un formulario.
type Table[S any] []Rule[S]

// Evaluate aplica todas las reglas activas sobre el estado.
func (t Table[S]) Evaluate(state S) *Errors {
	errs := NewErrors()
	for _, r := range t {
		if r.When != nil && !r.When(state) {
			continue
		}
		if msg := r.Check(state); msg != "" {
			errs.Add(r.Field, msg)
		}
	}
	return errs
}
