package ledger

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
)

// EligibleVariants restringe las variantes activas a las configuradas para el cliente.
//
// configured puede ser un arreglo nativo ([1,2]) o un string con JSON ("[1,2]"); los ids pueden
// venir como número o string. Si el campo no existe se ofrecen todas las activas. Si no se puede
// interpretar, también: se prioriza no bloquear la captura. El resultado conserva el orden de
// active y no repite ids.
func EligibleVariants(configured json.RawMessage, active []entity.Variant) []entity.Variant {
	ids, ok := parseConfiguredVariants(configured)
	if !ok {
		return dedupeVariants(active, nil)
	}
	allowed := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		allowed[id] = struct{}{}
	}
	return dedupeVariants(active, allowed)
}

// parseConfiguredVariants devuelve ok=false cuando hay que abrir la lista completa.
func parseConfiguredVariants(raw json.RawMessage) ([]int64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, false
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, false
		}
		s = strings.TrimSpace(s)
		if s == "" || s == "null" {
			return nil, false
		}
		raw = json.RawMessage(s)
	}

	var items []any
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		switch v := it.(type) {
		case float64:
			if v != math.Trunc(v) {
				return nil, false
			}
			ids = append(ids, int64(v))
		case string:
			n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if err != nil {
				return nil, false
			}
			ids = append(ids, n)
		default:
			return nil, false
		}
	}
	return ids, true
}

func dedupeVariants(active []entity.Variant, allowed map[int64]struct{}) []entity.Variant {
	seen := make(map[int64]struct{}, len(active))
	out := make([]entity.Variant, 0, len(active))
	for _, v := range active {
		if _, dup := seen[v.ID]; dup {
			continue
		}
		if allowed != nil {
			if _, ok := allowed[v.ID]; !ok {
				continue
			}
		}
		seen[v.ID] = struct{}{}
		out = append(out, v)
	}
	return out
}
