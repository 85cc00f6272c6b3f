package entity

// Page envoltura de paginación del backend.
type Page[T any] struct {
	Items         []T `json:"items"`
	TotalPages    int `json:"totalPages"`
	TotalElements int `json:"totalElements"`
	Page          int `json:"page"`
	Size          int `json:"size"`
}

// PageQuery parámetros de listado paginado.
type PageQuery struct {
	Page   int
	Size   int
	Search string
}

// Normalize aplica valores por defecto: página 0 y tamaño 20 (máximo 100).
func (q PageQuery) Normalize() PageQuery {
	if q.Page < 0 {
		q.Page = 0
	}
	if q.Size <= 0 {
		q.Size = 20
	}
	if q.Size > 100 {
		q.Size = 100
	}
	return q
}
