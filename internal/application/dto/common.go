package dto

// PageRequest paginación y búsqueda para listados.
type PageRequest struct {
	Page   int    `query:"page"`
	Size   int    `query:"size"`
	Search string `query:"search"`
}

// PageResponse página de resultados.
type PageResponse[T any] struct {
	Items         []T `json:"items"`
	Page          int `json:"page"`
	Size          int `json:"size"`
	TotalPages    int `json:"totalPages"`
	TotalElements int `json:"totalElements"`
}

// ErrorResponse cuerpo de error HTTP. Details lleva los errores por campo en validaciones.
type ErrorResponse struct {
	Code      string              `json:"code"`
	Message   string              `json:"message"`
	Details   map[string][]string `json:"details,omitempty"`
	RequestID string              `json:"requestId,omitempty"`
}

// ValidationResponse resultado de validar un formulario sin enviarlo.
type ValidationResponse struct {
	Valid  bool                `json:"valid"`
	Fields map[string][]string `json:"fields,omitempty"`
}

// IDResponse respuesta mínima tras una baja o acción sin cuerpo.
type IDResponse struct {
	ID int64 `json:"id"`
}
