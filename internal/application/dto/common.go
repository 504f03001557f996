package dto

// ErrorResponse respuesta de error estándar de la API.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// CapacityErrorResponse respuesta 422 al violar el techo de capacidad de un activo.
// Los nombres de campo son contrato: current_count y max_quantity.
type CapacityErrorResponse struct {
	Message      string `json:"message"`
	CurrentCount int    `json:"current_count"`
	MaxQuantity  int    `json:"max_quantity"`
}

// PageResponse metadatos de paginación.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// MessageResponse respuesta simple con mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}
