package dto

// CreateSerialRequest body para POST /api/asset-serials.
// Si asset_tag viene vacío se genera uno: prefijo de 3 caracteres del nombre
// del activo + secuencia durable de 4 dígitos (PREFIX-NNNN).
type CreateSerialRequest struct {
	AssetID      string  `json:"asset_id"`
	SerialNumber string  `json:"serial_number"`
	AssetTag     *string `json:"asset_tag,omitempty"`
	Condition    string  `json:"condition,omitempty"`
	Status       *string `json:"status,omitempty"`
	AssignedTo   string  `json:"assigned_to,omitempty"`
	Notes        string  `json:"notes,omitempty"`

	LastMaintenanceDate *string `json:"last_maintenance_date,omitempty"`
	NextMaintenanceDate *string `json:"next_maintenance_date,omitempty"`
}

// UpdateSerialRequest body para PUT /api/asset-serials/:id.
type UpdateSerialRequest struct {
	AssetID      string  `json:"asset_id"`
	SerialNumber string  `json:"serial_number"`
	AssetTag     *string `json:"asset_tag,omitempty"`
	Condition    *string `json:"condition,omitempty"`
	Status       *string `json:"status,omitempty"`
	AssignedTo   *string `json:"assigned_to,omitempty"`
	Notes        *string `json:"notes,omitempty"`

	LastMaintenanceDate *string `json:"last_maintenance_date,omitempty"`
	NextMaintenanceDate *string `json:"next_maintenance_date,omitempty"`
}

// SerialResponse respuesta de unidad serializada.
// EffectiveStatus se deriva en lectura: in_use si hay un préstamo abierto
// sobre la unidad, si no el estado almacenado. El motor de préstamos nunca
// escribe el estado almacenado.
type SerialResponse struct {
	ID              string `json:"id"`
	AssetID         string `json:"asset_id"`
	SerialNumber    string `json:"serial_number"`
	AssetTag        string `json:"asset_tag"`
	Condition       string `json:"condition,omitempty"`
	Status          string `json:"status"`
	EffectiveStatus string `json:"effective_status"`
	AssignedTo      string `json:"assigned_to,omitempty"`
	Notes           string `json:"notes,omitempty"`

	LastMaintenanceDate *string `json:"last_maintenance_date,omitempty"`
	NextMaintenanceDate *string `json:"next_maintenance_date,omitempty"`
}

// SerialListResponse listado paginado de unidades.
type SerialListResponse struct {
	Items []SerialResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
