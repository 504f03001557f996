package dto

import "github.com/jhoicas/Activos-api/internal/domain/entity"

// CreateBorrowingRequest body para POST /api/borrowings.
// Exactamente uno de user_id/borrower_name y exactamente uno de
// asset_serial_id/computer_id. Fechas como "YYYY-MM-DD".
type CreateBorrowingRequest struct {
	UserID       *string `json:"user_id,omitempty"`
	BorrowerName *string `json:"borrower_name,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`

	AssetSerialID *string `json:"asset_serial_id,omitempty"`
	ComputerID    *string `json:"computer_id,omitempty"`

	BorrowDate         string  `json:"borrow_date"`
	ExpectedReturnDate string  `json:"expected_return_date"`
	Status             *string `json:"status,omitempty"`
	Remarks            string  `json:"remarks,omitempty"`
}

// UpdateBorrowingRequest body para PUT /api/borrowings/:id. Mismas reglas que la
// creación; el único cambio de estado permitido por esta vía es pending -> borrowed
// (idéntico a Approve). Los demás cambios de estado van por el override administrativo.
type UpdateBorrowingRequest struct {
	UserID       *string `json:"user_id,omitempty"`
	BorrowerName *string `json:"borrower_name,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`

	AssetSerialID *string `json:"asset_serial_id,omitempty"`
	ComputerID    *string `json:"computer_id,omitempty"`

	BorrowDate         string  `json:"borrow_date"`
	ExpectedReturnDate string  `json:"expected_return_date"`
	ReturnDate         *string `json:"return_date,omitempty"`
	Status             *string `json:"status,omitempty"`
	Remarks            *string `json:"remarks,omitempty"`
}

// ApproveBorrowingRequest body para POST /api/borrowings/:id/approve.
type ApproveBorrowingRequest struct {
	Remarks *string `json:"remarks,omitempty"`
}

// RejectBorrowingRequest body para POST /api/borrowings/:id/reject. Remarks obligatorio.
type RejectBorrowingRequest struct {
	Remarks string `json:"remarks"`
}

// ReturnBorrowingRequest body para POST /api/borrowings/:id/return.
type ReturnBorrowingRequest struct {
	ReturnDate string  `json:"return_date"`
	Remarks    *string `json:"remarks,omitempty"`
}

// OverrideBorrowingRequest body para POST /api/borrowings/:id/override.
// Transición administrativa nombrada: única vía hacia "lost".
type OverrideBorrowingRequest struct {
	Status  string  `json:"status"`
	Remarks *string `json:"remarks,omitempty"`
}

// BorrowingResponse respuesta de préstamo con los tres campos derivados de lectura.
type BorrowingResponse struct {
	ID           string  `json:"id"`
	UserID       *string `json:"user_id"`
	BorrowerName *string `json:"borrower_name"`
	DepartmentID *string `json:"department_id"`

	OriginDepartmentID *string `json:"origin_department_id"`

	AssetSerialID *string `json:"asset_serial_id"`
	ComputerID    *string `json:"computer_id"`

	BorrowDate         string  `json:"borrow_date"`
	ExpectedReturnDate string  `json:"expected_return_date"`
	ReturnDate         *string `json:"return_date"`

	Status  string `json:"status"`
	Remarks string `json:"remarks,omitempty"`

	DaysBorrowed int  `json:"days_borrowed"`
	IsOverdue    bool `json:"is_overdue"`
	DaysOverdue  int  `json:"days_overdue"`

	Histories []BorrowingHistoryResponse `json:"histories,omitempty"`
}

// BorrowingHistoryResponse fila del historial de un préstamo.
type BorrowingHistoryResponse struct {
	ID          string           `json:"id"`
	BorrowingID string           `json:"borrowing_id"`
	UserID      *string          `json:"user_id"`
	Action      string           `json:"action"`
	OldStatus   *string          `json:"old_status"`
	NewStatus   *string          `json:"new_status"`
	Notes       string           `json:"notes,omitempty"`
	Changes     entity.ChangeSet `json:"changes,omitempty"`
	CreatedAt   string           `json:"created_at"`
}

// BorrowingListResponse listado paginado de préstamos.
type BorrowingListResponse struct {
	Items []BorrowingResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
