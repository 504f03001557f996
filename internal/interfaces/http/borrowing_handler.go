package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Activos-api/internal/application/borrowing"
	"github.com/jhoicas/Activos-api/internal/application/dto"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

// BorrowingHandler maneja las peticiones HTTP del workflow de préstamos (protegido).
type BorrowingHandler struct {
	uc *borrowing.UseCase
}

// NewBorrowingHandler construye el handler.
func NewBorrowingHandler(uc *borrowing.UseCase) *BorrowingHandler {
	return &BorrowingHandler{uc: uc}
}

// Create godoc
// @Summary      Crear préstamo
// @Description  Si el departamento solicitante difiere del propietario del ítem, el préstamo inicia en pending.
// @Tags         borrowings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBorrowingRequest  true  "Datos del préstamo"
// @Success      201   {object}  dto.BorrowingResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/borrowings [post]
func (h *BorrowingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBorrowingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener préstamo por ID (con campos derivados)
// @Tags         borrowings
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del préstamo"
// @Success      200  {object}  dto.BorrowingResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/borrowings/{id} [get]
func (h *BorrowingHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar préstamos (visibilidad según capacidades del actor)
// @Tags         borrowings
// @Security     Bearer
// @Produce      json
// @Param        status         query  string  false  "Filtrar por estado"
// @Param        user_id        query  string  false  "Filtrar por usuario"
// @Param        department_id  query  string  false  "Filtrar por departamento solicitante"
// @Param        limit          query  int     false  "Límite"   default(20)
// @Param        offset         query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.BorrowingListResponse
// @Router       /api/borrowings [get]
func (h *BorrowingHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	out, err := h.uc.List(c.Context(), GetActor(c), repository.BorrowingFilter{
		Status:       c.Query("status"),
		UserID:       c.Query("user_id"),
		DepartmentID: c.Query("department_id"),
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar préstamo
// @Description  Revalida las reglas de creación y registra el diff en el historial. Único cambio de estado admitido: pending -> borrowed.
// @Tags         borrowings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del préstamo"
// @Param        body  body  dto.UpdateBorrowingRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.BorrowingResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/borrowings/{id} [put]
func (h *BorrowingHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBorrowingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar solicitud (pending -> borrowed)
// @Description  Solo personal del departamento de origen del ítem.
// @Tags         borrowings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del préstamo"
// @Param        body  body  dto.ApproveBorrowingRequest  false  "Remarks opcionales"
// @Success      200   {object}  dto.BorrowingResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/borrowings/{id}/approve [post]
func (h *BorrowingHandler) Approve(c *fiber.Ctx) error {
	var in dto.ApproveBorrowingRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	out, err := h.uc.Approve(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reject godoc
// @Summary      Rechazar solicitud (pending -> rejected)
// @Description  Remarks obligatorio y no vacío.
// @Tags         borrowings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del préstamo"
// @Param        body  body  dto.RejectBorrowingRequest  true  "Motivo del rechazo"
// @Success      200   {object}  dto.BorrowingResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/borrowings/{id}/reject [post]
func (h *BorrowingHandler) Reject(c *fiber.Ctx) error {
	var in dto.RejectBorrowingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Reject(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Return godoc
// @Summary      Devolver ítem (borrowed -> returned)
// @Tags         borrowings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del préstamo"
// @Param        body  body  dto.ReturnBorrowingRequest  true  "Fecha de devolución"
// @Success      200   {object}  dto.BorrowingResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/borrowings/{id}/return [post]
func (h *BorrowingHandler) Return(c *fiber.Ctx) error {
	var in dto.ReturnBorrowingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Return(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Override godoc
// @Summary      Forzar estado (corrección administrativa)
// @Description  Única vía hacia "lost". No permitida desde estados terminales.
// @Tags         borrowings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del préstamo"
// @Param        body  body  dto.OverrideBorrowingRequest  true  "Estado destino"
// @Success      200   {object}  dto.BorrowingResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/borrowings/{id}/override [post]
func (h *BorrowingHandler) Override(c *fiber.Ctx) error {
	var in dto.OverrideBorrowingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Override(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de un préstamo (más reciente primero)
// @Tags         borrowings
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del préstamo"
// @Success      200  {array}  dto.BorrowingHistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/borrowings/{id}/history [get]
func (h *BorrowingHandler) History(c *fiber.Ctx) error {
	out, err := h.uc.History(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar préstamo
// @Description  La auditoría captura el snapshot antes del borrado; el historial se conserva.
// @Tags         borrowings
// @Security     Bearer
// @Param        id  path  string  true  "ID del préstamo"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/borrowings/{id} [delete]
func (h *BorrowingHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetActor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "préstamo eliminado"})
}
