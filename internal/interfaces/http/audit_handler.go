package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Activos-api/internal/application/dto"
	"github.com/jhoicas/Activos-api/internal/application/usecase"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

// AuditHandler maneja la consulta del log de auditoría (protegido).
type AuditHandler struct {
	uc *usecase.AuditUseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *usecase.AuditUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// List godoc
// @Summary      Consultar log de auditoría
// @Tags         audit-logs
// @Security     Bearer
// @Produce      json
// @Param        module      query  string  false  "Filtrar por módulo"
// @Param        action      query  string  false  "Filtrar por acción"
// @Param        user_id     query  string  false  "Filtrar por actor"
// @Param        start_date  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        search      query  string  false  "Texto libre sobre payloads JSON"
// @Param        limit       query  int     false  "Límite"   default(20)
// @Param        offset      query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.AuditLogListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/audit-logs [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	filter := repository.AuditLogFilter{
		Module: c.Query("module"),
		Action: c.Query("action"),
		UserID: c.Query("user_id"),
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	}
	if s := c.Query("start_date"); s != "" {
		t, err := time.Parse(dto.DateLayout, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start_date: formato esperado YYYY-MM-DD"})
		}
		filter.StartDate = &t
	}
	if s := c.Query("end_date"); s != "" {
		t, err := time.Parse(dto.DateLayout, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end_date: formato esperado YYYY-MM-DD"})
		}
		// Inclusivo: hasta el final del día
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &end
	}
	out, err := h.uc.List(c.Context(), GetActor(c), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Modules godoc
// @Summary      Módulos presentes en el log
// @Tags         audit-logs
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/audit-logs/modules [get]
func (h *AuditHandler) Modules(c *fiber.Ctx) error {
	out, err := h.uc.Modules(c.Context(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Actions godoc
// @Summary      Acciones presentes en el log
// @Tags         audit-logs
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/audit-logs/actions [get]
func (h *AuditHandler) Actions(c *fiber.Ctx) error {
	out, err := h.uc.Actions(c.Context(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
