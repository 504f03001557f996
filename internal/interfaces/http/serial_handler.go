package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Activos-api/internal/application/dto"
	"github.com/jhoicas/Activos-api/internal/application/registry"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

// SerialHandler maneja las peticiones HTTP para el registro de unidades serializadas (protegido).
type SerialHandler struct {
	uc *registry.UseCase
}

// NewSerialHandler construye el handler.
func NewSerialHandler(uc *registry.UseCase) *SerialHandler {
	return &SerialHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar unidad serializada
// @Description  Rechaza con 422 si las unidades registradas igualan o exceden la cantidad declarada del activo.
// @Tags         asset-serials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSerialRequest  true  "Datos de la unidad"
// @Success      201   {object}  dto.SerialResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.CapacityErrorResponse
// @Router       /api/asset-serials [post]
func (h *SerialHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSerialRequest
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
// @Summary      Obtener unidad por ID (con estado efectivo derivado)
// @Tags         asset-serials
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la unidad"
// @Success      200  {object}  dto.SerialResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/asset-serials/{id} [get]
func (h *SerialHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar unidades serializadas
// @Tags         asset-serials
// @Security     Bearer
// @Produce      json
// @Param        asset_id  query  string  false  "Filtrar por activo"
// @Param        status    query  string  false  "Filtrar por estado almacenado"
// @Param        search    query  string  false  "Contención sobre serial o tag"
// @Param        limit     query  int     false  "Límite"   default(20)
// @Param        offset    query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.SerialListResponse
// @Router       /api/asset-serials [get]
func (h *SerialHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	out, err := h.uc.List(c.Context(), repository.SerialFilter{
		AssetID: c.Query("asset_id"),
		Status:  c.Query("status"),
		Search:  c.Query("search"),
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar unidad serializada
// @Description  Si se reasigna a otro activo, el guard de capacidad corre contra el destino.
// @Tags         asset-serials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la unidad"
// @Param        body  body  dto.UpdateSerialRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.SerialResponse
// @Failure      422   {object}  dto.CapacityErrorResponse
// @Router       /api/asset-serials/{id} [put]
func (h *SerialHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSerialRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar unidad serializada
// @Tags         asset-serials
// @Security     Bearer
// @Param        id  path  string  true  "ID de la unidad"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/asset-serials/{id} [delete]
func (h *SerialHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetActor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "unidad eliminada"})
}
