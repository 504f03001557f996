package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Activos-api/internal/application/usecase"
)

// DirectoryHandler lecturas del directorio: usuarios, departamentos, categorías y computadores.
type DirectoryHandler struct {
	uc *usecase.DirectoryUseCase
}

// NewDirectoryHandler construye el handler.
func NewDirectoryHandler(uc *usecase.DirectoryUseCase) *DirectoryHandler {
	return &DirectoryHandler{uc: uc}
}

// GetUser obtiene un usuario por ID.
func (h *DirectoryHandler) GetUser(c *fiber.Ctx) error {
	out, err := h.uc.GetUser(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListUsers lista usuarios.
func (h *DirectoryHandler) ListUsers(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	out, err := h.uc.ListUsers(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetDepartment obtiene un departamento por ID.
func (h *DirectoryHandler) GetDepartment(c *fiber.Ctx) error {
	out, err := h.uc.GetDepartment(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListDepartments lista departamentos.
func (h *DirectoryHandler) ListDepartments(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	out, err := h.uc.ListDepartments(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListCategories lista categorías del catálogo.
func (h *DirectoryHandler) ListCategories(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	out, err := h.uc.ListCategories(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetComputer obtiene un computador por ID.
func (h *DirectoryHandler) GetComputer(c *fiber.Ctx) error {
	out, err := h.uc.GetComputer(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListComputers lista computadores, opcionalmente por departamento.
func (h *DirectoryHandler) ListComputers(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	out, err := h.uc.ListComputers(c.Context(), c.Query("department_id"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
