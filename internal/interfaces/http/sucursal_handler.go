package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/Operaciones-api/internal/application/dto"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
)

// SucursalHandler CRUD mínimo de sucursales (datos de referencia del motor).
type SucursalHandler struct {
	repo repository.SucursalRepository
}

// NewSucursalHandler construye el handler.
func NewSucursalHandler(repo repository.SucursalRepository) *SucursalHandler {
	return &SucursalHandler{repo: repo}
}

// CrearSucursalRequest body para POST /api/sucursales.
type CrearSucursalRequest struct {
	Nombre    string `json:"nombre"`
	Direccion string `json:"direccion"`
}

// Crear godoc
// @Summary      Crear sucursal
// @Tags         sucursales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  CrearSucursalRequest  true  "nombre y dirección"
// @Success      201   {object}  entity.Sucursal
// @Router       /api/sucursales [post]
func (h *SucursalHandler) Crear(c *fiber.Ctx) error {
	var in CrearSucursalRequest
	if err := c.BodyParser(&in); err != nil || in.Nombre == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "nombre requerido"})
	}
	now := time.Now()
	s := &entity.Sucursal{
		ID:            uuid.New().String(),
		Nombre:        in.Nombre,
		Direccion:     in.Direccion,
		CreadoEn:      now,
		ActualizadoEn: now,
	}
	if err := h.repo.Create(c.Context(), s); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(s)
}

// Listar godoc
// @Summary      Listar sucursales
// @Tags         sucursales
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Sucursal
// @Router       /api/sucursales [get]
func (h *SucursalHandler) Listar(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	page.DefaultPage()
	sucursales, err := h.repo.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(sucursales), "sucursales": sucursales})
}

// ObtenerPorID godoc
// @Summary      Obtener sucursal por ID
// @Tags         sucursales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la sucursal"
// @Success      200  {object}  entity.Sucursal
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sucursales/{id} [get]
func (h *SucursalHandler) ObtenerPorID(c *fiber.Ctx) error {
	s, err := h.repo.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if s == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sucursal no encontrada"})
	}
	return c.JSON(s)
}
