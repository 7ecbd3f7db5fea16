package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Operaciones-api/internal/application/tablero"
)

// TableroHandler maneja las consultas de solo lectura del tablero (protegido).
type TableroHandler struct {
	uc *tablero.TableroUseCase
}

// NewTableroHandler construye el handler.
func NewTableroHandler(uc *tablero.TableroUseCase) *TableroHandler {
	return &TableroHandler{uc: uc}
}

// sucursalDe resuelve la sucursal de la consulta: query param explícito o la del token.
func sucursalDe(c *fiber.Ctx) string {
	if s := c.Query("sucursal_id"); s != "" {
		return s
	}
	return GetSucursalID(c)
}

// ResumenKanban godoc
// @Summary      Tablero kanban de la sucursal
// @Description  Operaciones agrupadas por estado; completadas acotadas a las más recientes.
// @Tags         tablero
// @Security     Bearer
// @Produce      json
// @Param        sucursal_id  query  string  false  "Sucursal (por defecto la del token)"
// @Success      200  {object}  dto.KanbanResponse
// @Router       /api/tablero/kanban [get]
func (h *TableroHandler) ResumenKanban(c *fiber.Ctx) error {
	resumen, err := h.uc.ResumenKanban(c.Context(), sucursalDe(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resumen)
}

// Pendientes godoc
// @Summary      Operaciones pendientes por tipo
// @Tags         tablero
// @Security     Bearer
// @Produce      json
// @Param        sucursal_id  query  string  false  "Sucursal (por defecto la del token)"
// @Success      200  {object}  dto.PendientesResponse
// @Router       /api/tablero/pendientes [get]
func (h *TableroHandler) Pendientes(c *fiber.Ctx) error {
	pendientes, err := h.uc.Pendientes(c.Context(), sucursalDe(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(pendientes)
}

// Estadisticas godoc
// @Summary      Estadísticas de la sucursal
// @Description  Conteos por estado, ratio procesado/solicitado y throughput en una ventana.
// @Tags         tablero
// @Security     Bearer
// @Produce      json
// @Param        sucursal_id  query  string  false  "Sucursal (por defecto la del token)"
// @Param        dias         query  int     false  "Ventana en días (por defecto 7)"
// @Success      200  {object}  dto.EstadisticasResponse
// @Router       /api/tablero/estadisticas [get]
func (h *TableroHandler) Estadisticas(c *fiber.Ctx) error {
	dias := c.QueryInt("dias", 7)
	stats, err := h.uc.Estadisticas(c.Context(), sucursalDe(c), dias)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
