package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Operaciones-api/internal/application/dto"
	"github.com/jhoicas/Operaciones-api/internal/application/operaciones"
)

// OperacionHandler maneja las peticiones HTTP del motor de operaciones (protegido).
type OperacionHandler struct {
	uc *operaciones.OperacionUseCase
}

// NewOperacionHandler construye el handler.
func NewOperacionHandler(uc *operaciones.OperacionUseCase) *OperacionHandler {
	return &OperacionHandler{uc: uc}
}

// Crear godoc
// @Summary      Crear operación de almacén
// @Tags         operaciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearOperacionRequest  true  "tipo_operacion, sucursal_id, items[] (origen_tipo/origen_id opcionales)"
// @Success      201   {object}  dto.OperacionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/operaciones [post]
func (h *OperacionHandler) Crear(c *fiber.Ctx) error {
	var in dto.CrearOperacionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	op, err := h.uc.Crear(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(op)
}

// Listar godoc
// @Summary      Listar operaciones con filtros
// @Tags         operaciones
// @Security     Bearer
// @Produce      json
// @Param        sucursal_id  query  string  false  "Filtrar por sucursal"
// @Param        tipo         query  string  false  "Filtrar por tipo de operación"
// @Param        estado       query  string  false  "Filtrar por estado"
// @Param        asignado_a   query  string  false  "Filtrar por operador asignado"
// @Success      200  {array}   dto.OperacionResponse
// @Router       /api/operaciones [get]
func (h *OperacionHandler) Listar(c *fiber.Ctx) error {
	var in dto.ListarOperacionesRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "filtros inválidos"})
	}
	ops, err := h.uc.Listar(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(ops), "operaciones": ops})
}

// ObtenerPorID godoc
// @Summary      Obtener operación con sus ítems
// @Tags         operaciones
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la operación"
// @Success      200  {object}  dto.OperacionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/operaciones/{id} [get]
func (h *OperacionHandler) ObtenerPorID(c *fiber.Ctx) error {
	op, err := h.uc.ObtenerPorID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(op)
}

// ObtenerCadena godoc
// @Summary      Obtener la cadena completa de operaciones
// @Description  Recorre los enlaces anterior/siguiente desde la cabeza hasta la cola.
// @Tags         operaciones
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de cualquier operación de la cadena"
// @Success      200  {array}   dto.OperacionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/operaciones/{id}/cadena [get]
func (h *OperacionHandler) ObtenerCadena(c *fiber.Ctx) error {
	cadena, err := h.uc.ObtenerCadena(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(cadena), "cadena": cadena})
}

// Actualizar godoc
// @Summary      Actualizar campos de una operación no terminal
// @Tags         operaciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "ID de la operación"
// @Param        body  body  dto.ActualizarOperacionRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.OperacionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/operaciones/{id} [put]
func (h *OperacionHandler) Actualizar(c *fiber.Ctx) error {
	var in dto.ActualizarOperacionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	op, err := h.uc.Actualizar(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(op)
}

// Asignar godoc
// @Summary      Asignar (o reasignar) un operador
// @Description  Solo en borrador o asignada; una operación iniciada rechaza la asignación.
// @Tags         operaciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID de la operación"
// @Param        body  body  dto.AsignarRequest  true  "usuario_id del operador"
// @Success      200   {object}  dto.OperacionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/operaciones/{id}/asignar [post]
func (h *OperacionHandler) Asignar(c *fiber.Ctx) error {
	var in dto.AsignarRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	op, err := h.uc.Asignar(c.Context(), c.Params("id"), in.UsuarioID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(op)
}

// Iniciar godoc
// @Summary      Iniciar el trabajo de una operación
// @Tags         operaciones
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la operación"
// @Success      200  {object}  dto.OperacionResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/operaciones/{id}/iniciar [post]
func (h *OperacionHandler) Iniciar(c *fiber.Ctx) error {
	op, err := h.uc.Iniciar(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(op)
}

// Completar godoc
// @Summary      Completar una operación
// @Description  Cierra la operación y crea la etapa sucesora sembrada con lo procesado.
//
//	Idempotente: un segundo completar devuelve el mismo operacion_siguiente_id.
//
// @Tags         operaciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true   "ID de la operación"
// @Param        body  body  dto.CompletarRequest  false  "forzar para cierre explícito con pendientes"
// @Success      200   {object}  dto.OperacionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/operaciones/{id}/completar [post]
func (h *OperacionHandler) Completar(c *fiber.Ctx) error {
	var in dto.CompletarRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	op, err := h.uc.Completar(c.Context(), c.Params("id"), in.Forzar)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(op)
}

// Cancelar godoc
// @Summary      Cancelar una operación con motivo
// @Description  Cancela en cascada los ítems pendientes. Reintentos sobre una operación
//
//	ya cancelada son no-op exitosos.
//
// @Tags         operaciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID de la operación"
// @Param        body  body  dto.CancelarRequest  true  "motivo de la cancelación"
// @Success      200   {object}  dto.OperacionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/operaciones/{id}/cancelar [post]
func (h *OperacionHandler) Cancelar(c *fiber.Ctx) error {
	var in dto.CancelarRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	op, err := h.uc.Cancelar(c.Context(), c.Params("id"), in.Motivo)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(op)
}

// ProcesarItem godoc
// @Summary      Registrar avance sobre una línea
// @Description  Suma la cantidad a lo ya procesado y recalcula los totales del padre.
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del ítem"
// @Param        body  body  dto.ProcesarItemRequest  true  "cantidad incremental y ubicación destino"
// @Success      200   {object}  dto.OperacionItemResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items/{id}/procesar [post]
func (h *OperacionHandler) ProcesarItem(c *fiber.Ctx) error {
	var in dto.ProcesarItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.ProcesarItem(c.Context(), c.Params("id"), in.Cantidad, in.UbicacionDestinoID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// ProcesarLote godoc
// @Summary      Procesar varias líneas en un lote no atómico
// @Description  Cada línea reporta su propio éxito o error, espejo del cumplimiento parcial.
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProcesarLoteRequest  true  "líneas a procesar"
// @Success      200   {array}  dto.ItemResultado
// @Router       /api/items/procesar-lote [post]
func (h *OperacionHandler) ProcesarLote(c *fiber.Ctx) error {
	var in dto.ProcesarLoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resultados := h.uc.ProcesarLote(c.Context(), in)
	return c.JSON(fiber.Map{"total": len(resultados), "resultados": resultados})
}

// CancelarItem godoc
// @Summary      Cancelar una línea
// @Description  Excluye la línea de los totales del padre; no cancela la operación.
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ítem"
// @Success      200  {object}  dto.OperacionItemResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/cancelar [post]
func (h *OperacionHandler) CancelarItem(c *fiber.Ctx) error {
	item, err := h.uc.CancelarItem(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}
