package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Operaciones-api/internal/application/operaciones"
	"github.com/jhoicas/Operaciones-api/internal/application/tablero"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	OperacionUC  *operaciones.OperacionUseCase
	TableroUC    *tablero.TableroUseCase
	SucursalRepo repository.SucursalRepository
	JWTSecret    string
}

// Router registra las rutas de la API. Todas las rutas del motor requieren Bearer Token;
// las mutaciones de ciclo de vida sensibles exigen además rol de supervisor u operador.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	ambosRoles := RequireRole(entity.RolSupervisor, entity.RolOperador)
	soloSupervisor := RequireRole(entity.RolSupervisor)

	// Operaciones (protegido)
	ops := protected.Group("/operaciones")
	opHandler := NewOperacionHandler(deps.OperacionUC)
	ops.Post("/", soloSupervisor, opHandler.Crear)
	ops.Get("/", ambosRoles, opHandler.Listar)
	ops.Get("/:id", ambosRoles, opHandler.ObtenerPorID)
	ops.Get("/:id/cadena", ambosRoles, opHandler.ObtenerCadena)
	ops.Put("/:id", soloSupervisor, opHandler.Actualizar)
	ops.Post("/:id/asignar", soloSupervisor, opHandler.Asignar)
	ops.Post("/:id/iniciar", ambosRoles, opHandler.Iniciar)
	ops.Post("/:id/completar", ambosRoles, opHandler.Completar)
	ops.Post("/:id/cancelar", soloSupervisor, opHandler.Cancelar)

	// Ítems (protegido)
	items := protected.Group("/items")
	items.Post("/procesar-lote", ambosRoles, opHandler.ProcesarLote)
	items.Post("/:id/procesar", ambosRoles, opHandler.ProcesarItem)
	items.Post("/:id/cancelar", soloSupervisor, opHandler.CancelarItem)

	// Tablero (protegido, solo lectura)
	tableroGroup := protected.Group("/tablero")
	tableroHandler := NewTableroHandler(deps.TableroUC)
	tableroGroup.Get("/kanban", ambosRoles, tableroHandler.ResumenKanban)
	tableroGroup.Get("/pendientes", ambosRoles, tableroHandler.Pendientes)
	tableroGroup.Get("/estadisticas", ambosRoles, tableroHandler.Estadisticas)

	// Sucursales (protegido, datos de referencia)
	sucursales := protected.Group("/sucursales")
	sucursalHandler := NewSucursalHandler(deps.SucursalRepo)
	sucursales.Post("/", soloSupervisor, sucursalHandler.Crear)
	sucursales.Get("/", ambosRoles, sucursalHandler.Listar)
	sucursales.Get("/:id", ambosRoles, sucursalHandler.ObtenerPorID)
}
