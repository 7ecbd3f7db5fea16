package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemRequest línea solicitada al crear una operación.
type ItemRequest struct {
	ProductoID         string          `json:"producto_id"`
	VarianteID         *string         `json:"variante_id,omitempty"`
	NumeroSerieID      *string         `json:"numero_serie_id,omitempty"`
	CantidadSolicitada decimal.Decimal `json:"cantidad_solicitada"`
}

// CrearOperacionRequest body para POST /api/operaciones.
// OrigenTipo/OrigenID referencian el documento que dispara la operación
// (orden de compra, venta, solicitud de transferencia); vacíos si es manual.
type CrearOperacionRequest struct {
	TipoOperacion string        `json:"tipo_operacion"`
	SucursalID    string        `json:"sucursal_id"`
	OrigenTipo    string        `json:"origen_tipo,omitempty"`
	OrigenID      string        `json:"origen_id,omitempty"`
	Items         []ItemRequest `json:"items"`
}

// ActualizarOperacionRequest campos editables mientras la operación no sea terminal.
type ActualizarOperacionRequest struct {
	SucursalID *string `json:"sucursal_id,omitempty"`
	OrigenTipo *string `json:"origen_tipo,omitempty"`
	OrigenID   *string `json:"origen_id,omitempty"`
}

// AsignarRequest body para POST /api/operaciones/:id/asignar.
type AsignarRequest struct {
	UsuarioID string `json:"usuario_id"`
}

// CompletarRequest body para POST /api/operaciones/:id/completar.
// Forzar permite cerrar con ítems sin procesar del todo (cierre explícito del supervisor).
type CompletarRequest struct {
	Forzar bool `json:"forzar,omitempty"`
}

// CancelarRequest body para POST /api/operaciones/:id/cancelar.
type CancelarRequest struct {
	Motivo string `json:"motivo"`
}

// ProcesarItemRequest body para POST /api/items/:id/procesar.
// Cantidad es incremental: se suma a lo ya procesado de la línea.
type ProcesarItemRequest struct {
	Cantidad           decimal.Decimal `json:"cantidad"`
	UbicacionDestinoID string          `json:"ubicacion_destino_id,omitempty"`
}

// ProcesarLoteRequest body para POST /api/items/procesar-lote.
type ProcesarLoteRequest struct {
	Items []ProcesarLoteItem `json:"items"`
}

// ProcesarLoteItem una línea del lote.
type ProcesarLoteItem struct {
	ItemID             string          `json:"item_id"`
	Cantidad           decimal.Decimal `json:"cantidad"`
	UbicacionDestinoID string          `json:"ubicacion_destino_id,omitempty"`
}

// ItemResultado resultado por línea del procesamiento en lote: el lote no es atómico,
// cada línea reporta su propio éxito o error.
type ItemResultado struct {
	ItemID string                 `json:"item_id"`
	OK     bool                   `json:"ok"`
	Error  string                 `json:"error,omitempty"`
	Item   *OperacionItemResponse `json:"item,omitempty"`
}

// ListarOperacionesRequest filtros de query para GET /api/operaciones.
type ListarOperacionesRequest struct {
	SucursalID string `query:"sucursal_id"`
	Tipo       string `query:"tipo"`
	Estado     string `query:"estado"`
	AsignadoA  string `query:"asignado_a"`
	PageRequest
}

// OperacionItemResponse representación de una línea en respuestas.
type OperacionItemResponse struct {
	ID                 string          `json:"id"`
	OperacionID        string          `json:"operacion_id"`
	ProductoID         string          `json:"producto_id"`
	VarianteID         *string         `json:"variante_id,omitempty"`
	NumeroSerieID      *string         `json:"numero_serie_id,omitempty"`
	CantidadSolicitada decimal.Decimal `json:"cantidad_solicitada"`
	CantidadProcesada  decimal.Decimal `json:"cantidad_procesada"`
	UbicacionDestinoID *string         `json:"ubicacion_destino_id,omitempty"`
	Estado             string          `json:"estado"`
}

// OperacionResponse representación de una operación en respuestas.
type OperacionResponse struct {
	ID                   string                  `json:"id"`
	Folio                string                  `json:"folio"`
	TipoOperacion        string                  `json:"tipo_operacion"`
	Estado               string                  `json:"estado"`
	SucursalID           string                  `json:"sucursal_id"`
	OrigenTipo           string                  `json:"origen_tipo,omitempty"`
	OrigenID             string                  `json:"origen_id,omitempty"`
	AsignadoA            *string                 `json:"asignado_a,omitempty"`
	TotalItems           int                     `json:"total_items"`
	TotalProcesados      decimal.Decimal         `json:"total_procesados"`
	OperacionAnteriorID  *string                 `json:"operacion_anterior_id,omitempty"`
	OperacionSiguienteID *string                 `json:"operacion_siguiente_id,omitempty"`
	MotivoCancelacion    *string                 `json:"motivo_cancelacion,omitempty"`
	CreadoEn             time.Time               `json:"creado_en"`
	ActualizadoEn        time.Time               `json:"actualizado_en"`
	Items                []OperacionItemResponse `json:"items,omitempty"`
}
