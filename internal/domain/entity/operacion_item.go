package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un ítem de operación.
const (
	ItemPendiente = "pendiente"
	ItemProcesado = "procesado"
	ItemCancelado = "cancelado"
)

// OperacionItem es una línea producto/cantidad dentro de una operación.
// Su ciclo de vida está acotado por el de la operación dueña.
type OperacionItem struct {
	ID                 string
	OperacionID        string
	ProductoID         string
	VarianteID         *string
	NumeroSerieID      *string // seguimiento de unidad serializada
	CantidadSolicitada decimal.Decimal
	CantidadProcesada  decimal.Decimal // 0 <= procesada <= solicitada
	UbicacionDestinoID *string         // se fija al procesar
	Estado             string
	CreadoEn           time.Time
	ActualizadoEn      time.Time
}

// Procesado indica si la línea está completamente procesada.
func (i *OperacionItem) Procesado() bool {
	return i.CantidadProcesada.GreaterThanOrEqual(i.CantidadSolicitada)
}

// AcumularProcesado suma cantidad al procesado de la línea y fija la ubicación destino.
// Devuelve false si la suma excedería la cantidad solicitada (la línea no se modifica).
func (i *OperacionItem) AcumularProcesado(cantidad decimal.Decimal, ubicacionID string) bool {
	if i.Estado == ItemCancelado {
		return false
	}
	nuevo := i.CantidadProcesada.Add(cantidad)
	if nuevo.GreaterThan(i.CantidadSolicitada) {
		return false
	}
	i.CantidadProcesada = nuevo
	if ubicacionID != "" {
		i.UbicacionDestinoID = &ubicacionID
	}
	if i.Procesado() {
		i.Estado = ItemProcesado
	}
	return true
}
