package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de operación de almacén (etapas del flujo físico de mercancía).
const (
	TipoRecepcion            = "recepcion"
	TipoControlCalidad       = "control_calidad"
	TipoAlmacenamiento       = "almacenamiento"
	TipoPicking              = "picking"
	TipoEmpaque              = "empaque"
	TipoEnvio                = "envio"
	TipoTransferenciaInterna = "transferencia_interna"
)

// Estados del ciclo de vida de una operación.
const (
	EstadoBorrador   = "borrador"
	EstadoAsignada   = "asignada"
	EstadoEnProceso  = "en_proceso"
	EstadoParcial    = "parcial"
	EstadoCompletada = "completada"
	EstadoCancelada  = "cancelada"
)

// Tipos de documento origen (referencias polimórficas, propiedad de módulos externos).
const (
	OrigenOrdenCompra            = "orden_compra"
	OrigenVenta                  = "venta"
	OrigenSolicitudTransferencia = "solicitud_transferencia"
)

// TipoOperacionValido verifica que el tipo pertenezca al enum conocido.
func TipoOperacionValido(tipo string) bool {
	switch tipo {
	case TipoRecepcion, TipoControlCalidad, TipoAlmacenamiento,
		TipoPicking, TipoEmpaque, TipoEnvio, TipoTransferenciaInterna:
		return true
	}
	return false
}

// Operacion representa una etapa de trabajo de almacén (recepción, control de calidad,
// almacenamiento, picking, empaque, envío o transferencia interna) con sus ítems.
// Los totales son denormalizados: siempre recomputables desde los ítems no cancelados.
type Operacion struct {
	ID                   string
	Folio                string // código secuencial legible, ej. REC-000042
	TipoOperacion        string
	Estado               string
	SucursalID           string
	OrigenTipo           string // vacío si la operación se creó manualmente
	OrigenID             string
	AsignadoA            *string
	TotalItems           int
	TotalProcesados      decimal.Decimal
	OperacionAnteriorID  *string
	OperacionSiguienteID *string // lo escribe solo el encadenamiento, a lo sumo una vez
	MotivoCancelacion    *string
	CreadoEn             time.Time
	ActualizadoEn        time.Time

	Items []OperacionItem // cargados bajo demanda
}

// EsTerminal indica si la operación está en un estado inmutable (completada o cancelada).
func (o *Operacion) EsTerminal() bool {
	return o.Estado == EstadoCompletada || o.Estado == EstadoCancelada
}

// PuedeAsignar indica si se admite asignar (o reasignar) un operador.
// Solo antes de iniciar el trabajo: borrador o asignada.
func (o *Operacion) PuedeAsignar() bool {
	return o.Estado == EstadoBorrador || o.Estado == EstadoAsignada
}

// PuedeIniciar indica si la operación puede pasar a en_proceso.
func (o *Operacion) PuedeIniciar() bool {
	return o.Estado == EstadoBorrador || o.Estado == EstadoAsignada
}

// PuedeProcesarItems indica si se admite registrar avance en los ítems.
// Cualquier estado no terminal: la inmutabilidad terminal es la única barrera.
func (o *Operacion) PuedeProcesarItems() bool {
	return !o.EsTerminal()
}

// PuedeCompletar indica si la operación puede cerrarse.
func (o *Operacion) PuedeCompletar() bool {
	return o.Estado == EstadoEnProceso || o.Estado == EstadoParcial
}

// PuedeCancelar indica si la operación puede cancelarse (cualquier estado no terminal).
func (o *Operacion) PuedeCancelar() bool {
	return !o.EsTerminal()
}

// RecomputarTotales recalcula TotalItems y TotalProcesados desde los ítems cargados,
// excluyendo los cancelados del total procesado.
func (o *Operacion) RecomputarTotales() {
	o.TotalItems = len(o.Items)
	total := decimal.Zero
	for _, it := range o.Items {
		if it.Estado == ItemCancelado {
			continue
		}
		total = total.Add(it.CantidadProcesada)
	}
	o.TotalProcesados = total
}

// TodosProcesados indica si todos los ítems no cancelados están completamente procesados.
// Devuelve false si no queda ningún ítem activo.
func (o *Operacion) TodosProcesados() bool {
	activos := 0
	for _, it := range o.Items {
		if it.Estado == ItemCancelado {
			continue
		}
		activos++
		if it.CantidadProcesada.LessThan(it.CantidadSolicitada) {
			return false
		}
	}
	return activos > 0
}

// DerivarEstadoAvance ajusta el estado según el avance de los ítems:
// con avance parcial pasa a `parcial`; completamente procesada se queda como está,
// el cierre a `completada` requiere un Completar explícito del operador.
func (o *Operacion) DerivarEstadoAvance() {
	if o.EsTerminal() {
		return
	}
	if o.TodosProcesados() {
		return
	}
	if o.TotalProcesados.GreaterThan(decimal.Zero) {
		o.Estado = EstadoParcial
	}
}
