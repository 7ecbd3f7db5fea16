package dto

import "github.com/shopspring/decimal"

// KanbanResponse operaciones agrupadas por estado para el tablero visual.
// El bucket de completadas está acotado a las más recientes.
type KanbanResponse struct {
	SucursalID string                         `json:"sucursal_id"`
	Columnas   map[string][]OperacionResponse `json:"columnas"` // estado -> operaciones
}

// PendientesResponse conteo de operaciones no terminales por tipo.
type PendientesResponse struct {
	SucursalID string         `json:"sucursal_id"`
	PorTipo    map[string]int `json:"por_tipo"`
	Total      int            `json:"total"`
}

// EstadisticasResponse métricas de la sucursal sobre una ventana de días.
type EstadisticasResponse struct {
	SucursalID         string          `json:"sucursal_id"`
	VentanaDias        int             `json:"ventana_dias"`
	PorEstado          map[string]int  `json:"por_estado"`
	TotalSolicitado    decimal.Decimal `json:"total_solicitado"`
	TotalProcesado     decimal.Decimal `json:"total_procesado"`
	RatioProcesado     decimal.Decimal `json:"ratio_procesado"` // procesado / solicitado, 0 si no hay solicitado
	CompletadasVentana int             `json:"completadas_ventana"`
	CompletadasPorDia  decimal.Decimal `json:"completadas_por_dia"`
}
