package operaciones

import (
	"fmt"

	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
)

// sucesores es la tabla fija de encadenamiento de etapas: al completar una operación
// de un tipo con sucesor, se crea la siguiente etapa en borrador. Para agregar una
// etapa basta con extender el enum de tipos y esta tabla.
var sucesores = map[string]string{
	entity.TipoRecepcion:      entity.TipoControlCalidad,
	entity.TipoControlCalidad: entity.TipoAlmacenamiento,
	entity.TipoAlmacenamiento: entity.TipoPicking,
	entity.TipoPicking:        entity.TipoEmpaque,
	entity.TipoEmpaque:        entity.TipoEnvio,
	// envio y transferencia_interna no tienen sucesor: terminan la cadena
}

// Siguiente devuelve el tipo de la etapa sucesora y si existe.
func Siguiente(tipo string) (string, bool) {
	sig, ok := sucesores[tipo]
	return sig, ok
}

// prefijos de folio por tipo de operación.
var prefijos = map[string]string{
	entity.TipoRecepcion:            "REC",
	entity.TipoControlCalidad:       "CC",
	entity.TipoAlmacenamiento:       "ALM",
	entity.TipoPicking:              "PIC",
	entity.TipoEmpaque:              "EMP",
	entity.TipoEnvio:                "ENV",
	entity.TipoTransferenciaInterna: "TRF",
}

// Folio construye el código legible de una operación a partir de su tipo y el
// consecutivo de la secuencia, ej. REC-000042.
func Folio(tipo string, consecutivo int64) string {
	prefijo, ok := prefijos[tipo]
	if !ok {
		prefijo = "OP"
	}
	return fmt.Sprintf("%s-%06d", prefijo, consecutivo)
}
