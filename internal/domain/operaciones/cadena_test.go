package operaciones_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/domain/operaciones"
)

func TestSiguiente_TablaCompleta(t *testing.T) {
	casos := []struct {
		tipo     string
		sucesor  string
		existe   bool
	}{
		{entity.TipoRecepcion, entity.TipoControlCalidad, true},
		{entity.TipoControlCalidad, entity.TipoAlmacenamiento, true},
		{entity.TipoAlmacenamiento, entity.TipoPicking, true},
		{entity.TipoPicking, entity.TipoEmpaque, true},
		{entity.TipoEmpaque, entity.TipoEnvio, true},
		{entity.TipoEnvio, "", false},
		{entity.TipoTransferenciaInterna, "", false},
	}
	for _, c := range casos {
		sig, ok := operaciones.Siguiente(c.tipo)
		assert.Equal(t, c.existe, ok, "tipo %s", c.tipo)
		assert.Equal(t, c.sucesor, sig, "tipo %s", c.tipo)
	}
}

func TestSiguiente_TipoDesconocido(t *testing.T) {
	_, ok := operaciones.Siguiente("devolucion")
	assert.False(t, ok)
}

func TestFolio_Formato(t *testing.T) {
	assert.Equal(t, "REC-000042", operaciones.Folio(entity.TipoRecepcion, 42))
	assert.Equal(t, "CC-000001", operaciones.Folio(entity.TipoControlCalidad, 1))
	assert.Equal(t, "TRF-123456", operaciones.Folio(entity.TipoTransferenciaInterna, 123456))
}

func TestFolio_TipoDesconocidoUsaPrefijoGenerico(t *testing.T) {
	assert.Equal(t, "OP-000007", operaciones.Folio("algo_raro", 7))
}
