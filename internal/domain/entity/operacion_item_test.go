package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
)

func TestAcumularProcesado_SumaYFijaUbicacion(t *testing.T) {
	it := &entity.OperacionItem{
		CantidadSolicitada: dec("20"),
		CantidadProcesada:  dec("5"),
		Estado:             entity.ItemPendiente,
	}
	ok := it.AcumularProcesado(dec("10"), "UB-01")
	assert.True(t, ok)
	assert.True(t, it.CantidadProcesada.Equal(dec("15")))
	assert.Equal(t, entity.ItemPendiente, it.Estado, "aún no está completo")
	if assert.NotNil(t, it.UbicacionDestinoID) {
		assert.Equal(t, "UB-01", *it.UbicacionDestinoID)
	}
}

func TestAcumularProcesado_CompletaLaLinea(t *testing.T) {
	it := &entity.OperacionItem{
		CantidadSolicitada: dec("20"),
		CantidadProcesada:  dec("15"),
		Estado:             entity.ItemPendiente,
	}
	assert.True(t, it.AcumularProcesado(dec("5"), "UB-02"))
	assert.Equal(t, entity.ItemProcesado, it.Estado)
	assert.True(t, it.Procesado())
}

// La cota es estricta: procesado nunca puede superar lo solicitado.
func TestAcumularProcesado_RechazaExceso(t *testing.T) {
	it := &entity.OperacionItem{
		CantidadSolicitada: dec("20"),
		CantidadProcesada:  dec("15"),
		Estado:             entity.ItemPendiente,
	}
	assert.False(t, it.AcumularProcesado(dec("6"), "UB-03"))
	assert.True(t, it.CantidadProcesada.Equal(dec("15")), "la línea no debe modificarse")
	assert.Nil(t, it.UbicacionDestinoID)
}

func TestAcumularProcesado_CanceladoRechaza(t *testing.T) {
	it := &entity.OperacionItem{
		CantidadSolicitada: dec("20"),
		Estado:             entity.ItemCancelado,
	}
	assert.False(t, it.AcumularProcesado(dec("1"), ""))
}
