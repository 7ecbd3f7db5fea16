package operaciones_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Operaciones-api/internal/application/dto"
	"github.com/jhoicas/Operaciones-api/internal/domain"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
)

func TestProcesarItem_AvanceIncremental(t *testing.T) {
	uc, _ := newTestUseCase(t)
	op := crearRecepcion(t, uc, "20")
	_, err := uc.Iniciar(context.Background(), op.ID)
	require.NoError(t, err)

	item, err := uc.ProcesarItem(context.Background(), op.Items[0].ID, dec("8"), "UB-A1")
	require.NoError(t, err)
	assert.True(t, item.CantidadProcesada.Equal(dec("8")))
	assert.Equal(t, entity.ItemPendiente, item.Estado)
	require.NotNil(t, item.UbicacionDestinoID)
	assert.Equal(t, "UB-A1", *item.UbicacionDestinoID)

	// La segunda llamada suma sobre lo anterior
	item, err = uc.ProcesarItem(context.Background(), op.Items[0].ID, dec("12"), "UB-A2")
	require.NoError(t, err)
	assert.True(t, item.CantidadProcesada.Equal(dec("20")))
	assert.Equal(t, entity.ItemProcesado, item.Estado)
	assert.Equal(t, "UB-A2", *item.UbicacionDestinoID)
}

func TestProcesarItem_DerivaParcial(t *testing.T) {
	uc, _ := newTestUseCase(t)
	op := crearRecepcion(t, uc, "10", "5")
	_, err := uc.Iniciar(context.Background(), op.ID)
	require.NoError(t, err)

	_, err = uc.ProcesarItem(context.Background(), op.Items[0].ID, dec("4"), "")
	require.NoError(t, err)

	padre, err := uc.ObtenerPorID(context.Background(), op.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoParcial, padre.Estado)
	assert.True(t, padre.TotalProcesados.Equal(dec("4")))
}

func TestProcesarItem_TodoProcesadoNoAutoCompleta(t *testing.T) {
	uc, _ := newTestUseCase(t)
	op := crearRecepcion(t, uc, "10")
	_, err := uc.Iniciar(context.Background(), op.ID)
	require.NoError(t, err)

	_, err = uc.ProcesarItem(context.Background(), op.Items[0].ID, dec("10"), "UB-A1")
	require.NoError(t, err)

	// Procesar el 100% no cierra la operación: el cierre es un Completar explícito
	padre, err := uc.ObtenerPorID(context.Background(), op.ID)
	require.NoError(t, err)
	assert.NotEqual(t, entity.EstadoCompletada, padre.Estado)
	assert.True(t, padre.TotalProcesados.Equal(dec("10")))
}

func TestProcesarItem_OverQuantity(t *testing.T) {
	uc, _ := newTestUseCase(t)
	op := crearRecepcion(t, uc, "10")
	_, err := uc.Iniciar(context.Background(), op.ID)
	require.NoError(t, err)

	_, err = uc.ProcesarItem(context.Background(), op.Items[0].ID, dec("7"), "")
	require.NoError(t, err)

	_, err = uc.ProcesarItem(context.Background(), op.Items[0].ID, dec("4"), "")
	assert.ErrorIs(t, err, domain.ErrOverQuantity)

	// La línea queda intacta tras el rechazo
	padre, err := uc.ObtenerPorID(context.Background(), op.ID)
	require.NoError(t, err)
	assert.True(t, padre.Items[0].CantidadProcesada.Equal(dec("7")))
}

func TestProcesarItem_CantidadNoPositiva(t *testing.T) {
	uc, _ := newTestUseCase(t)
	op := crearRecepcion(t, uc, "10")

	_, err := uc.ProcesarItem(context.Background(), op.Items[0].ID, decimal.Zero, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProcesarItem_OperacionTerminalFalla(t *testing.T) {
	uc, _ := newTestUseCase(t)
	op := crearRecepcion(t, uc, "10")
	_, err := uc.Cancelar(context.Background(), op.ID, "proveedor canceló")
	require.NoError(t, err)

	_, err = uc.ProcesarItem(context.Background(), op.Items[0].ID, dec("1"), "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestProcesarItem_Inexistente(t *testing.T) {
	uc, _ := newTestUseCase(t)

	_, err := uc.ProcesarItem(context.Background(), "item-fantasma", dec("1"), "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancelarItem_ExcluyeDeTotales(t *testing.T) {
	uc, _ := newTestUseCase(t)
	op := crearRecepcion(t, uc, "10", "5")
	_, err := uc.Iniciar(context.Background(), op.ID)
	require.NoError(t, err)
	_, err = uc.ProcesarItem(context.Background(), op.Items[0].ID, dec("10"), "")
	require.NoError(t, err)

	cancelado, err := uc.CancelarItem(context.Background(), op.Items[1].ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ItemCancelado, cancelado.Estado)

	// El total solo cuenta la línea activa y la operación NO se cancela sola
	padre, err := uc.ObtenerPorID(context.Background(), op.ID)
	require.NoError(t, err)
	assert.True(t, padre.TotalProcesados.Equal(dec("10")))
	assert.NotEqual(t, entity.EstadoCancelada, padre.Estado)

	// Reintento tolerado
	_, err = uc.CancelarItem(context.Background(), op.Items[1].ID)
	require.NoError(t, err)
}

func TestProcesarItem_CanceladoRechaza(t *testing.T) {
	uc, _ := newTestUseCase(t)
	op := crearRecepcion(t, uc, "10")
	_, err := uc.Iniciar(context.Background(), op.ID)
	require.NoError(t, err)
	_, err = uc.CancelarItem(context.Background(), op.Items[0].ID)
	require.NoError(t, err)

	_, err = uc.ProcesarItem(context.Background(), op.Items[0].ID, dec("1"), "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestProcesarLote_ReportaPorLinea(t *testing.T) {
	uc, _ := newTestUseCase(t)
	op := crearRecepcion(t, uc, "10", "5")
	_, err := uc.Iniciar(context.Background(), op.ID)
	require.NoError(t, err)

	resultados := uc.ProcesarLote(context.Background(), dto.ProcesarLoteRequest{
		Items: []dto.ProcesarLoteItem{
			{ItemID: op.Items[0].ID, Cantidad: dec("10"), UbicacionDestinoID: "UB-A1"},
			{ItemID: op.Items[1].ID, Cantidad: dec("99")}, // excede lo solicitado
			{ItemID: "item-fantasma", Cantidad: dec("1")},
		},
	})
	require.Len(t, resultados, 3)

	assert.True(t, resultados[0].OK)
	require.NotNil(t, resultados[0].Item)
	assert.True(t, resultados[0].Item.CantidadProcesada.Equal(dec("10")))

	// El lote no es atómico: la línea válida quedó aplicada pese a los dos fallos
	assert.False(t, resultados[1].OK)
	assert.NotEmpty(t, resultados[1].Error)
	assert.False(t, resultados[2].OK)

	padre, err := uc.ObtenerPorID(context.Background(), op.ID)
	require.NoError(t, err)
	assert.True(t, padre.TotalProcesados.Equal(dec("10")))
}

func TestProcesarItem_Concurrente(t *testing.T) {
	uc, _ := newTestUseCase(t)
	op := crearRecepcion(t, uc, "50", "50")
	_, err := uc.Iniciar(context.Background(), op.ID)
	require.NoError(t, err)

	// Dos operadores avanzan líneas distintas de la misma operación a la vez.
	// El lock del padre serializa los recomputos: ningún incremento se pierde.
	const rondas = 10
	var wg sync.WaitGroup
	for _, itemID := range []string{op.Items[0].ID, op.Items[1].ID} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for i := 0; i < rondas; i++ {
				_, err := uc.ProcesarItem(context.Background(), id, dec("5"), "")
				assert.NoError(t, err)
			}
		}(itemID)
	}
	wg.Wait()

	padre, err := uc.ObtenerPorID(context.Background(), op.ID)
	require.NoError(t, err)
	assert.True(t, padre.TotalProcesados.Equal(dec("100")),
		"total %s, se perdieron incrementos", padre.TotalProcesados)
	assert.True(t, padre.Items[0].CantidadProcesada.Equal(dec("50")))
	assert.True(t, padre.Items[1].CantidadProcesada.Equal(dec("50")))
}
