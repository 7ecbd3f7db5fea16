package operaciones_test

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
)

// fakeStore es la "base de datos" en memoria de los tests. El mutex cumple el papel
// del lock de fila: el fakeTxRunner lo toma durante toda la transacción, de modo que
// las mutaciones concurrentes quedan serializadas igual que con SELECT FOR UPDATE.
type fakeStore struct {
	mu         sync.Mutex
	ops        map[string]*entity.Operacion
	items      map[string]*entity.OperacionItem
	sucursales map[string]*entity.Sucursal
	usuarios   map[string]*entity.Usuario
	seq        int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		ops:        map[string]*entity.Operacion{},
		items:      map[string]*entity.OperacionItem{},
		sucursales: map[string]*entity.Sucursal{},
		usuarios:   map[string]*entity.Usuario{},
	}
}

func cloneOp(op *entity.Operacion) *entity.Operacion {
	c := *op
	c.Items = nil
	return &c
}

func cloneItem(it *entity.OperacionItem) *entity.OperacionItem {
	c := *it
	return &c
}

// fakeOpRepo implementa repository.OperacionRepository sobre el store.
// Con locking=true cada método toma el mutex (uso fuera de transacción);
// con locking=false asume que el fakeTxRunner ya lo tiene.
type fakeOpRepo struct {
	s       *fakeStore
	locking bool
}

func (r *fakeOpRepo) withLock(fn func() error) error {
	if r.locking {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	return fn()
}

func (r *fakeOpRepo) Create(_ context.Context, op *entity.Operacion) error {
	return r.withLock(func() error {
		r.s.ops[op.ID] = cloneOp(op)
		return nil
	})
}

func (r *fakeOpRepo) GetByID(_ context.Context, id string) (*entity.Operacion, error) {
	var out *entity.Operacion
	_ = r.withLock(func() error {
		if op, ok := r.s.ops[id]; ok {
			out = cloneOp(op)
		}
		return nil
	})
	return out, nil
}

func (r *fakeOpRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Operacion, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeOpRepo) Update(_ context.Context, op *entity.Operacion) error {
	return r.withLock(func() error {
		r.s.ops[op.ID] = cloneOp(op)
		return nil
	})
}

func (r *fakeOpRepo) List(_ context.Context, f repository.FiltrosOperacion) ([]*entity.Operacion, error) {
	var out []*entity.Operacion
	_ = r.withLock(func() error {
		for _, op := range r.s.ops {
			if f.SucursalID != "" && op.SucursalID != f.SucursalID {
				continue
			}
			if f.Tipo != "" && op.TipoOperacion != f.Tipo {
				continue
			}
			if f.Estado != "" && op.Estado != f.Estado {
				continue
			}
			if f.AsignadoA != "" && (op.AsignadoA == nil || *op.AsignadoA != f.AsignadoA) {
				continue
			}
			out = append(out, cloneOp(op))
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreadoEn.After(out[j].CreadoEn) })
	return out, nil
}

func (r *fakeOpRepo) SiguienteConsecutivo(_ context.Context) (int64, error) {
	var n int64
	_ = r.withLock(func() error {
		r.s.seq++
		n = r.s.seq
		return nil
	})
	return n, nil
}

// fakeItemRepo implementa repository.OperacionItemRepository sobre el store.
type fakeItemRepo struct {
	s       *fakeStore
	locking bool
}

func (r *fakeItemRepo) withLock(fn func() error) error {
	if r.locking {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	return fn()
}

func (r *fakeItemRepo) CreateBatch(_ context.Context, items []*entity.OperacionItem) error {
	return r.withLock(func() error {
		for _, it := range items {
			r.s.items[it.ID] = cloneItem(it)
		}
		return nil
	})
}

func (r *fakeItemRepo) GetByID(_ context.Context, id string) (*entity.OperacionItem, error) {
	var out *entity.OperacionItem
	_ = r.withLock(func() error {
		if it, ok := r.s.items[id]; ok {
			out = cloneItem(it)
		}
		return nil
	})
	return out, nil
}

func (r *fakeItemRepo) Update(_ context.Context, item *entity.OperacionItem) error {
	return r.withLock(func() error {
		r.s.items[item.ID] = cloneItem(item)
		return nil
	})
}

func (r *fakeItemRepo) ListByOperacion(_ context.Context, operacionID string) ([]entity.OperacionItem, error) {
	var out []entity.OperacionItem
	_ = r.withLock(func() error {
		for _, it := range r.s.items {
			if it.OperacionID == operacionID {
				out = append(out, *cloneItem(it))
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreadoEn.Equal(out[j].CreadoEn) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreadoEn.Before(out[j].CreadoEn)
	})
	return out, nil
}

func (r *fakeItemRepo) CancelarPendientes(_ context.Context, operacionID string) (int, error) {
	n := 0
	_ = r.withLock(func() error {
		for _, it := range r.s.items {
			if it.OperacionID == operacionID && it.Estado == entity.ItemPendiente {
				it.Estado = entity.ItemCancelado
				n++
			}
		}
		return nil
	})
	return n, nil
}

// fakeTxRunner serializa las transacciones con el mutex del store.
type fakeTxRunner struct {
	s *fakeStore
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	opRepo repository.OperacionRepository,
	itemRepo repository.OperacionItemRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return fn(&fakeOpRepo{s: r.s}, &fakeItemRepo{s: r.s})
}

// fakeSucursalRepo y fakeUsuarioRepo validación de existencia.
type fakeSucursalRepo struct{ s *fakeStore }

func (r *fakeSucursalRepo) Create(_ context.Context, sucursal *entity.Sucursal) error {
	r.s.sucursales[sucursal.ID] = sucursal
	return nil
}

func (r *fakeSucursalRepo) GetByID(_ context.Context, id string) (*entity.Sucursal, error) {
	return r.s.sucursales[id], nil
}

func (r *fakeSucursalRepo) List(_ context.Context, _, _ int) ([]*entity.Sucursal, error) {
	var out []*entity.Sucursal
	for _, s := range r.s.sucursales {
		out = append(out, s)
	}
	return out, nil
}

type fakeUsuarioRepo struct{ s *fakeStore }

func (r *fakeUsuarioRepo) GetByID(_ context.Context, id string) (*entity.Usuario, error) {
	return r.s.usuarios[id], nil
}
