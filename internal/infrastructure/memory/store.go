// Package memory implementa los puertos de persistencia en memoria.
// Las transacciones se serializan con un mutex y se confirman copiando el estado completo
// (copy-on-write): un error o un contexto cancelado descarta la copia sin efectos visibles.
// Cada escritura cuesta O(catálogo + libro); pensado para tests y desarrollo, no para producción.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ashiqmuneeb/Inventory-Pro/internal/application/inventory"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain/entity"
)

var _ inventory.TxRunner = (*Store)(nil)

type state struct {
	products   map[string]*entity.Product
	dimensions map[string]*entity.VariantDimension // sin Options; se arman al leer
	options    map[string]*entity.VariantOption
	skus       map[string]*entity.SKU
	movements  []*entity.StockMovement // en orden de inserción (Seq creciente)
	productSeq int64
	seq        int64 // secuencia para posiciones y Seq de movimientos
}

func newState() *state {
	return &state{
		products:   map[string]*entity.Product{},
		dimensions: map[string]*entity.VariantDimension{},
		options:    map[string]*entity.VariantOption{},
		skus:       map[string]*entity.SKU{},
	}
}

func (s *state) clone() *state {
	c := &state{
		products:   make(map[string]*entity.Product, len(s.products)),
		dimensions: make(map[string]*entity.VariantDimension, len(s.dimensions)),
		options:    make(map[string]*entity.VariantOption, len(s.options)),
		skus:       make(map[string]*entity.SKU, len(s.skus)),
		movements:  make([]*entity.StockMovement, len(s.movements)),
		productSeq: s.productSeq,
		seq:        s.seq,
	}
	for k, v := range s.products {
		p := *v
		c.products[k] = &p
	}
	for k, v := range s.dimensions {
		d := *v
		c.dimensions[k] = &d
	}
	for k, v := range s.options {
		o := *v
		c.options[k] = &o
	}
	for k, v := range s.skus {
		c.skus[k] = copySKU(v)
	}
	// los movimientos son inmutables: basta copiar el slice
	copy(c.movements, s.movements)
	return c
}

func (s *state) nextSeq() int64 {
	s.seq++
	return s.seq
}

// dimensionsOf dimensiones del producto con sus opciones, ordenadas por Position.
func (s *state) dimensionsOf(productID string) []*entity.VariantDimension {
	var out []*entity.VariantDimension
	for _, d := range s.dimensions {
		if d.ProductID != productID {
			continue
		}
		dc := *d
		dc.Options = nil
		for _, o := range s.options {
			if o.DimensionID == d.ID {
				oc := *o
				dc.Options = append(dc.Options, &oc)
			}
		}
		sort.Slice(dc.Options, func(i, j int) bool { return dc.Options[i].Position < dc.Options[j].Position })
		out = append(out, &dc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// Store almacenamiento en memoria; implementa inventory.TxRunner.
type Store struct {
	mu sync.RWMutex
	st *state
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Run ejecuta fn sobre una copia del estado y la publica sólo si fn no falla y ctx sigue vigente.
func (s *Store) Run(ctx context.Context, fn func(repos inventory.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	if err := fn(s.repos(work)); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.st = work
	return nil
}

// Repos repositorios fuera de transacción (lecturas y escrituras sueltas).
func (s *Store) Repos() inventory.TxRepos {
	return s.repos(nil)
}

func (s *Store) repos(tx *state) inventory.TxRepos {
	a := access{store: s, tx: tx}
	return inventory.TxRepos{
		Products:  &ProductRepo{a: a},
		Variants:  &VariantRepo{a: a},
		SKUs:      &SKURepo{a: a},
		Movements: &StockMovementRepo{a: a},
	}
}

// access resuelve sobre qué estado opera un repositorio: la copia de la tx o el estado publicado.
type access struct {
	store *Store
	tx    *state
}

func (a access) read(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if a.tx != nil {
		return fn(a.tx)
	}
	a.store.mu.RLock()
	defer a.store.mu.RUnlock()
	return fn(a.store.st)
}

// write fuera de tx valida antes de mutar, así que un error no deja cambios parciales.
func (a access) write(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if a.tx != nil {
		return fn(a.tx)
	}
	a.store.mu.Lock()
	defer a.store.mu.Unlock()
	return fn(a.store.st)
}

func copySKU(s *entity.SKU) *entity.SKU {
	c := *s
	c.Options = append([]entity.SKUOption(nil), s.Options...)
	return &c
}

func copyProduct(p *entity.Product) *entity.Product {
	c := *p
	return &c
}
