package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain/entity"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	a access
}

func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	return r.a.write(ctx, func(st *state) error {
		for _, p := range st.products {
			if p.Code == product.Code {
				return domain.ErrDuplicate
			}
		}
		if _, ok := st.products[product.ID]; ok {
			return domain.ErrDuplicate
		}
		st.productSeq++
		product.SeqID = st.productSeq
		st.products[product.ID] = copyProduct(product)
		return nil
	})
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.a.read(ctx, func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = copyProduct(p)
		}
		return nil
	})
	return out, err
}

// GetByIDForUpdate equivale a GetByID: la tx en memoria ya tiene acceso exclusivo.
func (r *ProductRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	var out *entity.Product
	err := r.a.read(ctx, func(st *state) error {
		for _, p := range st.products {
			if p.Code == code {
				out = copyProduct(p)
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	return r.a.write(ctx, func(st *state) error {
		p, ok := st.products[product.ID]
		if !ok {
			return domain.ErrNotFound
		}
		p.Name = product.Name
		p.Active = product.Active
		p.Favourite = product.Favourite
		p.TaxCode = product.TaxCode
		p.UpdatedAt = product.UpdatedAt
		return nil
	})
}

func (r *ProductRepo) AdjustTotalStock(ctx context.Context, productID string, delta decimal.Decimal) error {
	return r.a.write(ctx, func(st *state) error {
		p, ok := st.products[productID]
		if !ok {
			return domain.ErrNotFound
		}
		p.TotalStock = p.TotalStock.Add(delta)
		return nil
	})
}

func (r *ProductRepo) SetTotalStock(ctx context.Context, productID string, total decimal.Decimal) error {
	return r.a.write(ctx, func(st *state) error {
		p, ok := st.products[productID]
		if !ok {
			return domain.ErrNotFound
		}
		p.TotalStock = total
		return nil
	})
}

// List más recientes primero (SeqID descendente como desempate).
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.a.read(ctx, func(st *state) error {
		all := make([]*entity.Product, 0, len(st.products))
		for _, p := range st.products {
			all = append(all, p)
		}
		sort.Slice(all, func(i, j int) bool {
			if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
				return all[i].CreatedAt.After(all[j].CreatedAt)
			}
			return all[i].SeqID > all[j].SeqID
		})
		for i := offset; i < len(all) && (limit <= 0 || len(out) < limit); i++ {
			out = append(out, copyProduct(all[i]))
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) Count(ctx context.Context) (int, error) {
	n := 0
	err := r.a.read(ctx, func(st *state) error {
		n = len(st.products)
		return nil
	})
	return n, err
}

// Delete elimina en cascada dimensiones, opciones, SKUs y movimientos.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return r.a.write(ctx, func(st *state) error {
		if _, ok := st.products[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.products, id)
		for dimID, d := range st.dimensions {
			if d.ProductID != id {
				continue
			}
			for optID, o := range st.options {
				if o.DimensionID == dimID {
					delete(st.options, optID)
				}
			}
			delete(st.dimensions, dimID)
		}
		removed := map[string]struct{}{}
		for skuID, s := range st.skus {
			if s.ProductID == id {
				removed[skuID] = struct{}{}
				delete(st.skus, skuID)
			}
		}
		kept := st.movements[:0:0]
		for _, m := range st.movements {
			if _, gone := removed[m.SKUID]; !gone {
				kept = append(kept, m)
			}
		}
		st.movements = kept
		return nil
	})
}
