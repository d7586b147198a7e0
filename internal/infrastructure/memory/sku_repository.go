package memory

import (
	"context"
	"sort"

	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain/entity"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain/repository"
)

var _ repository.SKURepository = (*SKURepo)(nil)

// SKURepo implementación en memoria de SKURepository.
type SKURepo struct {
	a access
}

func (r *SKURepo) Create(ctx context.Context, sku *entity.SKU) error {
	return r.a.write(ctx, func(st *state) error {
		if _, ok := st.products[sku.ProductID]; !ok {
			return domain.ErrNotFound
		}
		if _, ok := st.skus[sku.ID]; ok {
			return domain.ErrDuplicate
		}
		seenDims := make(map[string]struct{}, len(sku.Options))
		for _, o := range sku.Options {
			if _, dup := seenDims[o.DimensionID]; dup {
				return domain.ErrDuplicate
			}
			seenDims[o.DimensionID] = struct{}{}
			if _, ok := st.options[o.OptionID]; !ok {
				return domain.ErrNotFound
			}
		}
		for _, s := range st.skus {
			if s.Code == sku.Code {
				return domain.ErrDuplicate
			}
		}
		sku.Seq = st.nextSeq()
		st.skus[sku.ID] = copySKU(sku)
		return nil
	})
}

// withNames completa los nombres de dimensión y valor de cada opción, en orden de dimensión.
func withNames(st *state, s *entity.SKU) *entity.SKU {
	c := copySKU(s)
	for i, o := range c.Options {
		if d, ok := st.dimensions[o.DimensionID]; ok {
			c.Options[i].DimensionName = d.Name
		}
		if v, ok := st.options[o.OptionID]; ok {
			c.Options[i].OptionValue = v.Value
		}
	}
	sort.SliceStable(c.Options, func(i, j int) bool {
		return dimPos(st, c.Options[i].DimensionID) < dimPos(st, c.Options[j].DimensionID)
	})
	return c
}

func dimPos(st *state, id string) int64 {
	if d, ok := st.dimensions[id]; ok {
		return d.Position
	}
	return 0
}

func (r *SKURepo) GetByID(ctx context.Context, id string) (*entity.SKU, error) {
	var out *entity.SKU
	err := r.a.read(ctx, func(st *state) error {
		if s, ok := st.skus[id]; ok {
			out = withNames(st, s)
		}
		return nil
	})
	return out, err
}

func (r *SKURepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.SKU, error) {
	return r.GetByID(ctx, id)
}

func (r *SKURepo) GetByCode(ctx context.Context, code string) (*entity.SKU, error) {
	var out *entity.SKU
	err := r.a.read(ctx, func(st *state) error {
		for _, s := range st.skus {
			if s.Code == code {
				out = withNames(st, s)
				return nil
			}
		}
		return nil
	})
	return out, err
}

func sortSKUs(list []*entity.SKU) {
	sort.Slice(list, func(i, j int) bool { return list[i].Seq < list[j].Seq })
}

func (r *SKURepo) ListByProduct(ctx context.Context, productID string) ([]*entity.SKU, error) {
	var out []*entity.SKU
	err := r.a.read(ctx, func(st *state) error {
		for _, s := range st.skus {
			if s.ProductID == productID {
				out = append(out, withNames(st, s))
			}
		}
		return nil
	})
	sortSKUs(out)
	return out, err
}

func (r *SKURepo) List(ctx context.Context, limit, offset int) ([]*entity.SKU, error) {
	var all []*entity.SKU
	err := r.a.read(ctx, func(st *state) error {
		for _, s := range st.skus {
			all = append(all, withNames(st, s))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortSKUs(all)
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}
