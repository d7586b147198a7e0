package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain/entity"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain/repository"
)

var _ repository.VariantRepository = (*VariantRepo)(nil)

// VariantRepo implementación en memoria de VariantRepository.
type VariantRepo struct {
	a access
}

func (r *VariantRepo) CreateDimension(ctx context.Context, dim *entity.VariantDimension) error {
	return r.a.write(ctx, func(st *state) error {
		if _, ok := st.products[dim.ProductID]; !ok {
			return domain.ErrNotFound
		}
		for _, d := range st.dimensions {
			if d.ProductID == dim.ProductID && d.Name == dim.Name {
				return domain.ErrDuplicate
			}
		}
		if dim.ID == "" {
			dim.ID = uuid.New().String()
		}
		dim.Position = st.nextSeq()
		c := *dim
		c.Options = nil
		st.dimensions[c.ID] = &c
		return nil
	})
}

func (r *VariantRepo) FindOrCreateDimension(ctx context.Context, productID, name string) (*entity.VariantDimension, bool, error) {
	var (
		out     *entity.VariantDimension
		created bool
	)
	err := r.a.write(ctx, func(st *state) error {
		for _, d := range st.dimensions {
			if d.ProductID == productID && d.Name == name {
				c := *d
				out = &c
				return nil
			}
		}
		if _, ok := st.products[productID]; !ok {
			return domain.ErrNotFound
		}
		d := &entity.VariantDimension{ID: uuid.New().String(), ProductID: productID, Name: name, Position: st.nextSeq()}
		st.dimensions[d.ID] = d
		c := *d
		out, created = &c, true
		return nil
	})
	return out, created, err
}

func (r *VariantRepo) CreateOption(ctx context.Context, opt *entity.VariantOption) error {
	return r.a.write(ctx, func(st *state) error {
		if _, ok := st.dimensions[opt.DimensionID]; !ok {
			return domain.ErrNotFound
		}
		for _, o := range st.options {
			if o.DimensionID == opt.DimensionID && o.Value == opt.Value {
				return domain.ErrDuplicate
			}
		}
		if opt.ID == "" {
			opt.ID = uuid.New().String()
		}
		opt.Position = st.nextSeq()
		c := *opt
		st.options[c.ID] = &c
		return nil
	})
}

func (r *VariantRepo) FindOrCreateOption(ctx context.Context, dimensionID, value string) (*entity.VariantOption, error) {
	var out *entity.VariantOption
	err := r.a.write(ctx, func(st *state) error {
		for _, o := range st.options {
			if o.DimensionID == dimensionID && o.Value == value {
				c := *o
				out = &c
				return nil
			}
		}
		if _, ok := st.dimensions[dimensionID]; !ok {
			return domain.ErrNotFound
		}
		o := &entity.VariantOption{ID: uuid.New().String(), DimensionID: dimensionID, Value: value, Position: st.nextSeq()}
		st.options[o.ID] = o
		c := *o
		out = &c
		return nil
	})
	return out, err
}

func (r *VariantRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.VariantDimension, error) {
	var out []*entity.VariantDimension
	err := r.a.read(ctx, func(st *state) error {
		out = st.dimensionsOf(productID)
		return nil
	})
	return out, err
}
