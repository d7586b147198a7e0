package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ashiqmuneeb/Inventory-Pro/internal/application/dto"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain/entity"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain/inventory"
)

// ExpandVariantsUseCase materializa un SKU por cada combinación de opciones de un producto.
// Es idempotente: las combinaciones y códigos existentes se omiten y nunca se sobrescriben ni eliminan.
type ExpandVariantsUseCase struct {
	txRunner TxRunner
	stats    StatsInvalidator
	log      zerolog.Logger
	now      func() time.Time
}

// NewExpandVariantsUseCase construye el caso de uso. stats puede ser nil.
func NewExpandVariantsUseCase(txRunner TxRunner, stats StatsInvalidator, log zerolog.Logger) *ExpandVariantsUseCase {
	return &ExpandVariantsUseCase{
		txRunner: txRunner,
		stats:    stats,
		log:      log.With().Str("usecase", "expand_variants").Logger(),
		now:      time.Now,
	}
}

// GenerateVariants expande un producto existente en una transacción que bloquea la fila del producto.
// Un producto sin dimensiones es un error de validación.
func (uc *ExpandVariantsUseCase) GenerateVariants(ctx context.Context, productID string) (*dto.GenerateVariantsResponse, error) {
	var created []*entity.SKU
	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		product, err := repos.Products.GetByIDForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		dims, err := repos.Variants.ListByProduct(ctx, product.ID)
		if err != nil {
			return err
		}
		if len(dims) == 0 {
			return domain.NewValidationError("variants", "el producto no tiene variantes")
		}
		created, err = uc.expand(ctx, repos, product, dims)
		return err
	})
	if err != nil {
		if !isBusinessError(err) {
			uc.log.Error().Err(err).Str("product_id", productID).Msg("error generando variantes")
		}
		return nil, err
	}
	if len(created) > 0 {
		InvalidateStats(ctx, uc.stats, uc.log)
	}

	uc.log.Info().Str("product_id", productID).Int("created", len(created)).Msg("variantes generadas")
	out := &dto.GenerateVariantsResponse{
		ProductID:    productID,
		CreatedCount: len(created),
		Created:      make([]dto.SKUResponse, 0, len(created)),
	}
	for _, s := range created {
		out.Created = append(out.Created, ToSKUResponse(s, decimal.Zero))
	}
	return out, nil
}

// ExpandInTx expande el producto usando los repositorios de una transacción abierta por el caller.
// El caller debe tener la fila del producto bloqueada o recién creada.
func (uc *ExpandVariantsUseCase) ExpandInTx(ctx context.Context, repos TxRepos, product *entity.Product) ([]*entity.SKU, error) {
	dims, err := repos.Variants.ListByProduct(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	return uc.expand(ctx, repos, product, dims)
}

func (uc *ExpandVariantsUseCase) expand(ctx context.Context, repos TxRepos, product *entity.Product, dims []*entity.VariantDimension) ([]*entity.SKU, error) {
	combos := inventory.Combinations(dims)
	if len(combos) == 0 {
		return nil, nil
	}
	existing, err := repos.SKUs.ListByProduct(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	// combinaciones ya cubiertas, también por SKUs manuales con código propio
	covered := make(map[string]struct{}, len(existing))
	for _, e := range existing {
		covered[optionKey(e.Options)] = struct{}{}
	}

	created := make([]*entity.SKU, 0, len(combos))
	for _, combo := range combos {
		key := make([]entity.SKUOption, 0, len(combo))
		for _, ch := range combo {
			key = append(key, entity.SKUOption{OptionID: ch.Option.ID})
		}
		if _, ok := covered[optionKey(key)]; ok {
			continue
		}
		code := inventory.ComposeSKUCode(product.Code, combo.Values())
		owner, err := repos.SKUs.GetByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if owner != nil {
			if owner.ProductID == product.ID {
				continue
			}
			// el código ya pertenece a otro producto
			return nil, domain.ErrDuplicate
		}

		sku := &entity.SKU{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Code:      code,
			CreatedAt: uc.now(),
		}
		for _, ch := range combo {
			sku.Options = append(sku.Options, entity.SKUOption{
				SKUID:         sku.ID,
				DimensionID:   ch.Dimension.ID,
				OptionID:      ch.Option.ID,
				DimensionName: ch.Dimension.Name,
				OptionValue:   ch.Option.Value,
			})
		}
		if err := repos.SKUs.Create(ctx, sku); err != nil {
			return nil, err
		}
		created = append(created, sku)
	}
	return created, nil
}
