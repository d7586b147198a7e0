package inventory

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ashiqmuneeb/Inventory-Pro/internal/application/dto"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain/entity"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain/inventory"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain/repository"
)

// SKUUseCase consultas de SKUs con existencia y alta manual de variantes.
type SKUUseCase struct {
	txRunner TxRunner
	skuRepo  repository.SKURepository
	movRepo  repository.StockMovementRepository
	stats    StatsInvalidator
	log      zerolog.Logger
	now      func() time.Time
}

// NewSKUUseCase construye el caso de uso. stats puede ser nil.
func NewSKUUseCase(
	txRunner TxRunner,
	skuRepo repository.SKURepository,
	movRepo repository.StockMovementRepository,
	stats StatsInvalidator,
	log zerolog.Logger,
) *SKUUseCase {
	return &SKUUseCase{
		txRunner: txRunner,
		skuRepo:  skuRepo,
		movRepo:  movRepo,
		stats:    stats,
		log:      log.With().Str("usecase", "sku").Logger(),
		now:      time.Now,
	}
}

// List lista SKUs con su existencia; con productID sólo los de ese producto (sin paginar).
func (uc *SKUUseCase) List(ctx context.Context, productID string, page dto.PageRequest) (*dto.SKUListResponse, error) {
	page.DefaultPage()
	var (
		skus []*entity.SKU
		err  error
	)
	if productID != "" {
		skus, err = uc.skuRepo.ListByProduct(ctx, productID)
	} else {
		skus, err = uc.skuRepo.List(ctx, page.Limit, page.Offset)
	}
	if err != nil {
		return nil, err
	}
	balances, err := uc.movRepo.Balances(ctx, productID)
	if err != nil {
		return nil, err
	}
	stock := make(map[string]decimal.Decimal, len(balances))
	for _, b := range balances {
		stock[b.SKUID] = b.Quantity()
	}

	items := make([]dto.SKUResponse, 0, len(skus))
	for _, s := range skus {
		items = append(items, ToSKUResponse(s, stock[s.ID]))
	}
	resp := &dto.SKUListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(items)}}
	if productID != "" {
		resp.Page = dto.PageResponse{Limit: len(items), Total: len(items)}
	}
	return resp, nil
}

// GetByID devuelve un SKU con su existencia. ErrNotFound si no existe.
func (uc *SKUUseCase) GetByID(ctx context.Context, id string) (*dto.SKUResponse, error) {
	sku, err := uc.skuRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sku == nil {
		return nil, domain.ErrNotFound
	}
	in, out, err := uc.movRepo.SumBySKU(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToSKUResponse(sku, in.Sub(out))
	return &resp, nil
}

type skuAssignment struct {
	dimension string
	value     string
}

// Create da de alta un SKU manual. Dimensiones y opciones se buscan o crean (unicidad garantizada
// por el almacenamiento); el SKU debe asignar exactamente una opción a cada dimensión del producto.
// No se permiten dimensiones nuevas cuando el producto ya tiene SKUs: quedarían incompletos.
func (uc *SKUUseCase) Create(ctx context.Context, in dto.CreateSKURequest) (*dto.SKUResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	assignments, err := normalizeAssignments(in.Options)
	if err != nil {
		return nil, err
	}
	code := ""
	if strings.TrimSpace(in.Code) != "" {
		code = inventory.NormalizeText(in.Code)
	}

	var sku *entity.SKU
	err = uc.txRunner.Run(ctx, func(repos TxRepos) error {
		product, err := repos.Products.GetByIDForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		existing, err := repos.SKUs.ListByProduct(ctx, product.ID)
		if err != nil {
			return err
		}

		chosen := make(map[string]entity.SKUOption, len(assignments))
		for _, a := range assignments {
			dim, created, err := repos.Variants.FindOrCreateDimension(ctx, product.ID, a.dimension)
			if err != nil {
				return err
			}
			if created && len(existing) > 0 {
				return domain.NewValidationError("options", "dimensión nueva no permitida, el producto ya tiene SKUs: "+a.dimension)
			}
			opt, err := repos.Variants.FindOrCreateOption(ctx, dim.ID, a.value)
			if err != nil {
				return err
			}
			chosen[dim.ID] = entity.SKUOption{
				DimensionID:   dim.ID,
				OptionID:      opt.ID,
				DimensionName: dim.Name,
				OptionValue:   opt.Value,
			}
		}

		dims, err := repos.Variants.ListByProduct(ctx, product.ID)
		if err != nil {
			return err
		}
		sku = &entity.SKU{ID: uuid.New().String(), ProductID: product.ID, CreatedAt: uc.now()}
		values := make([]string, 0, len(dims))
		for _, d := range dims {
			o, ok := chosen[d.ID]
			if !ok {
				return domain.NewValidationError("options", "falta una opción para la dimensión "+d.Name)
			}
			o.SKUID = sku.ID
			sku.Options = append(sku.Options, o)
			values = append(values, o.OptionValue)
		}

		key := optionKey(sku.Options)
		for _, e := range existing {
			if optionKey(e.Options) == key {
				return domain.ErrDuplicate
			}
		}

		sku.Code = code
		if sku.Code == "" {
			sku.Code = inventory.ComposeSKUCode(product.Code, values)
		}
		dup, err := repos.SKUs.GetByCode(ctx, sku.Code)
		if err != nil {
			return err
		}
		if dup != nil {
			return domain.ErrDuplicate
		}
		return repos.SKUs.Create(ctx, sku)
	})
	if err != nil {
		if !isBusinessError(err) {
			uc.log.Error().Err(err).Str("product_id", in.ProductID).Msg("error creando SKU")
		}
		return nil, err
	}
	InvalidateStats(ctx, uc.stats, uc.log)

	uc.log.Info().Str("sku_id", sku.ID).Str("code", sku.Code).Msg("SKU creado")
	resp := ToSKUResponse(sku, decimal.Zero)
	return &resp, nil
}

func normalizeAssignments(opts []dto.SKUOptionRequest) ([]skuAssignment, error) {
	verr := &domain.ValidationError{}
	out := make([]skuAssignment, 0, len(opts))
	seen := make(map[string]struct{}, len(opts))
	for i, o := range opts {
		field := "options[" + strconv.Itoa(i) + "]"
		name := inventory.NormalizeText(o.Dimension)
		if name == "" {
			verr.Add(field+".dimension", "es obligatorio")
			continue
		}
		if _, dup := seen[name]; dup {
			verr.Add(field+".dimension", "dimensión repetida: "+name)
			continue
		}
		seen[name] = struct{}{}
		value, err := inventory.ValidateOptionValue(field+".value", o.Value)
		if err != nil {
			var fe *domain.ValidationError
			if errors.As(err, &fe) {
				verr.Fields = append(verr.Fields, fe.Fields...)
			}
			continue
		}
		out = append(out, skuAssignment{dimension: name, value: value})
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return out, nil
}

// optionKey identifica la combinación de opciones de un SKU, independiente del orden.
func optionKey(opts []entity.SKUOption) string {
	ids := make([]string, 0, len(opts))
	for _, o := range opts {
		ids = append(ids, o.OptionID)
	}
	sort.Strings(ids)
	return strings.Join(ids, "|")
}
