package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ashiqmuneeb/Inventory-Pro/internal/application/dto"
	appinventory "github.com/ashiqmuneeb/Inventory-Pro/internal/application/inventory"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain/entity"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain/inventory"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock se maneja vía movimientos.
type ProductUseCase struct {
	txRunner    appinventory.TxRunner
	repo        repository.ProductRepository
	variantRepo repository.VariantRepository
	skuRepo     repository.SKURepository
	movRepo     repository.StockMovementRepository
	expander    *appinventory.ExpandVariantsUseCase
	stats       appinventory.StatsInvalidator
	log         zerolog.Logger
	now         func() time.Time
}

// NewProductUseCase construye el caso de uso. stats puede ser nil.
func NewProductUseCase(
	txRunner appinventory.TxRunner,
	repo repository.ProductRepository,
	variantRepo repository.VariantRepository,
	skuRepo repository.SKURepository,
	movRepo repository.StockMovementRepository,
	expander *appinventory.ExpandVariantsUseCase,
	stats appinventory.StatsInvalidator,
	log zerolog.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		txRunner:    txRunner,
		repo:        repo,
		variantRepo: variantRepo,
		skuRepo:     skuRepo,
		movRepo:     movRepo,
		expander:    expander,
		stats:       stats,
		log:         log.With().Str("usecase", "product").Logger(),
		now:         time.Now,
	}
}

// Create crea el producto con sus dimensiones y opciones y genera los SKUs iniciales,
// todo en una transacción. TotalStock inicia en 0.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	code, err := inventory.ValidateProductCode(in.Code)
	if err != nil {
		return nil, err
	}
	specs := make([]inventory.DimensionSpec, 0, len(in.Variants))
	for _, v := range in.Variants {
		specs = append(specs, inventory.DimensionSpec{Name: v.Name, Options: v.Options})
	}
	specs, err = inventory.NormalizeDimensions("variants", specs)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	product := &entity.Product{
		ID:         uuid.New().String(),
		Code:       code,
		Name:       strings.TrimSpace(in.Name),
		Active:     in.Active == nil || *in.Active,
		Favourite:  in.Favourite,
		TaxCode:    strings.TrimSpace(in.TaxCode),
		TotalStock: decimal.Zero,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	var skus []*entity.SKU
	err = uc.txRunner.Run(ctx, func(repos appinventory.TxRepos) error {
		existing, err := repos.Products.GetByCode(ctx, product.Code)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		if err := repos.Products.Create(ctx, product); err != nil {
			return err
		}
		for _, s := range specs {
			dim := &entity.VariantDimension{ID: uuid.New().String(), ProductID: product.ID, Name: s.Name}
			if err := repos.Variants.CreateDimension(ctx, dim); err != nil {
				return err
			}
			for _, value := range s.Options {
				opt := &entity.VariantOption{ID: uuid.New().String(), DimensionID: dim.ID, Value: value}
				if err := repos.Variants.CreateOption(ctx, opt); err != nil {
					return err
				}
			}
		}
		skus, err = uc.expander.ExpandInTx(ctx, repos, product)
		return err
	})
	if err != nil {
		if !errors.Is(err, domain.ErrDuplicate) && !errors.Is(err, domain.ErrInvalidInput) {
			uc.log.Error().Err(err).Str("code", product.Code).Msg("error creando producto")
		}
		return nil, err
	}
	appinventory.InvalidateStats(ctx, uc.stats, uc.log)

	uc.log.Info().Str("product_id", product.ID).Str("code", product.Code).Int("skus", len(skus)).Msg("producto creado")
	return uc.GetByID(ctx, product.ID)
}

// GetByID devuelve el producto con variantes y SKUs (con existencia). ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	dims, err := uc.variantRepo.ListByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	skus, err := uc.skuRepo.ListByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	balances, err := uc.movRepo.Balances(ctx, id)
	if err != nil {
		return nil, err
	}
	stock := make(map[string]decimal.Decimal, len(balances))
	for _, b := range balances {
		stock[b.SKUID] = b.Quantity()
	}

	resp := toProductResponse(product)
	resp.Variants = make([]dto.VariantResponse, 0, len(dims))
	for _, d := range dims {
		v := dto.VariantResponse{ID: d.ID, Name: d.Name, Position: d.Position, Options: make([]dto.OptionResponse, 0, len(d.Options))}
		for _, o := range d.Options {
			v.Options = append(v.Options, dto.OptionResponse{ID: o.ID, Value: o.Value})
		}
		resp.Variants = append(resp.Variants, v)
	}
	resp.SKUs = make([]dto.SKUResponse, 0, len(skus))
	for _, s := range skus {
		resp.SKUs = append(resp.SKUs, appinventory.ToSKUResponse(s, stock[s.ID]))
	}
	return resp, nil
}

// Update actualiza nombre, código arancelario y banderas. Nunca modifica código ni stock.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidationError("name", "es obligatorio")
		}
		product.Name = name
	}
	if in.TaxCode != nil {
		product.TaxCode = strings.TrimSpace(*in.TaxCode)
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	if in.Favourite != nil {
		product.Favourite = *in.Favourite
	}
	product.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// List lista productos, más recientes primero.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Delete elimina el producto con dimensiones, opciones, SKUs y movimientos en una transacción.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	err := uc.txRunner.Run(ctx, func(repos appinventory.TxRepos) error {
		product, err := repos.Products.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		return repos.Products.Delete(ctx, id)
	})
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			uc.log.Error().Err(err).Str("product_id", id).Msg("error eliminando producto")
		}
		return err
	}
	appinventory.InvalidateStats(ctx, uc.stats, uc.log)
	uc.log.Info().Str("product_id", id).Msg("producto eliminado")
	return nil
}

// CodeExists indica si ya existe un producto con el código (tras normalizarlo).
func (uc *ProductUseCase) CodeExists(ctx context.Context, code string) (bool, error) {
	c := inventory.NormalizeText(code)
	if c == "" {
		return false, domain.NewValidationError("code", "es obligatorio")
	}
	p, err := uc.repo.GetByCode(ctx, c)
	if err != nil {
		return false, err
	}
	return p != nil, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:         p.ID,
		ProductID:  p.SeqID,
		Code:       p.Code,
		Name:       p.Name,
		TaxCode:    p.TaxCode,
		Active:     p.Active,
		Favourite:  p.Favourite,
		TotalStock: p.TotalStock,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
