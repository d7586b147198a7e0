package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain/entity"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain/inventory"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain/repository"
)

// RegisterMovementUseCase registra entradas y salidas en el libro de movimientos de forma
// transaccional, con bloqueo de fila del SKU (SELECT FOR UPDATE) y Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	skuRepo  repository.SKURepository
	movRepo  repository.StockMovementRepository
	stats    StatsInvalidator
	log      zerolog.Logger
	now      func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso. stats puede ser nil.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	skuRepo repository.SKURepository,
	movRepo repository.StockMovementRepository,
	stats StatsInvalidator,
	log zerolog.Logger,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner: txRunner,
		skuRepo:  skuRepo,
		movRepo:  movRepo,
		stats:    stats,
		log:      log.With().Str("usecase", "register_movement").Logger(),
		now:      time.Now,
	}
}

// MovementInputDTO entrada para registrar un movimiento.
type MovementInputDTO struct {
	SKUID    string
	Type     string
	Quantity decimal.Decimal
	Notes    string
}

func (in MovementInputDTO) validate() error {
	verr := &domain.ValidationError{}
	if in.SKUID == "" {
		verr.Add("product_variant", "es obligatorio")
	}
	if !entity.IsValidMovementType(in.Type) {
		verr.Add("transaction_type", "debe ser IN u OUT")
	}
	switch {
	case !in.Quantity.GreaterThan(decimal.Zero):
		verr.Add("quantity", "debe ser mayor que cero")
	case !inventory.QuantityFitsScale(in.Quantity):
		verr.Add("quantity", "admite como máximo 8 decimales")
	case !inventory.QuantityFitsMagnitude(in.Quantity):
		verr.Add("quantity", "admite como máximo 12 dígitos enteros")
	}
	return verr.OrNil()
}

// RegisterMovement inicia una transacción, bloquea el SKU, valida la existencia en salidas,
// agrega la entrada al libro y ajusta el contador del producto. Commit o Rollback lo hace TxRunner.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) (*entity.StockMovement, decimal.Decimal, error) {
	if err := input.validate(); err != nil {
		return nil, decimal.Zero, err
	}

	var (
		mov     *entity.StockMovement
		balance decimal.Decimal
	)
	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		// Bloquea la fila del SKU: las salidas concurrentes del mismo SKU se serializan aquí
		sku, err := repos.SKUs.GetByIDForUpdate(ctx, input.SKUID)
		if err != nil {
			return err
		}
		if sku == nil {
			return domain.ErrNotFound
		}
		in, out, err := repos.Movements.SumBySKU(ctx, sku.ID)
		if err != nil {
			return err
		}
		current := in.Sub(out)
		if input.Type == entity.MovementTypeOUT && !inventory.CanWithdraw(current, input.Quantity) {
			return domain.ErrInsufficientStock
		}

		mov = &entity.StockMovement{
			ID:        uuid.New().String(),
			SKUID:     sku.ID,
			Type:      input.Type,
			Quantity:  input.Quantity,
			Notes:     input.Notes,
			CreatedAt: uc.now(),
		}
		if err := repos.Movements.Create(ctx, mov); err != nil {
			return err
		}
		if err := repos.Products.AdjustTotalStock(ctx, sku.ProductID, mov.Signed()); err != nil {
			return err
		}
		balance = current.Add(mov.Signed())
		return nil
	})
	if err != nil {
		if !isBusinessError(err) {
			uc.log.Error().Err(err).
				Str("sku_id", input.SKUID).
				Str("type", input.Type).
				Str("quantity", input.Quantity.String()).
				Msg("error registrando movimiento")
		}
		return nil, decimal.Zero, err
	}

	uc.invalidateStats(ctx)
	uc.log.Info().
		Str("movement_id", mov.ID).
		Str("sku_id", mov.SKUID).
		Str("type", mov.Type).
		Str("quantity", mov.Quantity.String()).
		Str("balance", balance.String()).
		Msg("movimiento registrado")
	return mov, balance, nil
}

// AddStock registra una entrada (IN).
func (uc *RegisterMovementUseCase) AddStock(ctx context.Context, skuID string, qty decimal.Decimal, notes string) (*entity.StockMovement, decimal.Decimal, error) {
	return uc.RegisterMovement(ctx, MovementInputDTO{SKUID: skuID, Type: entity.MovementTypeIN, Quantity: qty, Notes: notes})
}

// RemoveStock registra una salida (OUT); ErrInsufficientStock si supera la existencia.
func (uc *RegisterMovementUseCase) RemoveStock(ctx context.Context, skuID string, qty decimal.Decimal, notes string) (*entity.StockMovement, decimal.Decimal, error) {
	return uc.RegisterMovement(ctx, MovementInputDTO{SKUID: skuID, Type: entity.MovementTypeOUT, Quantity: qty, Notes: notes})
}

// CurrentQuantity existencia derivada del libro (Σ IN − Σ OUT). ErrNotFound si el SKU no existe.
func (uc *RegisterMovementUseCase) CurrentQuantity(ctx context.Context, skuID string) (decimal.Decimal, error) {
	sku, err := uc.skuRepo.GetByID(ctx, skuID)
	if err != nil {
		return decimal.Zero, err
	}
	if sku == nil {
		return decimal.Zero, domain.ErrNotFound
	}
	in, out, err := uc.movRepo.SumBySKU(ctx, skuID)
	if err != nil {
		return decimal.Zero, err
	}
	return in.Sub(out), nil
}

// ProductQuantity suma las existencias derivadas de todos los SKUs del producto.
func (uc *RegisterMovementUseCase) ProductQuantity(ctx context.Context, productID string) (decimal.Decimal, error) {
	return uc.movRepo.SumByProduct(ctx, productID)
}

func (uc *RegisterMovementUseCase) invalidateStats(ctx context.Context) {
	InvalidateStats(ctx, uc.stats, uc.log)
}

// isBusinessError errores esperados que no se registran como fallas internas.
func isBusinessError(err error) bool {
	return errors.Is(err, domain.ErrInvalidInput) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrDuplicate) ||
		errors.Is(err, domain.ErrConflict) ||
		errors.Is(err, domain.ErrInsufficientStock)
}
