package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ashiqmuneeb/Inventory-Pro/internal/application/dto"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain/entity"
)

// RegisterMovementFromRequest adapta el request HTTP al caso de uso RegisterMovement(ctx, MovementInputDTO).
// movementType viene de la ruta (/stock/add = IN, /stock/remove = OUT).
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, movementType string, in dto.StockMovementRequest) (*dto.StockMovementResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	mov, balance, err := uc.RegisterMovement(ctx, MovementInputDTO{
		SKUID:    in.SKUID,
		Type:     movementType,
		Quantity: in.Quantity,
		Notes:    in.Notes,
	})
	if err != nil {
		return nil, err
	}
	return &dto.StockMovementResponse{
		ID:           mov.ID,
		SKUID:        mov.SKUID,
		Type:         mov.Type,
		Quantity:     mov.Quantity,
		Notes:        mov.Notes,
		CreatedAt:    mov.CreatedAt,
		CurrentStock: balance,
	}, nil
}

// ToSKUResponse arma la salida de un SKU con su existencia.
func ToSKUResponse(s *entity.SKU, stock decimal.Decimal) dto.SKUResponse {
	opts := make([]dto.SKUOptionResponse, 0, len(s.Options))
	for _, o := range s.Options {
		opts = append(opts, dto.SKUOptionResponse{Dimension: o.DimensionName, Value: o.OptionValue})
	}
	return dto.SKUResponse{
		ID:           s.ID,
		ProductID:    s.ProductID,
		Code:         s.Code,
		Options:      opts,
		CurrentStock: stock,
		CreatedAt:    s.CreatedAt,
	}
}
