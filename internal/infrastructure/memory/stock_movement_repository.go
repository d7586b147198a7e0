package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain/entity"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de movimientos en memoria (sólo inserción).
type StockMovementRepo struct {
	a access
}

func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	return r.a.write(ctx, func(st *state) error {
		if _, ok := st.skus[m.SKUID]; !ok {
			return domain.ErrNotFound
		}
		if m.ID == "" {
			m.ID = uuid.New().String()
		}
		if m.CreatedAt.IsZero() {
			m.CreatedAt = time.Now()
		}
		m.Seq = st.nextSeq()
		c := *m
		st.movements = append(st.movements, &c)
		return nil
	})
}

func (r *StockMovementRepo) SumBySKU(ctx context.Context, skuID string) (in, out decimal.Decimal, err error) {
	in, out = decimal.Zero, decimal.Zero
	err = r.a.read(ctx, func(st *state) error {
		for _, m := range st.movements {
			if m.SKUID != skuID {
				continue
			}
			if m.Type == entity.MovementTypeOUT {
				out = out.Add(m.Quantity)
			} else {
				in = in.Add(m.Quantity)
			}
		}
		return nil
	})
	return in, out, err
}

func (r *StockMovementRepo) SumByProduct(ctx context.Context, productID string) (decimal.Decimal, error) {
	total := decimal.Zero
	err := r.a.read(ctx, func(st *state) error {
		for _, m := range st.movements {
			if s, ok := st.skus[m.SKUID]; ok && s.ProductID == productID {
				total = total.Add(m.Signed())
			}
		}
		return nil
	})
	return total, err
}

func (r *StockMovementRepo) row(st *state, m *entity.StockMovement) *repository.MovementRow {
	row := &repository.MovementRow{StockMovement: *m}
	if s, ok := st.skus[m.SKUID]; ok {
		row.SKUCode = s.Code
		row.ProductID = s.ProductID
		if p, ok := st.products[s.ProductID]; ok {
			row.ProductName = p.Name
		}
	}
	return row
}

// newestFirst CreatedAt descendente, Seq descendente como desempate.
func newestFirst(rows []*repository.MovementRow) {
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
		return rows[i].Seq > rows[j].Seq
	})
}

func (r *StockMovementRepo) ListByDateRange(ctx context.Context, from, to *time.Time) ([]*repository.MovementRow, error) {
	var out []*repository.MovementRow
	err := r.a.read(ctx, func(st *state) error {
		for _, m := range st.movements {
			if from != nil && m.CreatedAt.Before(*from) {
				continue
			}
			if to != nil && !m.CreatedAt.Before(*to) {
				continue
			}
			out = append(out, r.row(st, m))
		}
		return nil
	})
	newestFirst(out)
	return out, err
}

func (r *StockMovementRepo) ListRecent(ctx context.Context, limit int) ([]*repository.MovementRow, error) {
	out, err := r.ListByDateRange(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *StockMovementRepo) Balances(ctx context.Context, productID string) ([]repository.SKUBalance, error) {
	var out []repository.SKUBalance
	err := r.a.read(ctx, func(st *state) error {
		idx := map[string]int{}
		skus := make([]*entity.SKU, 0, len(st.skus))
		for _, s := range st.skus {
			if productID == "" || s.ProductID == productID {
				skus = append(skus, s)
			}
		}
		sort.Slice(skus, func(i, j int) bool { return skus[i].Seq < skus[j].Seq })
		for _, s := range skus {
			idx[s.ID] = len(out)
			out = append(out, repository.SKUBalance{
				SKUID: s.ID, SKUCode: s.Code, ProductID: s.ProductID,
				TotalIn: decimal.Zero, TotalOut: decimal.Zero,
			})
		}
		for _, m := range st.movements {
			i, ok := idx[m.SKUID]
			if !ok {
				continue
			}
			if m.Type == entity.MovementTypeOUT {
				out[i].TotalOut = out[i].TotalOut.Add(m.Quantity)
			} else {
				out[i].TotalIn = out[i].TotalIn.Add(m.Quantity)
			}
		}
		return nil
	})
	return out, err
}

func (r *StockMovementRepo) ProductBalances(ctx context.Context) ([]repository.ProductBalance, error) {
	var out []repository.ProductBalance
	err := r.a.read(ctx, func(st *state) error {
		ledger := map[string]decimal.Decimal{}
		for _, m := range st.movements {
			if s, ok := st.skus[m.SKUID]; ok {
				ledger[s.ProductID] = ledger[s.ProductID].Add(m.Signed())
			}
		}
		for _, p := range st.products {
			out = append(out, repository.ProductBalance{
				ProductID:   p.ID,
				ProductCode: p.Code,
				Cached:      p.TotalStock,
				Ledger:      ledger[p.ID],
			})
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ProductCode < out[j].ProductCode })
	return out, err
}
