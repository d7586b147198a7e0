package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain"
)

func pgErr(code string) error {
	return fmt.Errorf("exec: %w", &pgconn.PgError{Code: code})
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(pgErr("23505")))
	assert.False(t, isUniqueViolation(pgErr("23503")))
	assert.False(t, isUniqueViolation(errors.New("otro")))
}

func TestIsRetryableTxError(t *testing.T) {
	assert.True(t, isRetryableTxError(pgErr("40001")))
	assert.True(t, isRetryableTxError(pgErr("40P01")))
	assert.False(t, isRetryableTxError(pgErr("23505")))
	assert.False(t, isRetryableTxError(context.Canceled))
	assert.False(t, isRetryableTxError(domain.ErrInsufficientStock))
	assert.False(t, isRetryableTxError(nil))
}

func TestTranslateInsertErr(t *testing.T) {
	assert.ErrorIs(t, translateInsertErr("insert", pgErr("23505")), domain.ErrDuplicate)
	assert.ErrorIs(t, translateInsertErr("insert", pgErr("23503")), domain.ErrNotFound)
	assert.ErrorIs(t, translateInsertErr("insert", pgErr("22P02")), domain.ErrNotFound)
	err := translateInsertErr("insert sku", errors.New("boom"))
	assert.Contains(t, err.Error(), "insert sku")
}

func TestIsUUID(t *testing.T) {
	assert.True(t, isUUID("0b6f1c3e-8f0a-4c1e-9a57-3f1d2e4b5c6d"))
	for _, id := range []string{"", "abc", "no-existe", "0b6f1c3e8f0a4c1e9a573f1d2e4b5c6d", "{0b6f1c3e-8f0a-4c1e-9a57-3f1d2e4b5c6d}"} {
		assert.False(t, isUUID(id), id)
	}
}

// Un id mal formado se responde como inexistente sin llegar a la base; r.q queda sin usar.
func TestRepos_IdMalFormadoEsNoEncontrado(t *testing.T) {
	ctx := context.Background()
	products := &ProductRepo{}
	skus := &SKURepo{}
	variants := &VariantRepo{}
	movements := &StockMovementRepo{}

	p, err := products.GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, p)
	p, err = products.GetByIDForUpdate(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, p)

	s, err := skus.GetByIDForUpdate(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, s)
	s, err = skus.GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, s)
	list, err := skus.ListByProduct(ctx, "abc")
	require.NoError(t, err)
	assert.Empty(t, list)

	dims, err := variants.ListByProduct(ctx, "abc")
	require.NoError(t, err)
	assert.Empty(t, dims)

	in, out, err := movements.SumBySKU(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, in.IsZero() && out.IsZero())
	balances, err := movements.Balances(ctx, "abc")
	require.NoError(t, err)
	assert.Empty(t, balances)
}

func fastRetry() RetryConfig {
	return RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond, Multiplier: 2}
}

func TestRetryWithBackoff_ReintentaConflictos(t *testing.T) {
	calls := 0
	err := retryWithBackoff(context.Background(), fastRetry(), func() error {
		calls++
		if calls < 3 {
			return pgErr("40001")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryWithBackoff_NoReintentaErroresDeNegocio(t *testing.T) {
	calls := 0
	err := retryWithBackoff(context.Background(), fastRetry(), func() error {
		calls++
		return domain.ErrInsufficientStock
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 1, calls)
}

func TestRetryWithBackoff_AgotaIntentos(t *testing.T) {
	calls := 0
	err := retryWithBackoff(context.Background(), fastRetry(), func() error {
		calls++
		return pgErr("40P01")
	})
	assert.True(t, isRetryableTxError(err))
	assert.Equal(t, 3, calls)
}

func TestRetryWithBackoff_RespetaCancelacion(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := fastRetry()
	cfg.InitialDelay = time.Hour
	err := retryWithBackoff(ctx, cfg, func() error { return pgErr("40001") })
	assert.ErrorIs(t, err, context.Canceled)
}
