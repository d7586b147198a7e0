// Command reconcile compara el total cacheado de cada producto con la suma de su libro
// de movimientos. Con -fix sobrescribe los totales que no coinciden.
//
// Sale con código 1 si quedan diferencias sin corregir.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/ashiqmuneeb/Inventory-Pro/internal/application/inventory"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/infrastructure/backend"
	"github.com/ashiqmuneeb/Inventory-Pro/pkg/config"
	"github.com/ashiqmuneeb/Inventory-Pro/pkg/logger"
)

func main() {
	fix := flag.Bool("fix", false, "corregir los totales que difieren del libro")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	be, err := backend.Open(ctx, cfg, log.Component("backend"))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer be.Close()

	uc := inventory.NewReconcileUseCase(be.TxRunner, be.Repos.Movements, be.Locker, be.Stats, log.Zerolog())
	res, err := uc.Reconcile(ctx, *fix)
	if err != nil {
		log.Error().Err(err).Msg("reconciliación fallida")
		be.Close()
		os.Exit(1)
	}

	for _, d := range res.Drifted {
		log.Warn().
			Str("product_id", d.ProductID).
			Str("code", d.ProductCode).
			Str("cached", d.Cached.String()).
			Str("ledger", d.Ledger.String()).
			Msg("diferencia de stock")
	}
	log.Info().
		Int("checked", res.Checked).
		Int("drifted", len(res.Drifted)).
		Bool("fixed", res.Fixed).
		Msg("reconciliación terminada")

	if len(res.Drifted) > 0 && !res.Fixed {
		be.Close()
		os.Exit(1)
	}
}
