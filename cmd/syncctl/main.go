package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/hudlab/hudlab-ops/internal/config"
	"github.com/hudlab/hudlab-ops/internal/infra/database"
	"github.com/hudlab/hudlab-ops/internal/infra/integration/activecampaign"
	"github.com/hudlab/hudlab-ops/internal/usecase"
)

// syncctl é a ferramenta de operação do sync de deals: backfill
// completo fora da janela incremental e ressincronização de um deal
// específico, sem passar pela API HTTP.
//
//	syncctl -full
//	syncctl -window 30
//	syncctl -deal 12345
func main() {
	full := flag.Bool("full", false, "backfill completo, ignora a janela incremental")
	window := flag.Int("window", 0, "janela em dias (0 = default da configuração)")
	dealID := flag.String("deal", "", "ressincroniza um único deal pelo ID do CRM")
	timeout := flag.Duration("timeout", 30*time.Minute, "tempo máximo de execução")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fatal("configuração inválida: %v", err)
	}

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		fatal("banco indisponível: %v", err)
	}
	defer db.Close()

	acClient := activecampaign.NewClient(cfg.ACBaseURL, cfg.ACToken)
	dealRepo := database.NewDealRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if *dealID != "" {
		uc := usecase.NewProcessCRMWebhookUseCase(acClient, dealRepo)
		elapsed, err := uc.Execute(ctx, *dealID)
		if err != nil {
			fatal("resync do deal %s falhou: %v", *dealID, err)
		}
		fmt.Printf("✅ deal %s ressincronizado em %s\n", *dealID, elapsed.Round(time.Millisecond))
		return
	}

	syncLogRepo := database.NewSyncLogRepository(db)
	// Sem producer: rodada manual não notifica ninguém.
	uc := usecase.NewSyncDealsUseCase(
		acClient, dealRepo, syncLogRepo, nil,
		cfg.SyncConcurrency, cfg.SyncRPS, cfg.SyncWindowDays,
	)

	out, err := uc.Execute(ctx, usecase.SyncDealsInput{
		FullBackfill: *full,
		WindowDays:   *window,
		TriggeredBy:  "syncctl",
	})
	if err != nil {
		fatal("sync falhou: %v", err)
	}

	fmt.Printf("✅ sync %s: %d processados, %d fora da janela, %dms\n",
		out.LogID, out.Processed, out.Skipped, out.ElapsedMs)
}

func fatal(format string, args ...interface{}) {
	log.Errorf("❌ "+format, args...)
	os.Exit(1)
}
