package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/hudlab/hudlab-ops/internal/entity"
	"github.com/hudlab/hudlab-ops/internal/infra/integration/activecampaign"
	"github.com/hudlab/hudlab-ops/internal/infra/queue"
)

type SyncDealsUseCase struct {
	CRM         CRMClient
	DealRepo    DealRepositoryInterface
	SyncLogRepo SyncLogRepositoryInterface
	Producer    NotificationPublisherInterface

	// Orçamento de chamadas contra o AC: Concurrency páginas em
	// paralelo, no máximo RPS requests por segundo no total.
	Concurrency int
	RPS         int
	WindowDays  int
}

func NewSyncDealsUseCase(
	crm CRMClient,
	dealRepo DealRepositoryInterface,
	syncLogRepo SyncLogRepositoryInterface,
	producer NotificationPublisherInterface,
	concurrency, rps, windowDays int,
) *SyncDealsUseCase {
	if concurrency <= 0 {
		concurrency = 3
	}
	if rps <= 0 {
		rps = 5
	}
	if windowDays <= 0 {
		windowDays = 90
	}
	return &SyncDealsUseCase{
		CRM:         crm,
		DealRepo:    dealRepo,
		SyncLogRepo: syncLogRepo,
		Producer:    producer,
		Concurrency: concurrency,
		RPS:         rps,
		WindowDays:  windowDays,
	}
}

// Execute roda um sync completo: pagina o CRM, normaliza e faz upsert.
// A linha "running" do log é adquirida atomicamente — segundo trigger
// simultâneo recebe entity.ErrSyncAlreadyRunning.
//
// Semântica de falha: erro de página aborta a execução e marca o log
// como failed; o progresso parcial já upsertado FICA no cache (upsert
// idempotente, o próximo sync conserta).
func (uc *SyncDealsUseCase) Execute(ctx context.Context, input SyncDealsInput) (*SyncDealsOutput, error) {
	runLog, err := uc.SyncLogRepo.StartRun(ctx, input.TriggeredBy)
	if err != nil {
		return nil, err
	}

	started := time.Now()

	windowDays := input.WindowDays
	if windowDays <= 0 {
		windowDays = uc.WindowDays
	}
	var cutoff string
	if !input.FullBackfill {
		cutoff = time.Now().AddDate(0, 0, -windowDays).Format("2006-01-02")
	}

	processed, skipped, syncErr := uc.pullAll(ctx, cutoff)

	elapsed := time.Since(started)
	if syncErr != nil {
		if ferr := uc.SyncLogRepo.Fail(ctx, runLog.ID, processed, syncErr.Error()); ferr != nil {
			log.WithError(ferr).Error("não consegui marcar o sync como failed")
		}
		return nil, &TechnicalError{Code: "SYNC_FAILED", Message: syncErr.Error()}
	}

	if err := uc.SyncLogRepo.Complete(ctx, runLog.ID, processed); err != nil {
		log.WithError(err).Error("não consegui marcar o sync como completed")
	}

	log.WithFields(log.Fields{
		"processed": processed,
		"skipped":   skipped,
		"elapsed":   elapsed.Round(time.Millisecond).String(),
	}).Info("✅ Sync de deals finalizado")

	if uc.Producer != nil {
		event := queue.NotificationEvent{
			Type:       queue.EventSyncCompleted,
			Title:      "Sync de deals concluído",
			Body:       fmt.Sprintf("%d deals sincronizados em %s", processed, elapsed.Round(time.Second)),
			TargetRole: entity.RoleAdmin,
		}
		if err := uc.Producer.PublishNotification(ctx, event); err != nil {
			// fila fora do ar não pode falhar um sync que já terminou
			log.WithError(err).Warn("falha ao publicar notificação de sync")
		}
	}

	return &SyncDealsOutput{
		LogID:     runLog.ID,
		Processed: processed,
		Skipped:   skipped,
		ElapsedMs: elapsed.Milliseconds(),
	}, nil
}

// pullAll pagina o endpoint de deals. A primeira página é síncrona
// (pra descobrir o total); as demais saem em paralelo limitado, com
// pacing compartilhado de RPS entre as goroutines.
func (uc *SyncDealsUseCase) pullAll(ctx context.Context, cutoff string) (processed, skipped int, err error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pace := time.NewTicker(time.Second / time.Duration(uc.RPS))
	defer pace.Stop()

	firstPage, total, err := uc.CRM.ListDeals(ctx, activecampaign.PageSize, 0)
	if err != nil {
		return 0, 0, fmt.Errorf("falha na primeira página: %w", err)
	}

	var mu sync.Mutex
	var firstErr error

	fail := func(e error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = e
			cancel()
		}
		mu.Unlock()
	}

	handlePage := func(deals []activecampaign.Deal) {
		p, s, perr := uc.processPage(ctx, pace, deals, cutoff)
		mu.Lock()
		processed += p
		skipped += s
		mu.Unlock()
		if perr != nil {
			fail(perr)
		}
	}

	handlePage(firstPage)

	sem := make(chan struct{}, uc.Concurrency)
	var wg sync.WaitGroup

	for offset := activecampaign.PageSize; offset < total; offset += activecampaign.PageSize {
		offset := offset
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}

			select {
			case <-ctx.Done():
				return
			case <-pace.C:
			}

			deals, _, perr := uc.CRM.ListDeals(ctx, activecampaign.PageSize, offset)
			if perr != nil {
				fail(fmt.Errorf("falha na página offset=%d: %w", offset, perr))
				return
			}
			handlePage(deals)
		}()
	}

	wg.Wait()
	return processed, skipped, firstErr
}

// processPage busca os campos customizados da página em UMA chamada
// em lote e faz o upsert deal a deal.
func (uc *SyncDealsUseCase) processPage(ctx context.Context, pace *time.Ticker, deals []activecampaign.Deal, cutoff string) (processed, skipped int, err error) {
	if len(deals) == 0 {
		return 0, 0, nil
	}

	ids := make([]string, 0, len(deals))
	for _, d := range deals {
		ids = append(ids, d.ID)
	}

	select {
	case <-ctx.Done():
		return 0, 0, ctx.Err()
	case <-pace.C:
	}

	data, err := uc.CRM.ListDealCustomFieldData(ctx, ids)
	if err != nil {
		return 0, 0, fmt.Errorf("falha ao buscar campos customizados: %w", err)
	}
	grouped := GroupCustomFields(data)

	for i := range deals {
		d := &deals[i]
		row := TransformDeal(d, grouped[d.ID])

		// Janela incremental: fora da janela (ou sem closing date) pula.
		if cutoff != "" {
			if row.ClosingDate == nil || *row.ClosingDate < cutoff {
				skipped++
				continue
			}
		}

		if err := uc.DealRepo.Upsert(ctx, row); err != nil {
			return processed, skipped, err
		}
		processed++
	}
	return processed, skipped, nil
}
