package audit

import (
	"context"
	"fmt"

	"leadcrm_backend/platform/config"
	"leadcrm_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Worker consumes queued access tasks and writes lead_access_log rows.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	repo   *Repository
	log    *logger.Logger
}

func NewWorker(cfg config.AuditQueueConfig, pool *pgxpool.Pool, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAuditQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAuditConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		repo:   NewRepository(pool),
		log:    log,
	}

	mux.HandleFunc(TaskLeadAccess, w.handleLeadAccess)

	return w, nil
}

func (w *Worker) handleLeadAccess(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseLeadAccessPayload(task)
	if err != nil {
		return err
	}

	actorID, err := uuid.Parse(payload.ActorID)
	if err != nil {
		return err
	}

	entry := LeadAccessEntry{
		ActorID:    actorID,
		Action:     payload.Action,
		OccurredAt: payload.OccurredAt,
	}
	if payload.LeadID != nil {
		leadID, err := uuid.Parse(*payload.LeadID)
		if err != nil {
			return err
		}
		entry.LeadID = &leadID
	}

	return w.repo.RecordLeadAccess(ctx, entry)
}

// Run blocks until ctx is cancelled, then shuts the server down.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("audit worker stopped", "error", err)
	}
}
