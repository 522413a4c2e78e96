package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/stocklens/stocklens/internal/models"
)

// refreshTimeout bounds one background rebuild; generous next to the
// per-provider timeouts so it only trips when everything is slow.
const refreshTimeout = 30 * time.Second

// RefreshJob rebuilds the default-portfolio snapshot on the scheduler
// cadence. Its point is keeping the provider caches warm between UI
// polls; request handling never waits on it.
type RefreshJob struct {
	snapshots *SnapshotService
	holdings  []models.Holding
	log       zerolog.Logger
}

// NewRefreshJob builds the job for the given holdings set.
func NewRefreshJob(snapshots *SnapshotService, holdings []models.Holding, log zerolog.Logger) *RefreshJob {
	return &RefreshJob{
		snapshots: snapshots,
		holdings:  holdings,
		log:       log.With().Str("component", "refresh").Logger(),
	}
}

// Name implements scheduler.Job.
func (j *RefreshJob) Name() string { return "snapshot-refresh" }

// Run implements scheduler.Job.
func (j *RefreshJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	snap, err := j.snapshots.Build(ctx, j.holdings)
	if err != nil {
		return err
	}

	j.log.Debug().
		Float64("totalPresentValue", snap.Summary.TotalPresentValue).
		Float64("totalGainLoss", snap.Summary.TotalGainLoss).
		Msg("Background snapshot refreshed")
	return nil
}
