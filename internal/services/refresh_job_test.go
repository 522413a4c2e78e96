package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocklens/stocklens/internal/models"
)

func TestRefreshJobRun(t *testing.T) {
	priceProvider := newStubPriceProvider(map[string]float64{"AAA": 110, "BBB": 45, "CCC.NS": 210})
	svc := newSnapshotService(priceProvider, newStubStatsProvider(nil))

	job := NewRefreshJob(svc, testHoldings(), zerolog.Nop())

	assert.Equal(t, "snapshot-refresh", job.Name())
	require.NoError(t, job.Run())

	// The run warmed the price cache: a follow-up build must not call
	// the provider again.
	before := priceProvider.callCount("AAA")
	_, err := svc.Build(context.Background(), testHoldings())
	require.NoError(t, err)
	assert.Equal(t, before, priceProvider.callCount("AAA"))
}

func TestRefreshJobPropagatesValidationError(t *testing.T) {
	svc := newSnapshotService(newStubPriceProvider(nil), newStubStatsProvider(nil))

	bad := testHoldings()
	bad[0].PurchasePrice = -1
	job := NewRefreshJob(svc, bad, zerolog.Nop())

	err := job.Run()
	require.Error(t, err)

	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)
}
