package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierForBalanceThresholds(t *testing.T) {
	cases := []struct {
		balance float64
		tier    int
	}{
		{0, 1},
		{199.99, 1},
		{200, 2},
		{499.99, 2},
		{500, 3},
		{1200.50, 3},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.tier, TierForBalance(tc.balance), "balance %.2f", tc.balance)
	}
}

func TestTierDerivedFromLedger(t *testing.T) {
	svc := NewLoyaltyService(newTestDB(t))

	// 20000 points at 0.01 EUR each is a 200 EUR balance: silver.
	require.NoError(t, svc.Award(1, 20000, "", "backfill"))

	info, err := svc.Tier(1)
	require.NoError(t, err)
	assert.Equal(t, 2, info.Tier)
	assert.Equal(t, "silver", info.Name)
	assert.Equal(t, int64(20000), info.Points)
	assert.InDelta(t, 200.0, info.Balance, 0.001)
}

func TestDailyBonusOncePerDay(t *testing.T) {
	svc := NewLoyaltyService(newTestDB(t))

	points, err := svc.DailyBonus(1)
	require.NoError(t, err)
	assert.Equal(t, DailyBonusPoints, points)

	_, err = svc.DailyBonus(1)
	assert.ErrorIs(t, err, ErrBonusAlreadyClaimed)

	// Exactly one ledger row was written.
	rows, _, err := svc.Ledger(1)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestDailyBonusResetsNextDay(t *testing.T) {
	svc := NewLoyaltyService(newTestDB(t))

	_, err := svc.DailyBonus(1)
	require.NoError(t, err)

	// Same user, next UTC day.
	svc.now = func() time.Time { return time.Now().Add(24 * time.Hour) }
	points, err := svc.DailyBonus(1)
	require.NoError(t, err)
	assert.Equal(t, DailyBonusPoints, points)
}

func TestDailyBonusIsPerUser(t *testing.T) {
	svc := NewLoyaltyService(newTestDB(t))

	_, err := svc.DailyBonus(1)
	require.NoError(t, err)

	// A different user claims independently.
	_, err = svc.DailyBonus(2)
	require.NoError(t, err)
}
