package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apiError "github.com/techagentng/cleancity/errors"
	"github.com/techagentng/cleancity/models"
)

func TestCreateReport(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, &recordingNotifier{})
	ctx := context.Background()

	report := createReport(t, svc, models.TypeSewageLeak)
	assert.Equal(t, models.StatusPending, report.Status)
	assert.Equal(t, citizenID, report.UserID)
	assert.Zero(t, report.SupportCount)
	assert.Zero(t, report.OppositionCount)
	assert.Nil(t, report.AssignedWorkerID)
	assert.NotEqual(t, uuid.Nil, report.ID)

	cases := map[string]*models.CreateReportRequest{
		"unknown type": {Title: "Broken thing", Type: "pothole", Latitude: floatPtr(1), Longitude: floatPtr(1)},
		"no title":     {Title: "  ", Type: models.TypeOther, Latitude: floatPtr(1), Longitude: floatPtr(1)},
		"latitude":     {Title: "Broken thing", Type: models.TypeOther, Latitude: floatPtr(91), Longitude: floatPtr(1)},
		"longitude":    {Title: "Broken thing", Type: models.TypeOther, Latitude: floatPtr(1), Longitude: floatPtr(-181)},
		"no location":  {Title: "Broken thing", Type: models.TypeOther},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.CreateReport(ctx, citizen(citizenID), req)
			assert.Equal(t, apiError.KindBadRequest, apiError.KindOf(err))
		})
	}
}

func TestGetReport_NotFound(t *testing.T) {
	svc := newTestService(newMemStore(), &recordingNotifier{})
	_, err := svc.GetReport(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apiError.ErrReportNotFound)
}

func TestWithdrawReport(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, &recordingNotifier{})
	ctx := context.Background()
	report := createReport(t, svc, models.TypeDeadAnimal)
	_, err := svc.CastVote(ctx, citizen(2), report.ID, true)
	require.NoError(t, err)

	_, err = svc.WithdrawReport(ctx, citizen(2), report.ID)
	assert.ErrorIs(t, err, apiError.ErrNotCreator)
	assert.Equal(t, apiError.KindForbidden, apiError.KindOf(err))

	withdrawn, err := svc.WithdrawReport(ctx, citizen(citizenID), report.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusWithdrawn, withdrawn.Status)

	_, err = svc.GetReport(ctx, report.ID)
	assert.Equal(t, apiError.KindNotFound, apiError.KindOf(err))
	n, err := store.CountVotes(ctx, report.ID, true)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = svc.WithdrawReport(ctx, citizen(citizenID), report.ID)
	assert.Equal(t, apiError.KindNotFound, apiError.KindOf(err))
}

func TestWithdrawReport_OnlyWhilePending(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, &recordingNotifier{})
	report := createReport(t, svc, models.TypeStreetLitter)
	escalate(t, svc, report.ID)

	_, err := svc.WithdrawReport(context.Background(), citizen(citizenID), report.ID)
	assert.Equal(t, apiError.KindInvalidState, apiError.KindOf(err))
	assert.Contains(t, err.Error(), string(models.StatusEscalated))

	r, err := svc.GetReport(context.Background(), report.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusEscalated, r.Status)
}
