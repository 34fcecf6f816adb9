package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apiError "github.com/techagentng/cleancity/errors"
	"github.com/techagentng/cleancity/models"
	"github.com/techagentng/cleancity/services/geo"
)

// addWorkers places three workers roughly 9 km, 1 km and 5 km from (12.0, 77.0).
func addWorkers(t *testing.T, svc *lifecycleService, store *memStore) {
	t.Helper()
	positions := map[uint][2]float64{
		201: {12.081, 77.0},
		202: {12.009, 77.0},
		203: {12.0, 77.045},
	}
	for id, pos := range positions {
		store.addUser(id, models.RoleWorker)
		_, err := svc.UpdateWorkerLocation(context.Background(), worker(id), pos[0], pos[1])
		require.NoError(t, err)
	}
}

func TestAssignNearestWorker_PicksClosest(t *testing.T) {
	for _, strategy := range []geo.Strategy{geo.Euclidean{}, geo.Haversine{}} {
		t.Run(strategy.Name(), func(t *testing.T) {
			store := newMemStore()
			notifier := &recordingNotifier{}
			svc := newTestService(store, notifier)
			svc.distance = strategy
			addWorkers(t, svc, store)
			report := createReport(t, svc, models.TypeGarbageDump)
			escalate(t, svc, report.ID)

			r, err := svc.AssignNearestWorker(context.Background(), admin(adminA), report.ID)
			require.NoError(t, err)
			require.NotNil(t, r.AssignedWorkerID)
			assert.Equal(t, uint(202), *r.AssignedWorkerID)
			assert.Equal(t, models.StatusAssigned, r.Status)
			assert.Equal(t, 1, notifier.countFor(202))
			assert.Equal(t, 1, notifier.countFor(citizenID))
			assert.Zero(t, notifier.countFor(201))
			assert.Zero(t, notifier.countFor(203))
		})
	}
}

func TestAssignNearestWorker_NoWorkers(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, &recordingNotifier{})
	report := createReport(t, svc, models.TypeGarbageDump)
	escalate(t, svc, report.ID)

	_, err := svc.AssignNearestWorker(context.Background(), admin(adminA), report.ID)
	assert.ErrorIs(t, err, apiError.ErrNoWorkers)
	assert.Equal(t, apiError.KindResourceUnavailable, apiError.KindOf(err))

	r, err := svc.GetReport(context.Background(), report.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusEscalated, r.Status)
	assert.Nil(t, r.AssignedWorkerID)
}

func TestAssignNearestWorker_RejectsInfraRequests(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, &recordingNotifier{})
	addWorkers(t, svc, store)
	report := createReport(t, svc, models.TypePublicBinRequest)
	escalate(t, svc, report.ID)

	_, err := svc.AssignNearestWorker(context.Background(), admin(adminA), report.ID)
	assert.ErrorIs(t, err, apiError.ErrInfraRequest)
	assert.Equal(t, apiError.KindInvalidState, apiError.KindOf(err))
}

func TestAssignNearestWorker_Guards(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, &recordingNotifier{})
	addWorkers(t, svc, store)
	report := createReport(t, svc, models.TypeGarbageDump)
	ctx := context.Background()

	_, err := svc.AssignNearestWorker(ctx, citizen(2), report.ID)
	assert.ErrorIs(t, err, apiError.ErrAdminOnly)

	_, err = svc.AssignNearestWorker(ctx, admin(adminA), report.ID)
	assert.Equal(t, apiError.KindInvalidState, apiError.KindOf(err), "still pending")

	_, err = svc.AssignNearestWorker(ctx, admin(adminA), uuid.New())
	assert.Equal(t, apiError.KindNotFound, apiError.KindOf(err))

	escalate(t, svc, report.ID)
	_, err = svc.AssignNearestWorker(ctx, admin(adminA), report.ID)
	require.NoError(t, err)
	_, err = svc.AssignNearestWorker(ctx, admin(adminA), report.ID)
	assert.Equal(t, apiError.KindInvalidState, apiError.KindOf(err), "already assigned")
}

func TestNearestWorker_TiesGoToLowestID(t *testing.T) {
	locations := []models.WorkerLocation{
		{WorkerID: 9, Latitude: 1, Longitude: 0},
		{WorkerID: 3, Latitude: -1, Longitude: 0},
		{WorkerID: 5, Latitude: 0, Longitude: 2},
	}
	best, ok := nearestWorker(locations, geo.Point{}, geo.Euclidean{})
	require.True(t, ok)
	assert.Equal(t, uint(3), best.WorkerID)

	_, ok = nearestWorker(nil, geo.Point{}, geo.Euclidean{})
	assert.False(t, ok)
}

func TestUpdateWorkerLocation(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, &recordingNotifier{})
	ctx := context.Background()

	_, err := svc.UpdateWorkerLocation(ctx, citizen(2), 12, 77)
	assert.ErrorIs(t, err, apiError.ErrWorkerOnly)

	_, err = svc.UpdateWorkerLocation(ctx, worker(300), 95, 77)
	assert.Equal(t, apiError.KindBadRequest, apiError.KindOf(err))

	_, err = svc.UpdateWorkerLocation(ctx, worker(300), 12, 77)
	require.NoError(t, err)
	loc, err := svc.UpdateWorkerLocation(ctx, worker(300), 13, 78)
	require.NoError(t, err)
	assert.Equal(t, 13.0, loc.Latitude)

	all, err := store.ListWorkerLocations(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 78.0, all[0].Longitude)
}
