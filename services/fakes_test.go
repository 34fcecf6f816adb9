package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/techagentng/cleancity/config"
	apiError "github.com/techagentng/cleancity/errors"
	"github.com/techagentng/cleancity/models"
	"github.com/techagentng/cleancity/services/geo"
	"go.uber.org/zap"
)

const (
	citizenID uint = 1
	adminA    uint = 100
	adminB    uint = 101
)

type voteKey struct {
	reportID uuid.UUID
	userID   uint
}

// memStore is an in-memory stand-in for every repository. One mutex
// serialises all calls, which is what the row lock does in postgres.
type memStore struct {
	mu            sync.Mutex
	reports       map[uuid.UUID]models.Report
	votes         map[voteKey]models.Vote
	locations     map[uint]models.WorkerLocation
	users         map[uint]models.User
	notifications []models.Notification
	nextID        uint
}

func newMemStore() *memStore {
	s := &memStore{
		reports:   make(map[uuid.UUID]models.Report),
		votes:     make(map[voteKey]models.Vote),
		locations: make(map[uint]models.WorkerLocation),
		users:     make(map[uint]models.User),
	}
	s.addUser(citizenID, models.RoleUser)
	s.addUser(adminA, models.RoleAdmin)
	s.addUser(adminB, models.RoleAdmin)
	return s
}

func (s *memStore) addUser(id uint, role string) {
	s.users[id] = models.User{Model: models.Model{ID: id}, Role: models.Role{Name: role}}
}

func (s *memStore) CreateReport(_ context.Context, report *models.Report) (*models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	report.CreatedAt = time.Now()
	s.reports[report.ID] = *report
	out := *report
	return &out, nil
}

func (s *memStore) GetReportByID(_ context.Context, id uuid.UUID) (*models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[id]
	if !ok {
		return nil, apiError.ErrReportNotFound
	}
	return &r, nil
}

func (s *memStore) UpdateReportTx(_ context.Context, id uuid.UUID, mutate func(report *models.Report) error) (*models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[id]
	if !ok {
		return nil, apiError.ErrReportNotFound
	}
	if err := mutate(&r); err != nil {
		return nil, err
	}
	s.reports[id] = r
	return &r, nil
}

func (s *memStore) DeleteReportTx(_ context.Context, id uuid.UUID, guard func(report *models.Report) error) (*models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[id]
	if !ok {
		return nil, apiError.ErrReportNotFound
	}
	if err := guard(&r); err != nil {
		return nil, err
	}
	for k := range s.votes {
		if k.reportID == id {
			delete(s.votes, k)
		}
	}
	delete(s.reports, id)
	return &r, nil
}

func (s *memStore) RecordVote(_ context.Context, vote *models.Vote, guard func(report *models.Report) error, settle func(report *models.Report, supportVotes int64) error) (*models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[vote.ReportID]
	if !ok {
		return nil, apiError.ErrReportNotFound
	}
	if err := guard(&r); err != nil {
		return nil, err
	}
	key := voteKey{vote.ReportID, vote.UserID}
	if _, dup := s.votes[key]; dup {
		return nil, apiError.ErrAlreadyVoted
	}
	var supporters int64
	for k, v := range s.votes {
		if k.reportID == vote.ReportID && v.Support {
			supporters++
		}
	}
	if vote.Support {
		r.SupportCount++
		supporters++
	} else {
		r.OppositionCount++
	}
	// Nothing is stored until settle succeeds, as with a rolled back transaction.
	if err := settle(&r, supporters); err != nil {
		return nil, err
	}
	vote.CreatedAt = time.Now()
	s.votes[key] = *vote
	s.reports[r.ID] = r
	return &r, nil
}

// CountVotes is a test helper; the service counts inside RecordVote.
func (s *memStore) CountVotes(_ context.Context, reportID uuid.UUID, support bool) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for k, v := range s.votes {
		if k.reportID == reportID && v.Support == support {
			n++
		}
	}
	return n, nil
}

func (s *memStore) UpsertWorkerLocation(_ context.Context, location *models.WorkerLocation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locations[location.WorkerID] = *location
	return nil
}

// ListWorkerLocations deliberately returns map order; the engine must not depend on it.
func (s *memStore) ListWorkerLocations(_ context.Context) ([]models.WorkerLocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.WorkerLocation, 0, len(s.locations))
	for _, l := range s.locations {
		out = append(out, l)
	}
	return out, nil
}

func (s *memStore) FindUserByID(_ context.Context, id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, apiError.ErrUserNotFound
	}
	return &u, nil
}

func (s *memStore) FindUserIDsByRole(_ context.Context, roleName string) ([]uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []uint
	for id, u := range s.users {
		if u.Role.Name == roleName {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (s *memStore) CreateNotification(_ context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	n.ID = s.nextID
	s.notifications = append(s.notifications, *n)
	return nil
}

type sentNotification struct {
	userID   uint
	reportID *uuid.UUID
	message  string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (r *recordingNotifier) Notify(_ context.Context, userID uint, reportID *uuid.UUID, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sentNotification{userID, reportID, message})
	return nil
}

func (r *recordingNotifier) countFor(userID uint) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, s := range r.sent {
		if s.userID == userID {
			n++
		}
	}
	return n
}

func (r *recordingNotifier) total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

func newTestService(store *memStore, notifier Notifier) *lifecycleService {
	return &lifecycleService{
		Config:       &config.Config{},
		reportRepo:   store,
		voteRepo:     store,
		locationRepo: store,
		userRepo:     store,
		notifier:     notifier,
		distance:     geo.Euclidean{},
		threshold:    DefaultEscalationThreshold,
		logger:       zap.NewNop().Sugar(),
		now:          time.Now,
	}
}

func citizen(id uint) models.Actor { return models.Actor{ID: id, Role: models.RoleUser} }
func admin(id uint) models.Actor   { return models.Actor{ID: id, Role: models.RoleAdmin} }
func worker(id uint) models.Actor  { return models.Actor{ID: id, Role: models.RoleWorker} }

func floatPtr(f float64) *float64 { return &f }

func createReport(t *testing.T, svc *lifecycleService, typ models.ReportType) *models.Report {
	t.Helper()
	report, err := svc.CreateReport(context.Background(), citizen(citizenID), &models.CreateReportRequest{
		Title:     "Garbage pile near market",
		Type:      typ,
		Latitude:  floatPtr(12.0),
		Longitude: floatPtr(77.0),
	})
	if err != nil {
		t.Fatalf("create report: %v", err)
	}
	return report
}

// escalate casts threshold supporting votes from distinct citizens.
func escalate(t *testing.T, svc *lifecycleService, reportID uuid.UUID) *models.Report {
	t.Helper()
	var report *models.Report
	for voter := uint(2); voter < uint(2+DefaultEscalationThreshold); voter++ {
		var err error
		report, err = svc.CastVote(context.Background(), citizen(voter), reportID, true)
		if err != nil {
			t.Fatalf("vote by %d: %v", voter, err)
		}
	}
	return report
}
