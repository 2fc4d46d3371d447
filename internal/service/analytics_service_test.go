package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupoint/timetable-api/internal/models"
	appErrors "github.com/edupoint/timetable-api/pkg/errors"
)

type analyticsRepoStub struct {
	workload    []models.TeacherWorkload
	utilization []models.RoomUtilization
	load        []models.PeriodLoad
	calls       int
}

func (s *analyticsRepoStub) TeacherWorkload(ctx context.Context) ([]models.TeacherWorkload, error) {
	s.calls++
	return s.workload, nil
}

func (s *analyticsRepoStub) RoomUtilization(ctx context.Context) ([]models.RoomUtilization, error) {
	s.calls++
	return s.utilization, nil
}

func (s *analyticsRepoStub) PeriodLoad(ctx context.Context) ([]models.PeriodLoad, error) {
	s.calls++
	return s.load, nil
}

type countStub struct {
	count int
}

func (s countStub) Count(ctx context.Context) (int, error) {
	return s.count, nil
}

type memoryCacheRepo struct {
	entries map[string][]byte
	sets    int
}

func newMemoryCacheRepo() *memoryCacheRepo {
	return &memoryCacheRepo{entries: map[string][]byte{}}
}

func (m *memoryCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	payload, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(payload, dest)
}

func (m *memoryCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = payload
	m.sets++
	return nil
}

func (m *memoryCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	m.entries = map[string][]byte{}
	return nil
}

func TestAnalyticsServiceTeacherWorkloadCaches(t *testing.T) {
	repo := &analyticsRepoStub{
		workload: []models.TeacherWorkload{{TeacherID: "teacher-1", TeacherName: "Ada Lovelace", Sessions: 5}},
	}
	cacheRepo := newMemoryCacheRepo()
	cache := NewCacheService(cacheRepo, nil, time.Minute, nil, true)
	svc := NewAnalyticsService(repo, countStub{}, countStub{}, cache, nil, nil)

	first, cached, err := svc.TeacherWorkload(context.Background())
	require.NoError(t, err)
	assert.False(t, cached)
	require.Len(t, first, 1)

	second, cached, err := svc.TeacherWorkload(context.Background())
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.calls)
}

func TestAnalyticsServiceWithoutCache(t *testing.T) {
	repo := &analyticsRepoStub{
		load: []models.PeriodLoad{{StartTime: "08:00", Sessions: 3}},
	}
	svc := NewAnalyticsService(repo, countStub{}, countStub{}, nil, nil, nil)

	loads, cached, err := svc.PeriodLoad(context.Background())
	require.NoError(t, err)
	assert.False(t, cached)
	require.Len(t, loads, 1)

	_, _, err = svc.PeriodLoad(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestAnalyticsServiceOverview(t *testing.T) {
	svc := NewAnalyticsService(&analyticsRepoStub{}, countStub{count: 12}, countStub{count: 20}, nil, nil, nil)

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, overview.TotalAssignments)
	assert.Equal(t, 20, overview.TotalTimeslots)
	assert.Equal(t, 8, overview.FreeSlots)
}

func TestAnalyticsServiceOverviewNeverNegative(t *testing.T) {
	svc := NewAnalyticsService(&analyticsRepoStub{}, countStub{count: 30}, countStub{count: 20}, nil, nil, nil)

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, overview.FreeSlots)
}

func TestAnalyticsServiceSystemMetrics(t *testing.T) {
	metrics := NewMetricsService()
	metrics.RecordCacheOperation(true, time.Millisecond)
	metrics.RecordCacheOperation(false, time.Millisecond)
	svc := NewAnalyticsService(&analyticsRepoStub{}, countStub{}, countStub{}, nil, metrics, nil)

	snapshot := svc.SystemMetrics()
	assert.Equal(t, uint64(1), snapshot.CacheHits)
	assert.Equal(t, uint64(1), snapshot.CacheMisses)
	assert.InDelta(t, 0.5, snapshot.CacheHitRatio, 0.001)
	assert.False(t, snapshot.GeneratedAt.IsZero())
}
