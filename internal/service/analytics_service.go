package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/edupoint/timetable-api/internal/models"
)

// AnalyticsRepository describes the persistence layer required by AnalyticsService.
type AnalyticsRepository interface {
	TeacherWorkload(ctx context.Context) ([]models.TeacherWorkload, error)
	RoomUtilization(ctx context.Context) ([]models.RoomUtilization, error)
	PeriodLoad(ctx context.Context) ([]models.PeriodLoad, error)
}

type timetableEntryCounter interface {
	Count(ctx context.Context) (int, error)
}

type timeSlotCounter interface {
	Count(ctx context.Context) (int, error)
}

// AnalyticsService provides read-optimised access to timetable analytics with cache integration.
type AnalyticsService struct {
	repo    AnalyticsRepository
	entries timetableEntryCounter
	slots   timeSlotCounter
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
}

// NewAnalyticsService constructs an analytics service.
func NewAnalyticsService(repo AnalyticsRepository, entries timetableEntryCounter, slots timeSlotCounter, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{repo: repo, entries: entries, slots: slots, cache: cache, metrics: metrics, logger: logger}
}

// TeacherWorkload returns assigned session counts per teacher. The boolean indicates whether data originated from cache.
func (s *AnalyticsService) TeacherWorkload(ctx context.Context) ([]models.TeacherWorkload, bool, error) {
	cacheKey := makeAnalyticsCacheKey("teacher_workload")
	var cached []models.TeacherWorkload
	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err != nil {
			return nil, false, fmt.Errorf("get teacher workload cache: %w", err)
		} else if hit {
			return cached, true, nil
		}
	}

	start := time.Now()
	workloads, err := s.repo.TeacherWorkload(ctx)
	if err != nil {
		return nil, false, err
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("analytics_teacher_workload", time.Since(start))
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, workloads, 0); err != nil && s.logger != nil {
			s.logger.Warn("cache teacher workload", zap.Error(err))
		}
	}
	return workloads, false, nil
}

// RoomUtilization returns assigned session counts per room.
func (s *AnalyticsService) RoomUtilization(ctx context.Context) ([]models.RoomUtilization, bool, error) {
	cacheKey := makeAnalyticsCacheKey("room_utilization")
	var cached []models.RoomUtilization
	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err != nil {
			return nil, false, fmt.Errorf("get room utilization cache: %w", err)
		} else if hit {
			return cached, true, nil
		}
	}

	start := time.Now()
	utilization, err := s.repo.RoomUtilization(ctx)
	if err != nil {
		return nil, false, err
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("analytics_room_utilization", time.Since(start))
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, utilization, 0); err != nil && s.logger != nil {
			s.logger.Warn("cache room utilization", zap.Error(err))
		}
	}
	return utilization, false, nil
}

// PeriodLoad returns assigned session counts per timeslot start time.
func (s *AnalyticsService) PeriodLoad(ctx context.Context) ([]models.PeriodLoad, bool, error) {
	cacheKey := makeAnalyticsCacheKey("period_load")
	var cached []models.PeriodLoad
	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err != nil {
			return nil, false, fmt.Errorf("get period load cache: %w", err)
		} else if hit {
			return cached, true, nil
		}
	}

	start := time.Now()
	loads, err := s.repo.PeriodLoad(ctx)
	if err != nil {
		return nil, false, err
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("analytics_period_load", time.Since(start))
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, loads, 0); err != nil && s.logger != nil {
			s.logger.Warn("cache period load", zap.Error(err))
		}
	}
	return loads, false, nil
}

// Overview summarises the current timetable against the weekly grid.
func (s *AnalyticsService) Overview(ctx context.Context) (*models.TimetableOverview, error) {
	assignments, err := s.entries.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count assignments: %w", err)
	}
	timeslots, err := s.slots.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count timeslots: %w", err)
	}
	free := timeslots - assignments
	if free < 0 {
		free = 0
	}
	return &models.TimetableOverview{
		TotalAssignments: assignments,
		TotalTimeslots:   timeslots,
		FreeSlots:        free,
	}, nil
}

// SystemMetrics reports an aggregated runtime snapshot.
func (s *AnalyticsService) SystemMetrics() models.AnalyticsSystemMetrics {
	return s.metrics.Snapshot()
}

func makeAnalyticsCacheKey(parts ...string) string {
	var builder strings.Builder
	builder.Grow(len(parts) * 16)
	builder.WriteString("analytics")
	for _, part := range parts {
		if part == "" {
			continue
		}
		builder.WriteByte(':')
		builder.WriteString(part)
	}
	return builder.String()
}
