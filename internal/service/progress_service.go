package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"smartchef/internal/models"
	"smartchef/internal/repository"
)

type ProgressService struct {
	progress repository.ProgressRepo
}

func NewProgressService(progress repository.ProgressRepo) *ProgressService {
	return &ProgressService{progress: progress}
}

var _ Progress = (*ProgressService)(nil)

var errInvalidTimeRange = errors.New("invalid time range: From must be <= To")

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f ProgressFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", errInvalidTimeRange
	}

	status := strings.TrimSpace(strings.ToLower(f.Status))
	return from, to, status, nil
}

func (s *ProgressService) List(ctx context.Context, sessionID string, f ProgressFilter) ([]models.CookingProgress, error) {
	from, to, status, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.progress.List(ctx, sessionID, from, to, status)
}
