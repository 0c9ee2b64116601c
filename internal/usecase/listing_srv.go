package usecase

import (
	"context"
	"fmt"

	"brave-registration/internal/data/entity"
	"brave-registration/internal/data/repository"
	"brave-registration/internal/dto/request"

	"go.uber.org/zap"
)

type ListingService interface {
	GetCourses(ctx context.Context, query *request.CourseQuery) ([]*entity.Course, error)
	GetSchedule(ctx context.Context, query *request.ScheduleQuery) ([]*entity.ScheduleEntry, error)
}

type listingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewListingService(repo *repository.Repository, log *zap.Logger) ListingService {
	return &listingService{
		repo: repo,
		log:  log.With(zap.String("service", "listing")),
	}
}

func (s *listingService) GetCourses(ctx context.Context, query *request.CourseQuery) ([]*entity.Course, error) {
	filter := entity.CourseFilter{
		ID:         query.ID,
		IncludeAll: query.All,
	}

	courses, err := s.repo.Course.Find(ctx, filter)
	if err != nil {
		s.log.Error("Failed to get courses",
			zap.Error(err),
			zap.Stringp("id", query.ID),
			zap.Bool("all", query.All),
		)
		return nil, fmt.Errorf("get courses: %w", err)
	}

	if courses == nil {
		courses = []*entity.Course{}
	}
	return courses, nil
}

func (s *listingService) GetSchedule(ctx context.Context, query *request.ScheduleQuery) ([]*entity.ScheduleEntry, error) {
	filter := entity.ScheduleFilter{
		Course: query.Course,
		Date:   query.Date,
	}

	entries, err := s.repo.Schedule.Find(ctx, filter)
	if err != nil {
		s.log.Error("Failed to get schedule",
			zap.Error(err),
			zap.Stringp("course", query.Course),
			zap.Stringp("date", query.Date),
		)
		return nil, fmt.Errorf("get schedule: %w", err)
	}

	if entries == nil {
		entries = []*entity.ScheduleEntry{}
	}
	return entries, nil
}
