package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"brave-registration/internal/data/entity"
	"brave-registration/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CourseRepository interface {
	Find(ctx context.Context, filter entity.CourseFilter) ([]*entity.Course, error)
	FindByID(ctx context.Context, id string) (*entity.Course, error)
}

type courseRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCourseRepository(db database.PgxIface, log *zap.Logger) CourseRepository {
	return &courseRepository{
		db:  db,
		log: log.With(zap.String("repository", "course")),
	}
}

const courseColumns = `id, title, description, price, offer_price, active, created_at`

func buildCourseQuery(filter entity.CourseFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	if !filter.IncludeAll {
		conds = append(conds, "active = TRUE")
	}
	if filter.ID != nil {
		args = append(args, *filter.ID)
		conds = append(conds, fmt.Sprintf("id = $%d", len(args)))
	}

	query := "SELECT " + courseColumns + " FROM courses"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at"

	return query, args
}

func scanCourse(row pgx.Row) (*entity.Course, error) {
	var course entity.Course
	err := row.Scan(
		&course.ID,
		&course.Title,
		&course.Description,
		&course.Price,
		&course.OfferPrice,
		&course.Active,
		&course.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) Find(ctx context.Context, filter entity.CourseFilter) ([]*entity.Course, error) {
	query, args := buildCourseQuery(filter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find courses",
			zap.Error(err),
			zap.Bool("include_all", filter.IncludeAll),
		)
		return nil, fmt.Errorf("find courses: %w", err)
	}
	defer rows.Close()

	courses := make([]*entity.Course, 0)
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			r.log.Error("Failed to scan course row", zap.Error(err))
			return nil, fmt.Errorf("scan course row: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate course rows: %w", err)
	}

	return courses, nil
}

func (r *courseRepository) FindByID(ctx context.Context, id string) (*entity.Course, error) {
	query := "SELECT " + courseColumns + " FROM courses WHERE id = $1"

	course, err := scanCourse(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find course by ID",
			zap.Error(err),
			zap.String("course_id", id),
		)
		return nil, fmt.Errorf("find course by ID %s: %w", id, err)
	}

	return course, nil
}
