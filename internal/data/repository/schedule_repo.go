package repository

import (
	"context"
	"fmt"
	"strings"

	"brave-registration/internal/data/entity"
	"brave-registration/pkg/database"

	"go.uber.org/zap"
)

type ScheduleRepository interface {
	Find(ctx context.Context, filter entity.ScheduleFilter) ([]*entity.ScheduleEntry, error)
}

type scheduleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewScheduleRepository(db database.PgxIface, log *zap.Logger) ScheduleRepository {
	return &scheduleRepository{
		db:  db,
		log: log.With(zap.String("repository", "schedule")),
	}
}

func buildScheduleQuery(filter entity.ScheduleFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	if filter.Course != nil {
		args = append(args, *filter.Course)
		conds = append(conds, fmt.Sprintf("course = $%d", len(args)))
	}
	if filter.Date != nil {
		args = append(args, *filter.Date)
		conds = append(conds, fmt.Sprintf("date = $%d", len(args)))
	}

	query := `SELECT id, course, date, time, venue, instructor, batch, created_at FROM schedule`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY date, time"

	return query, args
}

func (r *scheduleRepository) Find(ctx context.Context, filter entity.ScheduleFilter) ([]*entity.ScheduleEntry, error) {
	query, args := buildScheduleQuery(filter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find schedule", zap.Error(err))
		return nil, fmt.Errorf("find schedule: %w", err)
	}
	defer rows.Close()

	entries := make([]*entity.ScheduleEntry, 0)
	for rows.Next() {
		var entry entity.ScheduleEntry
		err := rows.Scan(
			&entry.ID,
			&entry.Course,
			&entry.Date,
			&entry.Time,
			&entry.Venue,
			&entry.Instructor,
			&entry.Batch,
			&entry.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan schedule row", zap.Error(err))
			return nil, fmt.Errorf("scan schedule row: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate schedule rows: %w", err)
	}

	return entries, nil
}
