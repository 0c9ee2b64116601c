package repository

import (
	"testing"

	"brave-registration/internal/data/entity"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestBuildCourseQuery(t *testing.T) {
	t.Run("active only by default", func(t *testing.T) {
		query, args := buildCourseQuery(entity.CourseFilter{})
		assert.Equal(t, "SELECT "+courseColumns+" FROM courses WHERE active = TRUE ORDER BY created_at", query)
		assert.Empty(t, args)
	})

	t.Run("include all with id", func(t *testing.T) {
		query, args := buildCourseQuery(entity.CourseFilter{ID: strPtr("c1"), IncludeAll: true})
		assert.Equal(t, "SELECT "+courseColumns+" FROM courses WHERE id = $1 ORDER BY created_at", query)
		assert.Equal(t, []any{"c1"}, args)
	})

	t.Run("active with id", func(t *testing.T) {
		query, args := buildCourseQuery(entity.CourseFilter{ID: strPtr("c1")})
		assert.Contains(t, query, "WHERE active = TRUE AND id = $1")
		assert.Equal(t, []any{"c1"}, args)
	})
}

func TestBuildScheduleQuery(t *testing.T) {
	t.Run("no filter", func(t *testing.T) {
		query, args := buildScheduleQuery(entity.ScheduleFilter{})
		assert.NotContains(t, query, "WHERE")
		assert.Empty(t, args)
	})

	t.Run("course and date", func(t *testing.T) {
		query, args := buildScheduleQuery(entity.ScheduleFilter{Course: strPtr("c1"), Date: strPtr("2026-01-10")})
		assert.Contains(t, query, "WHERE course = $1 AND date = $2")
		assert.Equal(t, []any{"c1", "2026-01-10"}, args)
	})

	t.Run("date only", func(t *testing.T) {
		query, args := buildScheduleQuery(entity.ScheduleFilter{Date: strPtr("2026-01-10")})
		assert.Contains(t, query, "WHERE date = $1")
		assert.Equal(t, []any{"2026-01-10"}, args)
	})
}
