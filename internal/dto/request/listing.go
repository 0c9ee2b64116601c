package request

type CourseQuery struct {
	ID  *string
	All bool
}

type ScheduleQuery struct {
	Course *string
	Date   *string
}
