package entity

type ScheduleEntry struct {
	BaseSimple
	ID         string  `db:"id" json:"_id"`
	Course     string  `db:"course" json:"course"`
	Date       string  `db:"date" json:"date"`
	Time       *string `db:"time" json:"time,omitempty"`
	Venue      *string `db:"venue" json:"venue,omitempty"`
	Instructor *string `db:"instructor" json:"instructor,omitempty"`
	Batch      *string `db:"batch" json:"batch,omitempty"`
}

type ScheduleFilter struct {
	Course *string
	Date   *string
}
