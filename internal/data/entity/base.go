package entity

import (
	"time"
)

type BaseSimple struct {
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
