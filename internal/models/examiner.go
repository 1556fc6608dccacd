package models

import "time"

// Examiner is the stable identity record behind the name strings used by
// entries and bank accounts. Two people sharing a name still collapse into
// one row; callers should treat the name as the lookup key it always was.
type Examiner struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	PANCard   string    `db:"pan_card" json:"panCard,omitempty"`
	MobileNo  string    `db:"mobile_no" json:"mobileNo,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
