// internal/models/lead.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Lead is a buyer's submitted requirement. The id is time-based (snowflake,
// assigned by the wizard), so leads sort chronologically by id as well as by
// date. Status, assignment and remarks are mutated only through admin
// operations; leads are never deleted except by explicit admin action.
type Lead struct {
	ID          string     `json:"id" gorm:"primaryKey;size:32"`
	Name        string     `json:"name" gorm:"size:100;not null"`
	Email       string     `json:"email" gorm:"size:255;not null"`
	Mobile      string     `json:"mobile" gorm:"size:20;not null"`
	Location    string     `json:"location" gorm:"size:150"`
	Company     string     `json:"company" gorm:"size:150"`
	Service     string     `json:"service" gorm:"size:255"`
	Requirement string     `json:"requirement" gorm:"type:text"`
	Budget      string     `json:"budget" gorm:"size:50"`
	Authority   string     `json:"authority" gorm:"size:50"`
	Timing      string     `json:"timing" gorm:"size:50"`
	Status      LeadStatus `json:"status" gorm:"type:varchar(20);default:'Pending';index"`
	AssignedTo  *uuid.UUID `json:"assigned_to" gorm:"type:uuid"`
	Remarks     string     `json:"remarks" gorm:"type:text"`
	Date        time.Time  `json:"date" gorm:"type:date;index"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
