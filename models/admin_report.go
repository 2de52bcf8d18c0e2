package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ReportMatch      = "match"
	ReportGlobal     = "global"
	ReportEvaluation = "evaluation"
)

func IsValidReportType(t string) bool {
	return t == ReportMatch || t == ReportGlobal || t == ReportEvaluation
}

// AdminReport is an admin-authored report. The author reference is set from
// the authenticated subject at creation and never changes afterwards.
type AdminReport struct {
	ID          string  `json:"id" gorm:"primaryKey;type:uuid"`
	Title       string  `json:"title" gorm:"not null"`
	ReportType  string  `json:"report_type" gorm:"type:varchar(20);not null"`
	Content     string  `json:"content" gorm:"type:text"`
	CreatedByID *string `json:"created_by,omitempty" gorm:"type:uuid"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	CreatedBy *User `json:"-" gorm:"foreignKey:CreatedByID"`
}

func (r *AdminReport) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
