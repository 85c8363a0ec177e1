package store

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/goliatone/go-formspec/pkg/definition"
)

type formRecord struct {
	ID          string `gorm:"primaryKey"`
	FormID      string `gorm:"uniqueIndex;not null"`
	Title       string
	Description string
	Action      string
	Method      string
	Source      string
	Fields      []fieldRecord `gorm:"foreignKey:FormRecordID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (formRecord) TableName() string { return "formspec_forms" }

// BeforeCreate assigns a primary key when none is set.
func (r *formRecord) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

type fieldRecord struct {
	ID           string `gorm:"primaryKey"`
	FormRecordID string `gorm:"index;not null"`
	Position     int
	Name         string            `gorm:"not null"`
	Spec         string            `gorm:"not null"`
	Hints        map[string]string `gorm:"serializer:json"`
}

func (fieldRecord) TableName() string { return "formspec_fields" }

func (r *fieldRecord) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func toRecord(form definition.Form) formRecord {
	record := formRecord{
		FormID:      form.ID,
		Title:       form.Title,
		Description: form.Description,
		Action:      form.Action,
		Method:      form.Method,
		Source:      form.Source,
		Fields:      make([]fieldRecord, 0, len(form.Fields)),
	}
	for idx, field := range form.Fields {
		record.Fields = append(record.Fields, fieldRecord{
			Position: idx,
			Name:     field.Name,
			Spec:     field.Spec,
			Hints:    field.Hints,
		})
	}
	return record
}

func (r formRecord) definition() definition.Form {
	form := definition.Form{
		ID:          r.FormID,
		Title:       r.Title,
		Description: r.Description,
		Action:      r.Action,
		Method:      r.Method,
		Source:      r.Source,
	}
	if len(r.Fields) > 0 {
		form.Fields = make([]definition.Field, 0, len(r.Fields))
	}
	for _, field := range r.Fields {
		var hints map[string]string
		if len(field.Hints) > 0 {
			hints = field.Hints
		}
		form.Fields = append(form.Fields, definition.Field{
			Name:  field.Name,
			Spec:  field.Spec,
			Hints: hints,
		})
	}
	return form
}
