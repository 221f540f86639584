package models

import (
	"time"

	"gorm.io/gorm"
)

// FileLog marks a dropped import file as processed so reruns skip it.
type FileLog struct {
	gorm.Model
	Filename     string    `json:"filename" gorm:"index"`
	DateModified time.Time `json:"date_modified"`
	Status       string    `json:"status" gorm:"default:'processed'"`
	Remarks      string    `json:"remarks"`
}
