// Package domain defines the persistence models of the response code
// service. These types are mapped with GORM and form the data layer behind
// the in-memory registry.
package domain

import "time"

// CustomCode is a response code registered at runtime and persisted so it
// survives restarts. Built-in codes are never stored.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Category / Code: the symbolic pair; unique together.
//   - Status: HTTP status written when the code is invoked.
//   - Message: default message.
//   - Data: JSON-encoded default payload ("null" when absent).
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
//
// Rows are hard-deleted so a removed pair can be registered again.
type CustomCode struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Category  string    `json:"category"   gorm:"type:varchar(64);not null;uniqueIndex:ux_custom_code,priority:1"`
	Code      string    `json:"code"       gorm:"type:varchar(64);not null;uniqueIndex:ux_custom_code,priority:2"`
	Status    int       `json:"status"     gorm:"not null;check:status BETWEEN 100 AND 599"`
	Message   string    `json:"message"    gorm:"type:varchar(255);not null"`
	Data      string    `json:"data"       gorm:"type:text;not null;default:'null'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for CustomCode.
func (CustomCode) TableName() string { return "custom_codes" }
