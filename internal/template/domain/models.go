// Package domain contains types for configurable receipt templates.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Default branding palette applied when a submission leaves colors blank.
const (
	DefaultPrimaryColor   = "#D4AF37"
	DefaultSecondaryColor = "#1e3c72"
)

// Signatory is a named officer printed on rendered receipts.
type Signatory struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// Branding holds the colors used when rendering a receipt.
type Branding struct {
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
}

// Template is a configurable receipt layout owned by the organization.
type Template struct {
	ID           snowflake.ID `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name         string       `json:"name" gorm:"type:text;not null"`
	Organization string       `json:"organization" gorm:"type:text;not null"`
	Address      string       `json:"address" gorm:"type:text"`
	Purpose      string       `json:"purpose" gorm:"type:text;not null"`
	Signatories  []Signatory  `json:"signatories" gorm:"serializer:json"`
	Branding     Branding     `json:"branding" gorm:"serializer:json"`
	Active       bool         `json:"active" gorm:"not null"`
	CreatedAt    time.Time    `json:"created_at" gorm:"not null"`
	UpdatedAt    time.Time    `json:"updated_at" gorm:"not null"`
}

// TableName sets the database table name.
func (Template) TableName() string { return "templates" }
