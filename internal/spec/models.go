package spec

import "time"

// Format identifies the serialization of an uploaded document body.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ContentType returns the MIME type matching the format.
func (f Format) ContentType() string {
	if f == FormatYAML {
		return "application/yaml"
	}
	return "application/json"
}

// Record is the persistent model for an uploaded OpenAPI specification.
// Content holds the canonical JSON encoding of the parsed document tree
// regardless of the uploaded format, so the documentation routes never need
// to care what was uploaded. Records are immutable after creation.
type Record struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Format    Format    `json:"format" gorm:"not null"`
	Content   string    `json:"-" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Record) TableName() string {
	return "specs"
}
