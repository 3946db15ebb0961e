package domain

import "time"

// FeatureFlag toggles platform behavior at runtime. Name and Slug are each
// globally unique; Slug is derived from Name and never set directly.
type FeatureFlag struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Description string    `json:"description" db:"description"`
	IsEnabled   bool      `json:"is_enabled" db:"is_enabled"`
	UpdatedBy   string    `json:"updated_by" db:"updated_by"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// FlagBySlug returns the flag with the given slug, or nil.
func FlagBySlug(flags []FeatureFlag, slug string) *FeatureFlag {
	for i := range flags {
		if flags[i].Slug == slug {
			return &flags[i]
		}
	}
	return nil
}
