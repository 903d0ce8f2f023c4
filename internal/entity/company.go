package entity

import (
	"time"

	"github.com/google/uuid"
)

// Company represents a participating company in the directory.
// Tag fields travel as explicit string slices; the comma-joined form
// exists only inside the database columns.
type Company struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Summary         string    `json:"summary"`
	Industries      []string  `json:"industries"`
	Website         *string   `json:"website,omitempty"`
	Logo            *string   `json:"logo,omitempty"`
	TechRoles       []string  `json:"techRoles,omitempty"`
	PreferredSkills []string  `json:"preferredSkills,omitempty"`
	ContactName     *string   `json:"contactName,omitempty"`
	ContactEmail    *string   `json:"contactEmail,omitempty"`
	ContactPhone    *string   `json:"contactPhone,omitempty"`
	ShowContact     bool      `json:"showContact"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// HideContact clears contact details before the record leaves the service
// layer. Applied whenever ShowContact is false.
func (c *Company) HideContact() {
	c.ContactName = nil
	c.ContactEmail = nil
	c.ContactPhone = nil
}
