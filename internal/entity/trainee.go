package entity

import (
	"time"

	"github.com/google/uuid"
)

// Trainee status values. The wire representation keeps the human-readable
// labels the directory has always displayed.
const (
	StatusCurrentTrainee = "Current Trainee"
	StatusAlumni         = "Alumni"
)

// TraineeStatuses lists the valid status values in display order.
var TraineeStatuses = []string{StatusCurrentTrainee, StatusAlumni}

// Trainee represents a program trainee in the directory.
type Trainee struct {
	ID                  uuid.UUID `json:"id"`
	FullName            string    `json:"fullName"`
	Status              string    `json:"status"`
	University          string    `json:"university"`
	Major               string    `json:"major"`
	PreferredIndustries []string  `json:"preferredIndustries,omitempty"`
	TechStack           []string  `json:"techStack,omitempty"`
	SelfIntroduction    *string   `json:"selfIntroduction,omitempty"`
	CVLink              *string   `json:"cvLink,omitempty"`
	PortfolioLink       *string   `json:"portfolioLink,omitempty"`
	ProfilePhoto        *string   `json:"profilePhoto,omitempty"`
	LinkedIn            *string   `json:"linkedin,omitempty"`
	Featured            bool      `json:"featured"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// ValidStatus reports whether s is one of the known trainee statuses.
func ValidStatus(s string) bool {
	for _, known := range TraineeStatuses {
		if s == known {
			return true
		}
	}
	return false
}
