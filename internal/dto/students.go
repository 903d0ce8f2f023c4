package dto

// TraineeFilter contains query parameters for trainee listing endpoints.
type TraineeFilter struct {
	Q          string
	Status     string
	University string
	Major      string
	Industry   string
	Skill      string
	Page       int
	Limit      int
}

// TraineeRequest is the payload for creating or updating a trainee profile.
type TraineeRequest struct {
	FullName            string   `json:"fullName"`
	Status              string   `json:"status"`
	University          string   `json:"university"`
	Major               string   `json:"major"`
	PreferredIndustries []string `json:"preferredIndustries,omitempty"`
	TechStack           []string `json:"techStack,omitempty"`
	SelfIntroduction    *string  `json:"selfIntroduction,omitempty"`
	CVLink              *string  `json:"cvLink,omitempty"`
	PortfolioLink       *string  `json:"portfolioLink,omitempty"`
	ProfilePhoto        *string  `json:"profilePhoto,omitempty"`
	LinkedIn            *string  `json:"linkedin,omitempty"`
	Featured            bool     `json:"featured"`
}

// Skill is a lookup entry for tech skills, most popular first.
type Skill struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TraineeStats summarises the trainee catalogue.
type TraineeStats struct {
	Total           int `json:"total"`
	CurrentTrainees int `json:"currentTrainees"`
	Alumni          int `json:"alumni"`
}
