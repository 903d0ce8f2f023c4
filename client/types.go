package client

// Pagination mirrors the paging block every list endpoint returns.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Page pairs one page of results with its pagination block.
type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Company is a directory company as returned by the API.
type Company struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Summary         string   `json:"summary"`
	Industries      []string `json:"industries"`
	Website         *string  `json:"website,omitempty"`
	Logo            *string  `json:"logo,omitempty"`
	TechRoles       []string `json:"techRoles,omitempty"`
	PreferredSkills []string `json:"preferredSkills,omitempty"`
	ContactName     *string  `json:"contactName,omitempty"`
	ContactEmail    *string  `json:"contactEmail,omitempty"`
	ContactPhone    *string  `json:"contactPhone,omitempty"`
	ShowContact     bool     `json:"showContact"`
	CreatedAt       string   `json:"createdAt"`
	UpdatedAt       string   `json:"updatedAt"`
}

// Student is a trainee or alumni profile as returned by the API.
type Student struct {
	ID                  string   `json:"id"`
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
	CreatedAt           string   `json:"createdAt"`
	UpdatedAt           string   `json:"updatedAt"`
}

// Skill is a tech stack lookup entry.
type Skill struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CompanyStats summarises the company catalogue.
type CompanyStats struct {
	Total      int `json:"total"`
	Industries int `json:"industries"`
	WithLogo   int `json:"withLogo"`
}

// StudentStats summarises the trainee catalogue.
type StudentStats struct {
	Total           int `json:"total"`
	CurrentTrainees int `json:"currentTrainees"`
	Alumni          int `json:"alumni"`
}

// TokenPair carries the access and refresh tokens issued by the API.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
