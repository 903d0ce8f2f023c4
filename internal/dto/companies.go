package dto

// CompanyFilter contains query parameters for company listing endpoints.
// Empty string fields constrain nothing; they are never sent as literals.
type CompanyFilter struct {
	Q        string
	Industry string
	TechRole string
	Page     int
	Limit    int
}

// CompanyRequest is the payload for creating or updating a company.
type CompanyRequest struct {
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
}

// CompanyStats summarises the company catalogue.
type CompanyStats struct {
	Total      int `json:"total"`
	Industries int `json:"industries"`
	WithLogo   int `json:"withLogo"`
}
