package client

import (
	"context"
	"net/http"
	"net/url"
)

// CompanyQuery selects and pages the company catalogue.
type CompanyQuery struct {
	Search   string
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

// ListCompanies fetches one page of companies. Queries with a search
// term go to the search endpoint, plain listings to the catalogue root.
func (c *Client) ListCompanies(ctx context.Context, q CompanyQuery) (Page[Company], error) {
	query := url.Values{}
	setQueryParam(query, "q", q.Search)
	setQueryParam(query, "industry", q.Industry)
	setQueryParam(query, "techRole", q.TechRole)
	setPaging(query, q.Page, q.Limit)

	path := "/companies"
	if query.Has("q") {
		path = "/companies/search"
	}

	var page Page[Company]
	err := c.do(ctx, http.MethodGet, path, query, nil, &page)
	return page, err
}

// GetCompany fetches a single company by id.
func (c *Client) GetCompany(ctx context.Context, id string) (Company, error) {
	var company Company
	err := c.do(ctx, http.MethodGet, "/companies/"+url.PathEscape(id), nil, nil, &company)
	return company, err
}

// CreateCompany creates a new company. Requires an authenticated session.
func (c *Client) CreateCompany(ctx context.Context, req CompanyRequest) (Company, error) {
	var company Company
	err := c.do(ctx, http.MethodPost, "/companies", nil, req, &company)
	return company, err
}

// UpdateCompany replaces an existing company.
func (c *Client) UpdateCompany(ctx context.Context, id string, req CompanyRequest) (Company, error) {
	var company Company
	err := c.do(ctx, http.MethodPut, "/companies/"+url.PathEscape(id), nil, req, &company)
	return company, err
}

// DeleteCompany removes a company.
func (c *Client) DeleteCompany(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/companies/"+url.PathEscape(id), nil, nil, nil)
}

// CompanyIndustries lists the distinct industry tags.
func (c *Client) CompanyIndustries(ctx context.Context) ([]string, error) {
	var industries []string
	err := c.do(ctx, http.MethodGet, "/companies/industries", nil, nil, &industries)
	return industries, err
}

// CompanyTechRoles lists the distinct tech role tags.
func (c *Client) CompanyTechRoles(ctx context.Context) ([]string, error) {
	var roles []string
	err := c.do(ctx, http.MethodGet, "/companies/tech-roles", nil, nil, &roles)
	return roles, err
}

// CompanyStatistics fetches catalogue-level counts.
func (c *Client) CompanyStatistics(ctx context.Context) (CompanyStats, error) {
	var stats CompanyStats
	err := c.do(ctx, http.MethodGet, "/companies/stats", nil, nil, &stats)
	return stats, err
}
