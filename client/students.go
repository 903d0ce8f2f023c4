package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// StudentQuery selects and pages the trainee catalogue.
type StudentQuery struct {
	Search     string
	Status     string
	University string
	Major      string
	Industry   string
	Skill      string
	Page       int
	Limit      int
}

// StudentRequest is the payload for creating or updating a profile.
type StudentRequest struct {
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

// ListStudents fetches one page of student profiles. Queries with a
// search term go to the search endpoint, plain listings to the
// catalogue root.
func (c *Client) ListStudents(ctx context.Context, q StudentQuery) (Page[Student], error) {
	query := url.Values{}
	setQueryParam(query, "q", q.Search)
	setQueryParam(query, "status", q.Status)
	setQueryParam(query, "university", q.University)
	setQueryParam(query, "major", q.Major)
	setQueryParam(query, "industry", q.Industry)
	setQueryParam(query, "skills", q.Skill)
	setPaging(query, q.Page, q.Limit)

	path := "/students"
	if query.Has("q") {
		path = "/students/search"
	}

	var page Page[Student]
	err := c.do(ctx, http.MethodGet, path, query, nil, &page)
	return page, err
}

// GetStudent fetches a single profile by id.
func (c *Client) GetStudent(ctx context.Context, id string) (Student, error) {
	var student Student
	err := c.do(ctx, http.MethodGet, "/students/"+url.PathEscape(id), nil, nil, &student)
	return student, err
}

// FeaturedStudents fetches the landing page profiles.
func (c *Client) FeaturedStudents(ctx context.Context, limit int) ([]Student, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var students []Student
	err := c.do(ctx, http.MethodGet, "/students/featured", query, nil, &students)
	return students, err
}

// CreateStudent creates a new profile. Requires an authenticated session.
func (c *Client) CreateStudent(ctx context.Context, req StudentRequest) (Student, error) {
	var student Student
	err := c.do(ctx, http.MethodPost, "/students", nil, req, &student)
	return student, err
}

// UpdateStudent replaces an existing profile.
func (c *Client) UpdateStudent(ctx context.Context, id string, req StudentRequest) (Student, error) {
	var student Student
	err := c.do(ctx, http.MethodPut, "/students/"+url.PathEscape(id), nil, req, &student)
	return student, err
}

// DeleteStudent removes a profile.
func (c *Client) DeleteStudent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/students/"+url.PathEscape(id), nil, nil, nil)
}

// StudentUniversities lists the distinct universities.
func (c *Client) StudentUniversities(ctx context.Context) ([]string, error) {
	var universities []string
	err := c.do(ctx, http.MethodGet, "/students/universities", nil, nil, &universities)
	return universities, err
}

// StudentMajors lists the distinct majors.
func (c *Client) StudentMajors(ctx context.Context) ([]string, error) {
	var majors []string
	err := c.do(ctx, http.MethodGet, "/students/majors", nil, nil, &majors)
	return majors, err
}

// StudentIndustries lists the distinct preferred industries.
func (c *Client) StudentIndustries(ctx context.Context) ([]string, error) {
	var industries []string
	err := c.do(ctx, http.MethodGet, "/students/industries", nil, nil, &industries)
	return industries, err
}

// StudentSkills lists tech stack tags, most popular first.
func (c *Client) StudentSkills(ctx context.Context, limit int) ([]Skill, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var skills []Skill
	err := c.do(ctx, http.MethodGet, "/students/skills", query, nil, &skills)
	return skills, err
}

// StudentStatusOptions lists the valid status values.
func (c *Client) StudentStatusOptions(ctx context.Context) ([]string, error) {
	var options []string
	err := c.do(ctx, http.MethodGet, "/students/status-options", nil, nil, &options)
	return options, err
}

// StudentStatistics fetches catalogue-level counts.
func (c *Client) StudentStatistics(ctx context.Context) (StudentStats, error) {
	var stats StudentStats
	err := c.do(ctx, http.MethodGet, "/students/stats", nil, nil, &stats)
	return stats, err
}
