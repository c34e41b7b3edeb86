package contract

import (
	"github.com/alexanderramin/mosaic/internal/domain"
)

// Person is the wire form of a contact.
type Person struct {
	ID             int64          `json:"id"`
	FullName       string         `json:"full_name"`
	Email          *string        `json:"email,omitempty"`
	Phone          *string        `json:"phone,omitempty"`
	LinkedInURL    *string        `json:"linkedin_url,omitempty"`
	IsStakeholder  bool           `json:"is_stakeholder"`
	Company        *string        `json:"company,omitempty"`
	Title          *string        `json:"title,omitempty"`
	Notes          *string        `json:"notes,omitempty"`
	Tags           []string       `json:"tags"`
	AdditionalInfo map[string]any `json:"additional_info,omitempty"`
	CreatedAt      string         `json:"created_at"`
	UpdatedAt      string         `json:"updated_at"`
}

func FromPerson(p *domain.Person) Person {
	return Person{
		ID:             p.ID,
		FullName:       p.FullName,
		Email:          p.Email,
		Phone:          p.Phone,
		LinkedInURL:    p.LinkedInURL,
		IsStakeholder:  p.IsStakeholder,
		Company:        p.Company,
		Title:          p.Title,
		Notes:          p.Notes,
		Tags:           renderTags(p.Tags),
		AdditionalInfo: p.AdditionalInfo,
		CreatedAt:      renderTime(p.CreatedAt),
		UpdatedAt:      renderTime(p.UpdatedAt),
	}
}

// Client is the wire form of a billing client.
type Client struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Type            string   `json:"type"`
	Status          string   `json:"status"`
	ContactPersonID *int64   `json:"contact_person_id,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
	Tags            []string `json:"tags"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

func FromClient(c *domain.Client) Client {
	return Client{
		ID:              c.ID,
		Name:            c.Name,
		Type:            string(c.Type),
		Status:          string(c.Status),
		ContactPersonID: c.ContactPersonID,
		Notes:           c.Notes,
		Tags:            renderTags(c.Tags),
		CreatedAt:       renderTime(c.CreatedAt),
		UpdatedAt:       renderTime(c.UpdatedAt),
	}
}

// Project is the wire form of a work initiative.
type Project struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	ClientID     int64    `json:"client_id"`
	OnBehalfOfID *int64   `json:"on_behalf_of_id,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Status       string   `json:"status"`
	StartDate    *string  `json:"start_date,omitempty"`
	EndDate      *string  `json:"end_date,omitempty"`
	Tags         []string `json:"tags"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

func FromProject(p *domain.Project) Project {
	return Project{
		ID:           p.ID,
		Name:         p.Name,
		ClientID:     p.ClientID,
		OnBehalfOfID: p.OnBehalfOfID,
		Description:  p.Description,
		Status:       string(p.Status),
		StartDate:    renderDatePtr(p.StartDate),
		EndDate:      renderDatePtr(p.EndDate),
		Tags:         renderTags(p.Tags),
		CreatedAt:    renderTime(p.CreatedAt),
		UpdatedAt:    renderTime(p.UpdatedAt),
	}
}

// Employer is the wire form of an on-behalf-of entity.
type Employer struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	IsCurrent   bool     `json:"is_current"`
	IsSelf      bool     `json:"is_self"`
	ContactInfo *string  `json:"contact_info,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
	Tags        []string `json:"tags"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

func FromEmployer(e *domain.Employer) Employer {
	return Employer{
		ID:          e.ID,
		Name:        e.Name,
		IsCurrent:   e.IsCurrent,
		IsSelf:      e.IsSelf,
		ContactInfo: e.ContactInfo,
		Notes:       e.Notes,
		Tags:        renderTags(e.Tags),
		CreatedAt:   renderTime(e.CreatedAt),
		UpdatedAt:   renderTime(e.UpdatedAt),
	}
}

// Employment is the wire form of one person-at-client engagement.
type Employment struct {
	ID        int64   `json:"id"`
	PersonID  int64   `json:"person_id"`
	ClientID  int64   `json:"client_id"`
	Role      *string `json:"role,omitempty"`
	StartDate string  `json:"start_date"`
	EndDate   *string `json:"end_date,omitempty"`
	IsCurrent bool    `json:"is_current"`
}

func FromEmployment(h *domain.EmploymentHistory) Employment {
	return Employment{
		ID:        h.ID,
		PersonID:  h.PersonID,
		ClientID:  h.ClientID,
		Role:      h.Role,
		StartDate: renderDate(h.StartDate),
		EndDate:   renderDatePtr(h.EndDate),
		IsCurrent: h.IsCurrent(),
	}
}
