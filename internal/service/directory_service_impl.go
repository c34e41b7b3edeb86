package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/mosaic/internal/apperr"
	"github.com/alexanderramin/mosaic/internal/db"
	"github.com/alexanderramin/mosaic/internal/domain"
	"github.com/alexanderramin/mosaic/internal/repository"
)

type directoryService struct {
	people      repository.PersonRepo
	clients     repository.ClientRepo
	employers   repository.EmployerRepo
	projects    repository.ProjectRepo
	employments repository.EmploymentRepo
	uow         db.UnitOfWork
}

func NewDirectoryService(
	people repository.PersonRepo,
	clients repository.ClientRepo,
	employers repository.EmployerRepo,
	projects repository.ProjectRepo,
	employments repository.EmploymentRepo,
	uow db.UnitOfWork,
) DirectoryService {
	return &directoryService{
		people:      people,
		clients:     clients,
		employers:   employers,
		projects:    projects,
		employments: employments,
		uow:         uow,
	}
}

func (s *directoryService) AddPerson(ctx context.Context, p *domain.Person) error {
	p.Tags = domain.NormalizeTags(p.Tags)
	if err := p.Validate(); err != nil {
		return err
	}
	return s.people.Create(ctx, p)
}

func (s *directoryService) UpdatePerson(ctx context.Context, id int64, p UpdatePersonParams) (*domain.Person, error) {
	person, err := s.people.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	apply(&person.FullName, p.FullName)
	applyPtr(&person.Email, p.Email)
	applyPtr(&person.Phone, p.Phone)
	applyPtr(&person.LinkedInURL, p.LinkedInURL)
	apply(&person.IsStakeholder, p.IsStakeholder)
	applyPtr(&person.Company, p.Company)
	applyPtr(&person.Title, p.Title)
	applyPtr(&person.Notes, p.Notes)
	applyTags(&person.Tags, p.Tags)
	if p.AdditionalInfo != nil {
		person.AdditionalInfo = p.AdditionalInfo
	}

	if err := person.Validate(); err != nil {
		return nil, err
	}
	if err := s.people.Update(ctx, person); err != nil {
		return nil, err
	}
	return person, nil
}

func (s *directoryService) AddClient(ctx context.Context, c *domain.Client) error {
	if c.Type == "" {
		c.Type = domain.ClientCompany
	}
	if c.Status == "" {
		c.Status = domain.ClientActive
	}
	c.Tags = domain.NormalizeTags(c.Tags)
	if err := c.Validate(); err != nil {
		return err
	}
	return s.clients.Create(ctx, c)
}

func (s *directoryService) UpdateClient(ctx context.Context, id int64, p UpdateClientParams) (*domain.Client, error) {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	apply(&client.Name, p.Name)
	apply(&client.Type, p.Type)
	apply(&client.Status, p.Status)
	applyPtr(&client.ContactPersonID, p.ContactPersonID)
	applyPtr(&client.Notes, p.Notes)
	applyTags(&client.Tags, p.Tags)

	if err := client.Validate(); err != nil {
		return nil, err
	}
	if err := s.clients.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *directoryService) AddEmployer(ctx context.Context, e *domain.Employer) error {
	e.Tags = domain.NormalizeTags(e.Tags)
	if err := e.Validate(); err != nil {
		return err
	}
	return s.employers.Create(ctx, e)
}

func (s *directoryService) AddProject(ctx context.Context, pr *domain.Project) error {
	if pr.Status == "" {
		pr.Status = domain.ProjectActive
	}
	pr.Tags = domain.NormalizeTags(pr.Tags)
	if err := pr.Validate(); err != nil {
		return err
	}
	return s.projects.Create(ctx, pr)
}

func (s *directoryService) UpdateProject(ctx context.Context, id int64, p UpdateProjectParams) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	apply(&project.Name, p.Name)
	apply(&project.ClientID, p.ClientID)
	applyPtr(&project.OnBehalfOfID, p.OnBehalfOfID)
	applyPtr(&project.Description, p.Description)
	apply(&project.Status, p.Status)
	applyPtr(&project.StartDate, p.StartDate)
	applyPtr(&project.EndDate, p.EndDate)
	applyTags(&project.Tags, p.Tags)

	if err := project.Validate(); err != nil {
		return nil, err
	}
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// AddEmployment creates an employment row. An open-ended row is guarded
// by the one-current-engagement invariant, checked inside the same
// transaction as the insert.
func (s *directoryService) AddEmployment(ctx context.Context, h *domain.EmploymentHistory) error {
	if err := h.Validate(); err != nil {
		return err
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEmployments := repository.NewSQLiteEmploymentRepo(tx)
		if h.EndDate == nil {
			current, err := txEmployments.HasCurrent(ctx, h.PersonID, h.ClientID)
			if err != nil {
				return err
			}
			if current {
				return fmt.Errorf("person %d already has a current engagement at client %d: %w",
					h.PersonID, h.ClientID, apperr.ErrConflict)
			}
		}
		return txEmployments.Create(ctx, h)
	})
}

func (s *directoryService) EndEmployment(ctx context.Context, id int64, end time.Time) (*domain.EmploymentHistory, error) {
	h, err := s.employments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if end.Before(h.StartDate) {
		return nil, fmt.Errorf("employment end_date precedes start_date: %w", apperr.ErrInvalidArgument)
	}
	if err := s.employments.SetEndDate(ctx, id, end); err != nil {
		return nil, err
	}
	return s.employments.GetByID(ctx, id)
}
