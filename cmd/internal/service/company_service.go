package service

import (
	"context"
	"empresas/cmd/internal/contract"
	"empresas/cmd/internal/domain/entity"
	"empresas/cmd/internal/utils"
	"empresas/cmd/internal/utils/apierror"
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

type CompanyRepository interface {
	FindFirstByNaturalKey(ctx context.Context, nit, name *string) (*entity.Company, error)
	Create(ctx context.Context, company *entity.Company) error
	UpdateData(ctx context.Context, company *entity.Company) error
	UpdateStatusByKey(ctx context.Context, key string, status entity.WorkflowStatus, updatedAt string) (int64, error)
	FindByStatus(ctx context.Context, status entity.WorkflowStatus) ([]*entity.Company, error)
	FindAll(ctx context.Context) ([]*entity.Company, error)
}

// RepositoryFactory binds a repository to a store handle. Every operation
// asks for one bound to its own transaction.
type RepositoryFactory func(db *gorm.DB) CompanyRepository

type CompanyService struct {
	DB       *gorm.DB
	NewRepo  RepositoryFactory
	Validate *validator.Validate
}

func NewCompanyService(db *gorm.DB, newRepo RepositoryFactory, validate *validator.Validate) *CompanyService {
	return &CompanyService{
		DB:       db,
		NewRepo:  newRepo,
		Validate: validate,
	}
}

// Upsert resolves the payload to the first company sharing its nit or name
// and overwrites its registry data, or creates a new PENDIENTE company.
// The workflow status of an existing company is never touched.
func (s *CompanyService) Upsert(ctx context.Context, payload map[string]any) (*contract.UpsertResponse, apierror.ErrorResponse) {
	nit := FirstValue(payload, nitKeys...)
	name := FirstValue(payload, nameKeys...)
	if nit == nil && name == nil {
		return nil, apierror.MissingIdentityError
	}

	snapshot, err := json.Marshal(payload)
	if err != nil {
		log.Errorf("failed to snapshot payload: %v", err)
		return nil, apierror.InternalServerError
	}

	company := companyFromPayload(payload, nit, name)
	company.RawPayload = snapshot
	now := utils.NowUTC()
	company.UpdatedAt = now

	var resp *contract.UpsertResponse
	err = s.inTx(ctx, func(repo CompanyRepository) error {
		existing, err := repo.FindFirstByNaturalKey(ctx, nit, name)
		if err != nil {
			return err
		}

		if existing != nil {
			company.ID = existing.ID
			if err := repo.UpdateData(ctx, company); err != nil {
				return err
			}

			prior := string(existing.Status)
			resp = &contract.UpsertResponse{
				Message:       contract.MessageUpdated,
				ID:            existing.ID,
				ExistingState: &prior,
			}
			return nil
		}

		company.Status = entity.StatusPending
		company.CreatedAt = now
		if err := repo.Create(ctx, company); err != nil {
			return err
		}

		resp = &contract.UpsertResponse{
			Message: contract.MessageCreated,
			ID:      company.ID,
			Created: true,
		}
		return nil
	})

	if err != nil {
		log.Errorf("failed to upsert company (nit=%s, nombre=%s): %v", deref(nit), deref(name), err)
		return nil, apierror.NewStoreError(err)
	}
	return resp, nil
}

// SetStatus moves every company whose nit or name equals the key to the
// requested status.
func (s *CompanyService) SetStatus(ctx context.Context, req *contract.StatusChangeRequest) (*contract.StatusChangeResponse, apierror.ErrorResponse) {
	if valerr := s.Validate.Struct(req); valerr != nil {
		if structured := apierror.FromValidationError(valerr); structured != nil {
			return nil, structured
		}
		return nil, apierror.InvalidDataError
	}

	status := entity.WorkflowStatus(req.Status)
	var affected int64
	err := s.inTx(ctx, func(repo CompanyRepository) error {
		n, err := repo.UpdateStatusByKey(ctx, req.Key, status, utils.NowUTC())
		affected = n
		return err
	})

	if err != nil {
		log.Errorf("failed to update status of %q: %v", req.Key, err)
		return nil, apierror.NewStoreError(err)
	}

	if affected == 0 {
		return nil, apierror.NotFoundError
	}

	log.Debugf("status of %q set to %s on %d rows", req.Key, status, affected)
	return &contract.StatusChangeResponse{
		Message: contract.MessageStatusUpdated,
		Status:  string(status),
	}, nil
}

// ListByStatus returns the projection of every company in the given status.
// The status token is case-insensitive.
func (s *CompanyService) ListByStatus(ctx context.Context, token string) ([]*contract.CompanyResponse, apierror.ErrorResponse) {
	companies, apierr := s.findByStatus(ctx, token)
	if apierr != nil {
		return nil, apierr
	}

	resp := make([]*contract.CompanyResponse, len(companies))
	for i, c := range companies {
		resp[i] = toCompanyResponse(c)
	}
	return resp, nil
}

// ListNamesByStatus is ListByStatus reduced to names. Companies without a
// name are skipped.
func (s *CompanyService) ListNamesByStatus(ctx context.Context, token string) ([]string, apierror.ErrorResponse) {
	companies, apierr := s.findByStatus(ctx, token)
	if apierr != nil {
		return nil, apierr
	}

	names := make([]string, 0, len(companies))
	for _, c := range companies {
		if c.Name != nil {
			names = append(names, *c.Name)
		}
	}
	return names, nil
}

func (s *CompanyService) findByStatus(ctx context.Context, token string) ([]*entity.Company, apierror.ErrorResponse) {
	status, ok := entity.ParseWorkflowStatus(token)
	if !ok {
		return nil, apierror.InvalidStatusError
	}

	companies, err := s.NewRepo(s.DB).FindByStatus(ctx, status)
	if err != nil {
		log.Errorf("failed to fetch companies by status %s: %v", status, err)
		return nil, apierror.NewStoreError(err)
	}
	return companies, nil
}

// inTx runs fn against a repository bound to a fresh transaction. Any error
// returned by fn rolls the transaction back.
func (s *CompanyService) inTx(ctx context.Context, fn func(repo CompanyRepository) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(s.NewRepo(tx))
	})
}

func toCompanyResponse(c *entity.Company) *contract.CompanyResponse {
	return &contract.CompanyResponse{
		ID:                 c.ID,
		NIT:                c.NIT,
		Name:               c.Name,
		Category:           c.Category,
		CompanyType:        c.CompanyType,
		OrganizationType:   c.OrganizationType,
		Chamber:            c.Chamber,
		RegistrationNumber: c.RegistrationNumber,
		RegistrationDate:   c.RegistrationDate,
		ValidUntil:         c.ValidUntil,
		RegistrationStatus: c.RegistrationStatus,
		RenewalDate:        c.RenewalDate,
		LastRenewedYear:    c.LastRenewedYear,
		LastUpdateDate:     c.LastUpdateDate,
		Status:             string(c.Status),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
