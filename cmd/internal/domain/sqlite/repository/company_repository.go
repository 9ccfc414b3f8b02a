package repository

import (
	"context"
	"empresas/cmd/internal/domain/entity"
	"errors"

	"gorm.io/gorm"
)

const naturalKeyClause = "nit = ? OR nombre = ?"

type DefaultCompanyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository binds a repository to the given handle, which may be
// the root connection or a transaction.
func NewCompanyRepository(db *gorm.DB) *DefaultCompanyRepository {
	return &DefaultCompanyRepository{db: db}
}

// FindFirstByNaturalKey returns the lowest-ID company whose nit or name
// matches. A nil key never matches.
func (r *DefaultCompanyRepository) FindFirstByNaturalKey(ctx context.Context, nit, name *string) (*entity.Company, error) {
	var company entity.Company
	err := r.db.WithContext(ctx).
		Where(naturalKeyClause, nit, name).
		Order("id ASC").
		First(&company).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *DefaultCompanyRepository) Create(ctx context.Context, company *entity.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

// UpdateData overwrites the registry data of the company with the same ID.
// Status and creation time are never written here.
func (r *DefaultCompanyRepository) UpdateData(ctx context.Context, company *entity.Company) error {
	return r.db.WithContext(ctx).
		Model(&entity.Company{}).
		Where("id = ?", company.ID).
		Updates(map[string]any{
			"nit":                  company.NIT,
			"nombre":               company.Name,
			"categoria":            company.Category,
			"tipo_sociedad":        company.CompanyType,
			"tipo_organizacion":    company.OrganizationType,
			"camara_comercio":      company.Chamber,
			"numero_matricula":     company.RegistrationNumber,
			"fecha_matricula":      company.RegistrationDate,
			"fecha_vigencia":       company.ValidUntil,
			"estado_matricula":     company.RegistrationStatus,
			"fecha_renovacion":     company.RenewalDate,
			"ultimo_anio_renovado": company.LastRenewedYear,
			"fecha_actualizacion":  company.LastUpdateDate,
			"raw_json":             company.RawPayload,
			"updated_at":           company.UpdatedAt,
		}).Error
}

// UpdateStatusByKey sets the status of every company whose nit or name
// equals key and reports how many rows changed.
func (r *DefaultCompanyRepository) UpdateStatusByKey(ctx context.Context, key string, status entity.WorkflowStatus, updatedAt string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Company{}).
		Where(naturalKeyClause, key, key).
		Updates(map[string]any{
			"estado_transaccion": status,
			"updated_at":         updatedAt,
		})

	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *DefaultCompanyRepository) FindByStatus(ctx context.Context, status entity.WorkflowStatus) ([]*entity.Company, error) {
	var companies []*entity.Company
	err := r.db.WithContext(ctx).
		Where("estado_transaccion = ?", status).
		Order("id ASC").
		Find(&companies).Error
	if err != nil {
		return nil, err
	}
	return companies, nil
}

func (r *DefaultCompanyRepository) FindAll(ctx context.Context) ([]*entity.Company, error) {
	var companies []*entity.Company
	err := r.db.WithContext(ctx).Order("id ASC").Find(&companies).Error
	if err != nil {
		return nil, err
	}
	return companies, nil
}
