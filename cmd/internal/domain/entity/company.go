package entity

import (
	"strings"

	"gorm.io/datatypes"
)

// WorkflowStatus is the processing state of a record, independent of its
// registry data. Values are stored as they travel on the wire.
type WorkflowStatus string

const (
	StatusPending   WorkflowStatus = "PENDIENTE"
	StatusProcessed WorkflowStatus = "PROCESADO"
	StatusError     WorkflowStatus = "ERROR"
)

var WorkflowStatuses = []WorkflowStatus{StatusPending, StatusProcessed, StatusError}

func (s WorkflowStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessed, StatusError:
		return true
	}
	return false
}

// ParseWorkflowStatus accepts the status token in any letter case.
func ParseWorkflowStatus(token string) (WorkflowStatus, bool) {
	s := WorkflowStatus(strings.ToUpper(token))
	return s, s.Valid()
}

// Company is one business entity from the chamber-of-commerce registry.
//
// NIT and Name form the natural key. Neither is unique: lookups resolve to
// the lowest matching ID.
type Company struct {
	ID                 int64   `gorm:"primaryKey;autoIncrement"`
	NIT                *string `gorm:"column:nit;index"`
	Name               *string `gorm:"column:nombre;index"`
	Category           *string `gorm:"column:categoria"`
	CompanyType        *string `gorm:"column:tipo_sociedad"`
	OrganizationType   *string `gorm:"column:tipo_organizacion"`
	Chamber            *string `gorm:"column:camara_comercio"`
	RegistrationNumber *string `gorm:"column:numero_matricula"`
	RegistrationDate   *string `gorm:"column:fecha_matricula"`
	ValidUntil         *string `gorm:"column:fecha_vigencia"`
	RegistrationStatus *string `gorm:"column:estado_matricula"`
	RenewalDate        *string `gorm:"column:fecha_renovacion"`
	LastRenewedYear    *string `gorm:"column:ultimo_anio_renovado"`
	LastUpdateDate     *string `gorm:"column:fecha_actualizacion"`

	// RawPayload is the audit snapshot of the payload as it was received.
	RawPayload datatypes.JSON `gorm:"column:raw_json"`

	Status    WorkflowStatus `gorm:"column:estado_transaccion;not null;default:PENDIENTE"`
	CreatedAt string         `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt string         `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (Company) TableName() string {
	return "empresas"
}
