package contract

const (
	MessageCreated       = "Registro creado"
	MessageUpdated       = "Registro actualizado"
	MessageStatusUpdated = "Estado actualizado"
)

// StatusChangeRequest is resolved from the raw /update-status body, where the
// key may arrive under several names.
type StatusChangeRequest struct {
	Key    string `validate:"required"`
	Status string `validate:"required,workflowstatus"`
}

type UpsertResponse struct {
	Message       string  `json:"message"`
	ID            int64   `json:"id"`
	ExistingState *string `json:"existing_state,omitempty"`

	// Created selects 201 over 200, it is not serialized.
	Created bool `json:"-"`
}

type StatusChangeResponse struct {
	Message string `json:"message"`
	Status  string `json:"estado"`
}

// CompanyResponse is the listing projection. Audit snapshot and timestamps
// are left out.
type CompanyResponse struct {
	ID                 int64   `json:"id"`
	NIT                *string `json:"nit"`
	Name               *string `json:"nombre"`
	Category           *string `json:"categoria"`
	CompanyType        *string `json:"tipo_sociedad"`
	OrganizationType   *string `json:"tipo_organizacion"`
	Chamber            *string `json:"camara_comercio"`
	RegistrationNumber *string `json:"numero_matricula"`
	RegistrationDate   *string `json:"fecha_matricula"`
	ValidUntil         *string `json:"fecha_vigencia"`
	RegistrationStatus *string `json:"estado_matricula"`
	RenewalDate        *string `json:"fecha_renovacion"`
	LastRenewedYear    *string `json:"ultimo_anio_renovado"`
	LastUpdateDate     *string `json:"fecha_actualizacion"`
	Status             string  `json:"estado_transaccion"`
}
