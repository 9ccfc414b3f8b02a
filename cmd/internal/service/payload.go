package service

import (
	"empresas/cmd/internal/domain/entity"
	"encoding/json"
	"strconv"
)

// Source-dataset keys. Matching is exact: no trimming, no case folding.
const (
	keyCategory           = "Categoria de la Matrícula"
	keyCompanyType        = "Tipo de Sociedad"
	keyOrganizationType   = "Tipo Organización"
	keyChamber            = "Cámara de Comercio"
	keyRegistrationNumber = "Número de Matrícula"
	keyRegistrationDate   = "Fecha de Matrícula"
	keyValidUntil         = "Fecha de Vigencia"
	keyRegistrationStatus = "Estado de la matrícula"
	keyRenewalDate        = "Fecha de renovación"
	keyLastRenewedYear    = "Último año renovado"
	keyLastUpdateDate     = "Fecha de Actualización"

	keyStatus = "estado"
)

var (
	nitKeys       = []string{"nit", "NIT", "Identificación"}
	nameKeys      = []string{"nombre", "Nombre"}
	statusKeyKeys = []string{"nit", "NIT", "Identificación", "nombre"}
)

// FirstValue returns the text of the first key holding a non-empty value.
// Empty strings, nulls, false, zero and empty collections fall through.
func FirstValue(payload map[string]any, keys ...string) *string {
	for _, k := range keys {
		v, ok := payload[k]
		if !ok || isEmpty(v) {
			continue
		}
		if s, ok := toText(v); ok {
			return &s
		}
	}
	return nil
}

// StatusChangeKey resolves the match key of a status change body.
func StatusChangeKey(payload map[string]any) string {
	if k := FirstValue(payload, statusKeyKeys...); k != nil {
		return *k
	}
	return ""
}

// StatusChangeStatus returns the requested status only if it arrived as a
// string. Anything else is left empty and fails validation.
func StatusChangeStatus(payload map[string]any) string {
	s, _ := payload[keyStatus].(string)
	return s
}

func fieldValue(payload map[string]any, key string) *string {
	s, ok := toText(payload[key])
	if !ok {
		return nil
	}
	return &s
}

// companyFromPayload maps the source-dataset keys onto a company. Absent
// keys become nulls.
func companyFromPayload(payload map[string]any, nit, name *string) *entity.Company {
	return &entity.Company{
		NIT:                nit,
		Name:               name,
		Category:           fieldValue(payload, keyCategory),
		CompanyType:        fieldValue(payload, keyCompanyType),
		OrganizationType:   fieldValue(payload, keyOrganizationType),
		Chamber:            fieldValue(payload, keyChamber),
		RegistrationNumber: fieldValue(payload, keyRegistrationNumber),
		RegistrationDate:   fieldValue(payload, keyRegistrationDate),
		ValidUntil:         fieldValue(payload, keyValidUntil),
		RegistrationStatus: fieldValue(payload, keyRegistrationStatus),
		RenewalDate:        fieldValue(payload, keyRenewalDate),
		LastRenewedYear:    fieldValue(payload, keyLastRenewedYear),
		LastUpdateDate:     fieldValue(payload, keyLastUpdateDate),
	}
}

// toText renders a decoded JSON value as stored text. Numbers keep their
// literal form when the payload was decoded with UseNumber.
func toText(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, true
	case json.Number:
		return val.String(), true
	case bool:
		return strconv.FormatBool(val), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return "", false
		}
		return string(b), true
	}
}

func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case bool:
		return !val
	case json.Number:
		f, err := val.Float64()
		return err == nil && f == 0
	case float64:
		return val == 0
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	}
	return false
}
