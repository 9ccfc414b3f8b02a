package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstValue(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		want    *string
	}{
		{name: "first key wins", payload: map[string]any{"nit": "1", "NIT": "2"}, want: ptr("1")},
		{name: "empty string falls through", payload: map[string]any{"nit": "", "NIT": "2"}, want: ptr("2")},
		{name: "null falls through", payload: map[string]any{"nit": nil, "Identificación": "3"}, want: ptr("3")},
		{name: "zero falls through", payload: map[string]any{"nit": json.Number("0"), "NIT": "2"}, want: ptr("2")},
		{name: "false falls through", payload: map[string]any{"nit": false, "NIT": "2"}, want: ptr("2")},
		{name: "empty list falls through", payload: map[string]any{"nit": []any{}, "NIT": "2"}, want: ptr("2")},
		{name: "number kept literal", payload: map[string]any{"nit": json.Number("900123456")}, want: ptr("900123456")},
		{name: "float rendered", payload: map[string]any{"nit": 12.5}, want: ptr("12.5")},
		{name: "true rendered", payload: map[string]any{"nit": true}, want: ptr("true")},
		{name: "keys are exact", payload: map[string]any{"Nit": "1", " nit": "2"}},
		{name: "nothing usable", payload: map[string]any{"nit": "", "NIT": nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FirstValue(tt.payload, nitKeys...))
		})
	}
}

func TestStatusChangeKey(t *testing.T) {
	assert.Equal(t, "900", StatusChangeKey(map[string]any{"NIT": "900", "nombre": "Acme"}))
	assert.Equal(t, "Acme", StatusChangeKey(map[string]any{"nit": "", "nombre": "Acme"}))
	assert.Equal(t, "", StatusChangeKey(map[string]any{"Nombre": "Acme"}), "capitalized name is not a status key")
}

func TestStatusChangeStatus(t *testing.T) {
	assert.Equal(t, "PROCESADO", StatusChangeStatus(map[string]any{"estado": "PROCESADO"}))
	assert.Equal(t, "", StatusChangeStatus(map[string]any{"estado": json.Number("1")}))
	assert.Equal(t, "", StatusChangeStatus(map[string]any{}))
}

func TestCompanyFromPayload(t *testing.T) {
	c := companyFromPayload(map[string]any{
		"Cámara de Comercio":  "BOGOTA",
		"Último año renovado": json.Number("2023"),
		"Fecha de Vigencia":   nil,
		"Tipo Organización":   map[string]any{"codigo": "SAS"},
		"Fecha de renovación": "",
	}, ptr("900"), nil)

	assert.Equal(t, "900", *c.NIT)
	assert.Nil(t, c.Name)
	assert.Equal(t, "BOGOTA", *c.Chamber)
	assert.Equal(t, "2023", *c.LastRenewedYear)
	assert.Nil(t, c.ValidUntil)
	assert.Nil(t, c.Category)
	assert.JSONEq(t, `{"codigo":"SAS"}`, *c.OrganizationType)
	assert.Equal(t, "", *c.RenewalDate, "empty strings are stored as sent")
}

func ptr(s string) *string {
	return &s
}
