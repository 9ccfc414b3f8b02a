package handler

import (
	"context"
	"empresas/cmd/internal/contract"
	"empresas/cmd/internal/service"
	"empresas/cmd/internal/utils/apierror"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type CompanyService interface {
	Upsert(ctx context.Context, payload map[string]any) (*contract.UpsertResponse, apierror.ErrorResponse)
	SetStatus(ctx context.Context, req *contract.StatusChangeRequest) (*contract.StatusChangeResponse, apierror.ErrorResponse)
	ListByStatus(ctx context.Context, token string) ([]*contract.CompanyResponse, apierror.ErrorResponse)
	ListNamesByStatus(ctx context.Context, token string) ([]string, apierror.ErrorResponse)
}

type DefaultCompanyRoute struct {
	CompanyService CompanyService
}

func NewCompanyRoute(companyService CompanyService) *DefaultCompanyRoute {
	return &DefaultCompanyRoute{CompanyService: companyService}
}

func (r *DefaultCompanyRoute) ProcessData(c echo.Context) error {
	payload, apierr := bindPayload(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp, apierr := r.CompanyService.Upsert(c.Request().Context(), payload)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	if resp.Created {
		return c.JSON(http.StatusCreated, resp)
	}
	return c.JSON(http.StatusOK, resp)
}

func (r *DefaultCompanyRoute) UpdateStatus(c echo.Context) error {
	payload, apierr := bindPayload(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	req := &contract.StatusChangeRequest{
		Key:    service.StatusChangeKey(payload),
		Status: service.StatusChangeStatus(payload),
	}

	resp, apierr := r.CompanyService.SetStatus(c.Request().Context(), req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

func (r *DefaultCompanyRoute) GetByStatus(c echo.Context) error {
	status := c.Param("estado")
	ctx := c.Request().Context()

	if strings.ToLower(c.QueryParam("solo_nombres")) == "true" {
		names, apierr := r.CompanyService.ListNamesByStatus(ctx, status)
		if apierr != nil {
			return c.JSON(apierr.Code(), apierr)
		}
		return c.JSON(http.StatusOK, names)
	}

	companies, apierr := r.CompanyService.ListByStatus(ctx, status)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, companies)
}

// bindPayload decodes a JSON object body keeping numbers in their literal
// form, so identifiers like NITs are stored exactly as sent.
func bindPayload(c echo.Context) (map[string]any, apierror.ErrorResponse) {
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(contentType, echo.MIMEApplicationJSON) {
		return nil, apierror.JSONRequiredError
	}

	var payload map[string]any
	dec := json.NewDecoder(c.Request().Body)
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil || payload == nil {
		return nil, apierror.JSONRequiredError
	}
	return payload, nil
}
