package handler

import (
	"context"
	"empresas/cmd/internal/service"
	"empresas/cmd/internal/utils/apierror"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

type ReportService interface {
	Export(ctx context.Context) (*service.Report, apierror.ErrorResponse)
}

type DefaultReportRoute struct {
	ReportService ReportService
}

func NewReportRoute(reportService ReportService) *DefaultReportRoute {
	return &DefaultReportRoute{ReportService: reportService}
}

func (r *DefaultReportRoute) GetReport(c echo.Context) error {
	report, apierr := r.ReportService.Export(c.Request().Context())
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", report.Filename))
	return c.Blob(http.StatusOK, report.ContentType, report.Content)
}
