package service

import (
	"bytes"
	"context"
	"empresas/cmd/internal/domain/entity"
	"empresas/cmd/internal/utils/apierror"
	"errors"
	"fmt"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/xuri/excelize/v2"
)

const (
	ReportFilename    = "reporte_empresas.xlsx"
	ReportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ReportSheet       = "Reporte Empresas"
)

var ReportHeaders = []string{
	"NIT", "Nombre", "Categoría", "Tipo Sociedad", "Tipo Organización",
	"Cámara Comercio", "Número Matrícula", "Fecha Matrícula", "Fecha Vigencia",
	"Estado Matrícula", "Último Año Renovado", "Fecha Actualización", "Estado Transacción",
}

type CompanyLister interface {
	FindAll(ctx context.Context) ([]*entity.Company, error)
}

// ReportArchiver keeps a copy of each generated report. Optional.
type ReportArchiver interface {
	UploadFile(data []byte, filename string) (string, error)
}

type Report struct {
	Filename    string
	ContentType string
	Content     []byte
}

type ReportService struct {
	CompanyRepo CompanyLister
	Archiver    ReportArchiver
}

func NewReportService(companyRepo CompanyLister, archiver ReportArchiver) *ReportService {
	return &ReportService{
		CompanyRepo: companyRepo,
		Archiver:    archiver,
	}
}

// Export renders every stored company into a single-sheet workbook, in
// store order.
func (r *ReportService) Export(ctx context.Context) (*Report, apierror.ErrorResponse) {
	companies, err := r.CompanyRepo.FindAll(ctx)
	if err != nil {
		log.Errorf("failed to fetch companies for report: %v", err)
		return nil, apierror.NewStoreError(err)
	}

	buf, err := BuildWorkbook(companies)
	if err != nil {
		log.Errorf("failed to render report: %v", err)
		return nil, apierror.InternalServerError
	}

	content := buf.Bytes()
	if r.Archiver != nil {
		go r.archive(content, time.Now())
	}

	return &Report{
		Filename:    ReportFilename,
		ContentType: ReportContentType,
		Content:     content,
	}, nil
}

// BuildWorkbook writes the header row followed by one row per company.
func BuildWorkbook(companies []*entity.Company) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ReportSheet); err != nil {
		return nil, err
	}

	header := make([]any, len(ReportHeaders))
	for i, h := range ReportHeaders {
		header[i] = h
	}
	if err := setRow(f, 1, header); err != nil {
		return nil, err
	}

	for i, c := range companies {
		if err := setRow(f, i+2, reportRow(c)); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}

func setRow(f *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(ReportSheet, cell, &values)
}

// reportRow follows ReportHeaders. Renewal date is not part of the report.
func reportRow(c *entity.Company) []any {
	return []any{
		cellValue(c.NIT),
		cellValue(c.Name),
		cellValue(c.Category),
		cellValue(c.CompanyType),
		cellValue(c.OrganizationType),
		cellValue(c.Chamber),
		cellValue(c.RegistrationNumber),
		cellValue(c.RegistrationDate),
		cellValue(c.ValidUntil),
		cellValue(c.RegistrationStatus),
		cellValue(c.LastRenewedYear),
		cellValue(c.LastUpdateDate),
		string(c.Status),
	}
}

func cellValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Snapshot renders the current report and archives it, returning the
// storage key.
func (r *ReportService) Snapshot(ctx context.Context, at time.Time) (string, error) {
	if r.Archiver == nil {
		return "", errors.New("no report archiver configured")
	}

	companies, err := r.CompanyRepo.FindAll(ctx)
	if err != nil {
		return "", fmt.Errorf("fetch companies: %w", err)
	}

	buf, err := BuildWorkbook(companies)
	if err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return r.Archiver.UploadFile(buf.Bytes(), archiveName(at))
}

func (r *ReportService) archive(content []byte, at time.Time) {
	name := archiveName(at)
	key, err := r.Archiver.UploadFile(content, name)
	if err != nil {
		log.Errorf("failed to archive report %s: %v", name, err)
		return
	}
	log.Infof("report archived at %s", key)
}

func archiveName(at time.Time) string {
	return fmt.Sprintf("reporte_empresas_%s.xlsx", at.UTC().Format("20060102T150405Z"))
}
