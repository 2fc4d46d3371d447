package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/edupoint/timetable-api/internal/models"
	"github.com/edupoint/timetable-api/pkg/export"
	appErrors "github.com/edupoint/timetable-api/pkg/errors"
)

// ExportFormat enumerates supported timetable export encodings.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

type exportTimetableReader interface {
	ListDetailed(ctx context.Context) ([]models.TimetableEntryDetail, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	Title string
}

// ExportPayload is a rendered export ready to stream to the client.
type ExportPayload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders the persisted timetable as downloadable files.
type ExportService struct {
	entries exportTimetableReader
	csv     csvRenderer
	pdf     pdfRenderer
	logger  *zap.Logger
	cfg     ExportConfig
}

// NewExportService constructs an ExportService.
func NewExportService(entries exportTimetableReader, cfg ExportConfig, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Title == "" {
		cfg.Title = "Weekly Timetable"
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{entries: entries, csv: csv, pdf: pdf, logger: logger, cfg: cfg}
}

// Export renders the current timetable in the requested format.
func (s *ExportService) Export(ctx context.Context, format ExportFormat) (*ExportPayload, error) {
	entries, err := s.entries.ListDetailed(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable for export")
	}

	dataset := buildTimetableDataset(entries)

	var payload []byte
	var contentType, filename string
	switch format {
	case ExportFormatCSV:
		payload, err = s.csv.Render(dataset)
		contentType = "text/csv"
		filename = "timetable.csv"
	case ExportFormatPDF:
		payload, err = s.pdf.Render(dataset, s.cfg.Title)
		contentType = "application/pdf"
		filename = "timetable.pdf"
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	s.logger.Info("timetable exported",
		zap.String("format", string(format)),
		zap.Int("rows", len(dataset.Rows)))
	return &ExportPayload{Filename: filename, ContentType: contentType, Data: payload}, nil
}

func buildTimetableDataset(entries []models.TimetableEntryDetail) export.Dataset {
	headers := []string{"Day", "Period", "Time", "Subject", "Teacher", "Room", "Class Group"}
	rows := make([]map[string]string, 0, len(entries))
	for _, entry := range entries {
		timeRange := ""
		if entry.StartTime != "" && entry.EndTime != "" {
			timeRange = entry.StartTime + "-" + entry.EndTime
		}
		rows = append(rows, map[string]string{
			"Day":         entry.Day,
			"Period":      strconv.Itoa(entry.Period),
			"Time":        timeRange,
			"Subject":     entry.SubjectName,
			"Teacher":     entry.TeacherName,
			"Room":        entry.RoomName,
			"Class Group": entry.ClassGroup,
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
