package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupoint/timetable-api/internal/models"
	appErrors "github.com/edupoint/timetable-api/pkg/errors"
)

type exportReaderStub struct {
	entries []models.TimetableEntryDetail
}

func (s exportReaderStub) ListDetailed(ctx context.Context) ([]models.TimetableEntryDetail, error) {
	return s.entries, nil
}

func exportFixtureEntries() []models.TimetableEntryDetail {
	return []models.TimetableEntryDetail{
		{
			TimetableEntry: models.TimetableEntry{ID: "e1", ClassGroup: "Class A"},
			SubjectName:    "Mathematics",
			TeacherName:    "Ada Lovelace",
			RoomName:       "101",
			Day:            "Monday",
			Period:         1,
			StartTime:      "08:00",
			EndTime:        "08:45",
		},
		{
			TimetableEntry: models.TimetableEntry{ID: "e2", ClassGroup: "Class B"},
			SubjectName:    "Biology",
			TeacherName:    "Charles Darwin",
			RoomName:       "Lab 2",
			Day:            "Tuesday",
			Period:         3,
		},
	}
}

func TestExportServiceCSV(t *testing.T) {
	svc := NewExportService(exportReaderStub{entries: exportFixtureEntries()}, ExportConfig{}, nil, nil, nil)

	payload, err := svc.Export(context.Background(), ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "timetable.csv", payload.Filename)
	assert.Equal(t, "text/csv", payload.ContentType)

	lines := strings.Split(strings.TrimSpace(string(payload.Data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Day,Period,Time,Subject,Teacher,Room,Class Group", lines[0])
	assert.Equal(t, "Monday,1,08:00-08:45,Mathematics,Ada Lovelace,101,Class A", lines[1])
	assert.Equal(t, "Tuesday,3,,Biology,Charles Darwin,Lab 2,Class B", lines[2])
}

func TestExportServicePDF(t *testing.T) {
	svc := NewExportService(exportReaderStub{entries: exportFixtureEntries()}, ExportConfig{Title: "Term 1"}, nil, nil, nil)

	payload, err := svc.Export(context.Background(), ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "timetable.pdf", payload.Filename)
	assert.Equal(t, "application/pdf", payload.ContentType)
	assert.True(t, strings.HasPrefix(string(payload.Data), "%PDF"))
}

func TestExportServiceUnsupportedFormat(t *testing.T) {
	svc := NewExportService(exportReaderStub{}, ExportConfig{}, nil, nil, nil)

	_, err := svc.Export(context.Background(), ExportFormat("xlsx"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportServiceEmptyTimetable(t *testing.T) {
	svc := NewExportService(exportReaderStub{}, ExportConfig{}, nil, nil, nil)

	payload, err := svc.Export(context.Background(), ExportFormatCSV)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(payload.Data)), "\n")
	require.Len(t, lines, 1)
	assert.Equal(t, "Day,Period,Time,Subject,Teacher,Room,Class Group", lines[0])
}
