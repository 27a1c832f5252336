package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/portfolio-api/internal/grading"
	"github.com/noah-isme/portfolio-api/internal/models"
	appErrors "github.com/noah-isme/portfolio-api/pkg/errors"
	"github.com/noah-isme/portfolio-api/pkg/export"
)

type capturingPDF struct {
	dataset export.Dataset
	title   string
}

func (c *capturingPDF) Render(data export.Dataset, title string) ([]byte, error) {
	c.dataset = data
	c.title = title
	return []byte("%PDF-fake"), nil
}

func TestBuildTranscriptDataset(t *testing.T) {
	dataset := BuildTranscriptDataset([]models.Course{
		{Name: "Calculus", Year: 2024, Semester: grading.SemesterFall, Level: grading.LevelAP, Grade: ptrFloat64(91.256)},
		{Name: "Band", Year: 2024, Semester: grading.SemesterSpring, Level: grading.LevelRegular},
	})

	require.Len(t, dataset.Rows, 2)
	assert.Equal(t, "91.26", dataset.Rows[0]["Grade"])
	assert.Equal(t, "A-", dataset.Rows[0]["Letter"])
	assert.Equal(t, "3.70", dataset.Rows[0]["Grade Point"])
	assert.Equal(t, "", dataset.Rows[1]["Grade"])
	require.Len(t, dataset.Summary, 3)
	assert.Equal(t, "3.70", dataset.Summary[0].Value)
	assert.Equal(t, "4.70", dataset.Summary[1].Value)
	assert.Equal(t, "1 of 2", dataset.Summary[2].Value)
}

func TestTranscriptServiceExportCSV(t *testing.T) {
	svc := NewTranscriptService(transcriptCourses(), nil, nil, "", nil)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }

	file, err := svc.Export(context.Background(), "u1", "CSV")
	require.NoError(t, err)

	assert.Equal(t, "transcript-20240601.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)
	lines := strings.Split(string(file.Body), "\n")
	assert.Equal(t, "Course,Year,Semester,Level,Grade,Letter,Grade Point", lines[0])
	assert.Contains(t, string(file.Body), "Unweighted GPA,3.67")
}

func TestTranscriptServiceExportPDF(t *testing.T) {
	pdf := &capturingPDF{}
	svc := NewTranscriptService(transcriptCourses(), nil, pdf, "Student Record", nil)

	file, err := svc.Export(context.Background(), "u1", "pdf")
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Body, []byte("%PDF")))
	assert.Equal(t, "Student Record", pdf.title)
	assert.Len(t, pdf.dataset.Rows, 4)
}

func TestTranscriptServiceRejectsUnknownFormat(t *testing.T) {
	svc := NewTranscriptService(transcriptCourses(), nil, nil, "", nil)

	_, err := svc.Export(context.Background(), "u1", "xlsx")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation.Code))
}
