package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/portfolio-api/internal/grading"
	"github.com/noah-isme/portfolio-api/internal/models"
	appErrors "github.com/noah-isme/portfolio-api/pkg/errors"
	"github.com/noah-isme/portfolio-api/pkg/export"
)

// Transcript formats.
const (
	TranscriptCSV = "csv"
	TranscriptPDF = "pdf"
)

var transcriptHeaders = []string{"Course", "Year", "Semester", "Level", "Grade", "Letter", "Grade Point"}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// TranscriptFile is a rendered transcript ready to be sent as an attachment.
type TranscriptFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// TranscriptService renders a user's courses and GPA figures as CSV or PDF.
type TranscriptService struct {
	courses courseLister
	csv     csvRenderer
	pdf     pdfRenderer
	title   string
	logger  *zap.Logger
	now     func() time.Time
}

// NewTranscriptService constructs TranscriptService.
func NewTranscriptService(courses courseLister, csv csvRenderer, pdf pdfRenderer, title string, logger *zap.Logger) *TranscriptService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if title == "" {
		title = "Academic Transcript"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TranscriptService{courses: courses, csv: csv, pdf: pdf, title: title, logger: logger, now: time.Now}
}

// Export renders the transcript in the requested format.
func (s *TranscriptService) Export(ctx context.Context, userID, format string) (*TranscriptFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = TranscriptCSV
	}
	if format != TranscriptCSV && format != TranscriptPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
	courses, err := s.courses.List(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	dataset := BuildTranscriptDataset(courses)

	var (
		body        []byte
		contentType string
	)
	switch format {
	case TranscriptPDF:
		body, err = s.pdf.Render(dataset, s.title)
		contentType = "application/pdf"
	default:
		body, err = s.csv.Render(dataset)
		contentType = "text/csv"
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render transcript")
	}
	s.logger.Info("transcript exported", zap.String("user_id", userID), zap.String("format", format), zap.Int("courses", len(courses)))
	return &TranscriptFile{
		Filename:    fmt.Sprintf("transcript-%s.%s", s.now().UTC().Format("20060102"), format),
		ContentType: contentType,
		Body:        body,
	}, nil
}

// BuildTranscriptDataset lays out one row per course followed by GPA summary lines.
func BuildTranscriptDataset(courses []models.Course) export.Dataset {
	rows := make([]map[string]string, 0, len(courses))
	for _, course := range courses {
		row := map[string]string{
			"Course":   course.Name,
			"Year":     strconv.Itoa(course.Year),
			"Semester": string(course.Semester),
			"Level":    string(course.Level),
		}
		if course.Grade != nil {
			grade := *course.Grade
			row["Grade"] = formatFixed(grade)
			row["Letter"] = grading.LetterGrade(grade)
			row["Grade Point"] = formatFixed(grading.GradePoint(grade))
		}
		rows = append(rows, row)
	}
	summary := BuildGPASummary(courses)
	return export.Dataset{
		Headers: transcriptHeaders,
		Rows:    rows,
		Summary: []export.SummaryLine{
			{Label: "Unweighted GPA", Value: formatFixed(summary.Unweighted)},
			{Label: "Weighted GPA", Value: formatFixed(summary.Weighted)},
			{Label: "Graded Courses", Value: fmt.Sprintf("%d of %d", summary.GradedCourses, summary.TotalCourses)},
		},
	}
}

func formatFixed(v float64) string {
	return strconv.FormatFloat(grading.Round2(v), 'f', 2, 64)
}
