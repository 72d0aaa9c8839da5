package services

import (
	"bytes"
	"fmt"

	"github.com/safetrack/ehs-platform/repositories"
	"github.com/xuri/excelize/v2"
)

type TemplateSummary struct {
	TemplateID   string `json:"template_id"`
	TemplateName string `json:"template_name"`
	Count        int64  `json:"count"`
}

type ReportSummary struct {
	TotalSubmissions int64                      `json:"total_submissions"`
	ByTemplate       []TemplateSummary          `json:"by_template"`
	ByStatus         []repositories.StatusCount `json:"by_status"`
	ByMonth          []repositories.MonthCount  `json:"by_month"`
}

type ReportService struct {
	Repos *repositories.Repos
}

func NewReportService(repos *repositories.Repos) *ReportService {
	return &ReportService{Repos: repos}
}

func (s *ReportService) Summary(orgID uint) (*ReportSummary, error) {
	total, err := s.Repos.Submission.CountByOrg(orgID)
	if err != nil {
		return nil, err
	}
	byTemplate, err := s.Repos.Submission.CountByTemplate(orgID)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.Repos.Submission.CountByStatus(orgID)
	if err != nil {
		return nil, err
	}
	byMonth, err := s.Repos.Submission.CountByMonth(orgID)
	if err != nil {
		return nil, err
	}

	summary := &ReportSummary{
		TotalSubmissions: total,
		ByStatus:         byStatus,
		ByMonth:          byMonth,
	}
	for _, row := range byTemplate {
		name := "(deleted template)"
		if t, err := s.Repos.Template.GetByID(row.TemplateID); err == nil {
			name = t.Name
		}
		summary.ByTemplate = append(summary.ByTemplate, TemplateSummary{
			TemplateID:   row.TemplateID,
			TemplateName: name,
			Count:        row.Count,
		})
	}
	return summary, nil
}

// ExportXLSX renders the summary as a three-sheet workbook:
// Overview, By Form, By Month.
func (s *ReportService) ExportXLSX(orgID uint) ([]byte, error) {
	summary, err := s.Summary(orgID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const overview = "Overview"
	f.SetSheetName("Sheet1", overview)
	f.SetCellValue(overview, "A1", "Metric")
	f.SetCellValue(overview, "B1", "Value")
	f.SetCellValue(overview, "A2", "Total submissions")
	f.SetCellValue(overview, "B2", summary.TotalSubmissions)
	row := 3
	for _, sc := range summary.ByStatus {
		f.SetCellValue(overview, fmt.Sprintf("A%d", row), string(sc.Status))
		f.SetCellValue(overview, fmt.Sprintf("B%d", row), sc.Count)
		row++
	}

	const byForm = "By Form"
	if _, err := f.NewSheet(byForm); err != nil {
		return nil, err
	}
	f.SetCellValue(byForm, "A1", "Form")
	f.SetCellValue(byForm, "B1", "Submissions")
	for i, ts := range summary.ByTemplate {
		f.SetCellValue(byForm, fmt.Sprintf("A%d", i+2), ts.TemplateName)
		f.SetCellValue(byForm, fmt.Sprintf("B%d", i+2), ts.Count)
	}

	const byMonth = "By Month"
	if _, err := f.NewSheet(byMonth); err != nil {
		return nil, err
	}
	f.SetCellValue(byMonth, "A1", "Month")
	f.SetCellValue(byMonth, "B1", "Submissions")
	for i, mc := range summary.ByMonth {
		f.SetCellValue(byMonth, fmt.Sprintf("A%d", i+2), mc.Month)
		f.SetCellValue(byMonth, fmt.Sprintf("B%d", i+2), mc.Count)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
