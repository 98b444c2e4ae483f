package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"benchfuse/domain/verdict"
	"benchfuse/internal/errors"
	"benchfuse/internal/logging"
)

// ReportWriter exports a fused validation verdict to an Excel workbook for
// offline review. One workbook per verdict: a summary sheet, one row per
// benchmark, and the prioritized recommendation list.
type ReportWriter struct {
	log *logging.Logger
}

// NewReportWriter creates a new workbook writer
func NewReportWriter() *ReportWriter {
	return &ReportWriter{log: logging.NewDefaultLogger("ReportWriter")}
}

// Write renders the verdict into an xlsx file at path.
func (w *ReportWriter) Write(v *verdict.AggregatedValidation, path string) error {
	if v == nil {
		return errors.InvalidInput("verdict is nil")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := w.writeSummary(f, v); err != nil {
		return err
	}
	if err := w.writeBenchmarks(f, v); err != nil {
		return err
	}
	if err := w.writeRecommendations(f, v); err != nil {
		return err
	}

	// Drop the default sheet excelize creates.
	f.DeleteSheet("Sheet1")
	if idx, err := f.GetSheetIndex("Summary"); err == nil {
		f.SetActiveSheet(idx)
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Wrapf(err, "saving workbook to %s", path)
	}
	w.log.Info("wrote validation report to %s", path)
	return nil
}

func (w *ReportWriter) writeSummary(f *excelize.File, v *verdict.AggregatedValidation) error {
	if _, err := f.NewSheet("Summary"); err != nil {
		return errors.Wrap(err, "creating Summary sheet")
	}
	state := "FAILED"
	if v.OverallPassed {
		state = "PASSED"
	}
	rows := [][]interface{}{
		{"Validation ID", v.ValidationID.String()},
		{"Overall Score", fmt.Sprintf("%.2f / 10", v.OverallScore)},
		{"Result", state},
		{"Agreement", string(v.AgreementLevel)},
		{"Benchmarks Included", len(v.Benchmarks)},
		{"Discrepancies", len(v.Discrepancies)},
		{"Created At", v.CreatedAt.String()},
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow("Summary", cell, &row); err != nil {
			return errors.Wrap(err, "writing Summary sheet")
		}
	}
	return nil
}

func (w *ReportWriter) writeBenchmarks(f *excelize.File, v *verdict.AggregatedValidation) error {
	if _, err := f.NewSheet("Benchmarks"); err != nil {
		return errors.Wrap(err, "creating Benchmarks sheet")
	}
	header := []interface{}{"Benchmark", "Score", "Max", "Passed", "Confidence", "Effective Weight", "Checks Run", "Version"}
	if err := f.SetSheetRow("Benchmarks", "A1", &header); err != nil {
		return errors.Wrap(err, "writing Benchmarks header")
	}

	weights := make(map[string]float64, len(v.ConfidenceBreakdown))
	for _, cb := range v.ConfidenceBreakdown {
		weights[string(cb.Kind)] = cb.EffectiveWeight
	}

	for i, bm := range v.Benchmarks {
		row := []interface{}{
			string(bm.Kind),
			bm.Score,
			bm.MaxScore,
			bm.Passed,
			bm.Confidence,
			weights[string(bm.Kind)],
			bm.Metadata.ChecksRun,
			bm.Metadata.Version,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow("Benchmarks", cell, &row); err != nil {
			return errors.Wrap(err, "writing Benchmarks sheet")
		}
	}
	return nil
}

func (w *ReportWriter) writeRecommendations(f *excelize.File, v *verdict.AggregatedValidation) error {
	if _, err := f.NewSheet("Recommendations"); err != nil {
		return errors.Wrap(err, "creating Recommendations sheet")
	}
	header := []interface{}{"Priority", "Source", "Summary", "Action"}
	if err := f.SetSheetRow("Recommendations", "A1", &header); err != nil {
		return errors.Wrap(err, "writing Recommendations header")
	}
	for i, rec := range v.Recommendations {
		row := []interface{}{
			string(rec.Priority),
			string(rec.Source),
			rec.Summary,
			rec.Action,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow("Recommendations", cell, &row); err != nil {
			return errors.Wrap(err, "writing Recommendations sheet")
		}
	}
	return nil
}
