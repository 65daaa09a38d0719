package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/kubev2v/p4wq/internal/models"
	"github.com/kubev2v/p4wq/internal/util"
)

const (
	sheetSummary = "Summary"
	sheetLatency = "Latency"
	sheetEvents  = "Events"

	// MaxEventRows caps the Events sheet; the full trace lives in the store.
	MaxEventRows = 100_000
)

// Write saves run as an XLSX workbook at path with a summary sheet, per
// priority latencies and the event trace.
func Write(path string, run models.BenchRun) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return err
	}
	if err := writeSummary(f, run.Result); err != nil {
		return fmt.Errorf("summary sheet: %w", err)
	}
	if err := writeLatency(f, run.Result.Latency); err != nil {
		return fmt.Errorf("latency sheet: %w", err)
	}
	if err := writeEvents(f, run.Events); err != nil {
		return fmt.Errorf("events sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report %s: %w", path, err)
	}
	return nil
}

func writeSummary(f *excelize.File, r models.BenchResult) error {
	rows := [][]any{
		{"Run", r.RunID},
		{"Pool", r.Pool},
		{"Workers", r.Workers},
		{"Items", r.Items},
		{"Submitted", r.Submitted},
		{"Resubmitted", r.Resubmitted},
		{"Dispatched", r.Dispatched},
		{"Completed", r.Completed},
		{"Cancelled", r.Cancelled},
		{"Preempted", r.Preempted},
		{"Exhausted", r.Exhausted},
		{"Inversions", r.Inversions},
		{"Duration (ms)", r.Duration.Milliseconds()},
		{"Throughput (items/s)", util.Round(r.Throughput())},
	}
	if err := writeRows(f, sheetSummary, rows); err != nil {
		return err
	}
	return f.SetColWidth(sheetSummary, "A", "A", 22)
}

func writeLatency(f *excelize.File, latency []models.PriorityLatency) error {
	if _, err := f.NewSheet(sheetLatency); err != nil {
		return err
	}
	rows := [][]any{{"Priority", "Dispatched", "Mean (us)", "Max (us)"}}
	for _, l := range latency {
		rows = append(rows, []any{l.Priority, l.Dispatched, l.Mean.Microseconds(), l.Max.Microseconds()})
	}
	if err := writeRows(f, sheetLatency, rows); err != nil {
		return err
	}
	return boldHeader(f, sheetLatency, "D1")
}

func writeEvents(f *excelize.File, events []models.TraceEvent) error {
	if _, err := f.NewSheet(sheetEvents); err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(sheetEvents)
	if err != nil {
		return err
	}
	header := []any{"Seq", "Kind", "Item", "Item Seq", "Worker", "Priority", "Deadline", "At"}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}
	for i, e := range events {
		if i >= MaxEventRows {
			break
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{e.Seq, e.Kind, e.Item, e.ItemSeq, e.Worker, e.Priority, e.Deadline, e.At}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}
	return sw.Flush()
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func boldHeader(f *excelize.File, sheet, lastCell string) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", lastCell, style)
}
