package report

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/tropy-archive/internal/archive"
	"github.com/lehigh-university-libraries/tropy-archive/internal/models"
	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"
)

// resultRow is the flat form of one result used by the JSONL and Parquet
// reports. Every row repeats the run fields.
type resultRow struct {
	RunID      string   `json:"run_id" parquet:"run_id"`
	Collection string   `json:"collection" parquet:"collection"`
	Endpoint   string   `json:"endpoint" parquet:"endpoint"`
	Source     string   `json:"source,omitempty" parquet:"source"`
	CreatedAt  string   `json:"created_at" parquet:"created_at"`
	Identifier string   `json:"identifier" parquet:"identifier"`
	URL        string   `json:"url" parquet:"url"`
	Files      []string `json:"files" parquet:"files,list"`
	Error      string   `json:"error,omitempty" parquet:"error"`
}

// Save writes a run report. The format follows the file extension:
// .yaml/.yml, .jsonl/.json or .parquet.
func Save(path string, run *models.ExportRun) error {
	ext := strings.ToLower(filepath.Ext(path))

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	switch ext {
	case ".yaml", ".yml":
		return saveYAML(path, run)
	case ".jsonl", ".json":
		return saveJSONL(path, run)
	case ".parquet":
		return saveParquet(path, run)
	default:
		return fmt.Errorf("unsupported report format: %s (supported: .yaml, .jsonl, .parquet)", ext)
	}
}

// Load reads a report written by Save.
func Load(path string) (*models.ExportRun, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".yaml", ".yml":
		return loadYAML(path)
	case ".jsonl", ".json":
		rows, err := loadJSONL(path)
		if err != nil {
			return nil, err
		}
		return fromRows(rows)
	case ".parquet":
		rows, err := loadParquet(path)
		if err != nil {
			return nil, err
		}
		return fromRows(rows)
	default:
		return nil, fmt.Errorf("unsupported report format: %s (supported: .yaml, .jsonl, .parquet)", ext)
	}
}

func saveYAML(path string, run *models.ExportRun) error {
	data, err := yaml.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write YAML file: %w", err)
	}
	return nil
}

func loadYAML(path string) (*models.ExportRun, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report file: %w", err)
	}
	var run models.ExportRun
	if err := yaml.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("failed to parse YAML report: %w", err)
	}
	normalize(&run)
	return &run, nil
}

func saveJSONL(path string, run *models.ExportRun) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	enc := json.NewEncoder(w)
	for _, row := range toRows(run) {
		if err := enc.Encode(row); err != nil {
			return fmt.Errorf("failed to encode report row: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return file.Close()
}

func loadJSONL(path string) ([]resultRow, error) {
	slog.Debug("Opening JSONL report", "path", path)

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open report file: %w", err)
	}
	defer file.Close()

	var rows []resultRow
	scanner := bufio.NewScanner(file)

	const maxCapacity = 1024 * 1024
	scanner.Buffer(make([]byte, 0, 64*1024), maxCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var row resultRow
		if err := json.Unmarshal(line, &row); err != nil {
			return nil, fmt.Errorf("failed to parse JSON at line %d: %w", lineNum, err)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading report: %w", err)
	}

	slog.Debug("Finished reading JSONL report", "rows", len(rows))
	return rows, nil
}

func saveParquet(path string, run *models.ExportRun) error {
	if err := parquet.WriteFile(path, toRows(run)); err != nil {
		return fmt.Errorf("failed to write parquet report: %w", err)
	}
	return nil
}

func loadParquet(path string) ([]resultRow, error) {
	slog.Debug("Opening Parquet report", "path", path)

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}
	slog.Debug("Parquet report opened", "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	reader := parquet.NewGenericReader[resultRow](pf)
	defer reader.Close()

	var rows []resultRow
	batch := make([]resultRow, 64)
	for {
		n, err := reader.Read(batch)
		for _, row := range batch[:n] {
			row.Files = append([]string{}, row.Files...)
			rows = append(rows, row)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}

	return rows, nil
}

func toRows(run *models.ExportRun) []resultRow {
	createdAt := run.CreatedAt.UTC().Format(time.RFC3339Nano)
	rows := make([]resultRow, 0, len(run.Results))
	for _, r := range run.Results {
		rows = append(rows, resultRow{
			RunID:      run.ID,
			Collection: run.Collection,
			Endpoint:   run.Endpoint,
			Source:     run.Source,
			CreatedAt:  createdAt,
			Identifier: r.Identifier,
			URL:        r.URL,
			Files:      r.Files,
			Error:      r.Error,
		})
	}
	return rows
}

// fromRows rebuilds a run. A report without rows yields an empty run since
// the run fields only live on the rows.
func fromRows(rows []resultRow) (*models.ExportRun, error) {
	run := &models.ExportRun{Results: []archive.UploadResult{}}
	if len(rows) == 0 {
		return run, nil
	}

	first := rows[0]
	run.ID = first.RunID
	run.Collection = first.Collection
	run.Endpoint = first.Endpoint
	run.Source = first.Source
	if first.CreatedAt != "" {
		createdAt, err := time.Parse(time.RFC3339Nano, first.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse run timestamp: %w", err)
		}
		run.CreatedAt = createdAt
	}

	for _, row := range rows {
		run.Results = append(run.Results, archive.UploadResult{
			Identifier: row.Identifier,
			URL:        row.URL,
			Files:      row.Files,
			Error:      row.Error,
		})
	}
	normalize(run)
	return run, nil
}

func normalize(run *models.ExportRun) {
	if run.Results == nil {
		run.Results = []archive.UploadResult{}
	}
	for i := range run.Results {
		if run.Results[i].Files == nil {
			run.Results[i].Files = []string{}
		}
	}
}

// PrintResults writes one line per exported item.
func PrintResults(w io.Writer, results []archive.UploadResult) {
	for _, r := range results {
		if r.Error != "" {
			fmt.Fprintf(w, "  %s  %d file(s)  %s  (%s)\n", r.Identifier, len(r.Files), r.URL, r.Error)
			continue
		}
		fmt.Fprintf(w, "  %s  %d file(s)  %s\n", r.Identifier, len(r.Files), r.URL)
	}
}

// PrintSummary writes the run header, its results and the totals.
func PrintSummary(w io.Writer, run *models.ExportRun) {
	fmt.Fprintf(w, "Run %s\n", run.ID)
	fmt.Fprintf(w, "  Collection: %s\n", run.Collection)
	fmt.Fprintf(w, "  Endpoint:   %s\n", run.Endpoint)
	if run.Source != "" {
		fmt.Fprintf(w, "  Source:     %s\n", run.Source)
	}
	if !run.CreatedAt.IsZero() {
		fmt.Fprintf(w, "  Created:    %s\n", run.CreatedAt.Format(time.RFC3339))
	}
	fmt.Fprintln(w)

	PrintResults(w, run.Results)

	s := run.Summarize()
	fmt.Fprintf(w, "\nItems: %d  Files: %d  Items with errors: %d\n", s.Items, s.Files, s.ItemsFailed)
}
