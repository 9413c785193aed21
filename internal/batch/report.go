// Package batch accumulates per-item outcomes of a batch run and renders
// text and JSON reports with success / failed / partial partitions.
package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/baditaflorin/go_music_similarity/internal/ports"
	"github.com/google/uuid"
)

// Status classifies the overall outcome of a batch.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
	StatusPartial Status = "partial"
)

// Item is one processed element with its attributes.
type Item map[string]interface{}

// Result represents the finalized outcome of a batch run.
type Result struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	Status        Status                 `json:"status"`
	StartTime     time.Time              `json:"start_time"`
	EndTime       time.Time              `json:"end_time"`
	Duration      time.Duration          `json:"duration"`
	SuccessCount  int                    `json:"success_count"`
	FailedCount   int                    `json:"failed_count"`
	PartialCount  int                    `json:"partial_count"`
	TotalCount    int                    `json:"total_count"`
	SuccessItems  []Item                 `json:"success_items,omitempty"`
	FailedItems   []Item                 `json:"failed_items,omitempty"`
	PartialItems  []Item                 `json:"partial_items,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
	ErrorMessages []string               `json:"error_messages,omitempty"`
}

// Recorder accumulates outcomes while a batch is running.
type Recorder struct {
	name      string
	startTime time.Time
	metadata  map[string]interface{}

	successItems  []Item
	failedItems   []Item
	partialItems  []Item
	errorMessages []string
}

// NewRecorder starts recording a batch with the given name and metadata.
func NewRecorder(name string, metadata map[string]interface{}) *Recorder {
	return &Recorder{
		name:      name,
		startTime: time.Now(),
		metadata:  metadata,
	}
}

// AddSuccess records a successfully processed item.
func (r *Recorder) AddSuccess(item Item) {
	r.successItems = append(r.successItems, item)
}

// AddFailed records a failed item with its error message.
func (r *Recorder) AddFailed(item Item, errMsg string) {
	r.failedItems = append(r.failedItems, item)
	if errMsg != "" {
		r.errorMessages = append(r.errorMessages, errMsg)
	}
}

// AddPartial records a partially processed item with the reason.
func (r *Recorder) AddPartial(item Item, reason string) {
	if reason != "" {
		item["partial_reason"] = reason
	}
	r.partialItems = append(r.partialItems, item)
}

// Finalize closes the batch and derives the overall status: failed items
// alone mean failed, failed plus successful items mean partial, otherwise
// success.
func (r *Recorder) Finalize() Result {
	end := time.Now()

	status := StatusSuccess
	if len(r.failedItems) > 0 {
		if len(r.successItems) > 0 {
			status = StatusPartial
		} else {
			status = StatusFailed
		}
	}

	return Result{
		ID:            uuid.NewString(),
		Name:          r.name,
		Status:        status,
		StartTime:     r.startTime,
		EndTime:       end,
		Duration:      end.Sub(r.startTime),
		SuccessCount:  len(r.successItems),
		FailedCount:   len(r.failedItems),
		PartialCount:  len(r.partialItems),
		TotalCount:    len(r.successItems) + len(r.failedItems) + len(r.partialItems),
		SuccessItems:  r.successItems,
		FailedItems:   r.failedItems,
		PartialItems:  r.partialItems,
		Metadata:      r.metadata,
		ErrorMessages: r.errorMessages,
	}
}

// Summary renders a human-readable text report.
func (res Result) Summary(includeDetails bool) string {
	var sb strings.Builder
	line := strings.Repeat("=", 60)
	fmt.Fprintf(&sb, "%s\nBATCH REPORT: %s\n%s\n", line, res.Name, line)
	fmt.Fprintf(&sb, "Status:   %s\n", res.Status)
	fmt.Fprintf(&sb, "Started:  %s\n", res.StartTime.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "Ended:    %s\n", res.EndTime.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "Duration: %s\n", res.Duration.Round(time.Second))
	fmt.Fprintf(&sb, "Total:    %d (success %d, failed %d, partial %d)\n",
		res.TotalCount, res.SuccessCount, res.FailedCount, res.PartialCount)

	if len(res.Metadata) > 0 {
		sb.WriteString("Metadata:\n")
		for k, v := range res.Metadata {
			fmt.Fprintf(&sb, "  %s: %v\n", k, v)
		}
	}
	if includeDetails && len(res.ErrorMessages) > 0 {
		sb.WriteString("Errors:\n")
		for _, msg := range res.ErrorMessages {
			fmt.Fprintf(&sb, "  - %s\n", msg)
		}
	}
	sb.WriteString(line + "\n")
	return sb.String()
}

// Writer persists batch results under an output directory.
type Writer struct {
	outputDir string
	logger    ports.Logger
}

// NewWriter creates a writer rooted at outputDir, creating it on demand.
func NewWriter(outputDir string, logger ports.Logger) (*Writer, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", outputDir, err)
	}
	return &Writer{outputDir: outputDir, logger: logger}, nil
}

// WriteJSON saves the result as an indented JSON file and returns the path.
func (w *Writer) WriteJSON(res Result) (string, error) {
	path := filepath.Join(w.outputDir, w.filename(res, "json"))
	data, err := json.MarshalIndent(res, "", "    ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	w.logger.Info("Batch JSON report saved", "path", path)
	return path, nil
}

// WriteText saves the text summary and returns the path.
func (w *Writer) WriteText(res Result, includeDetails bool) (string, error) {
	path := filepath.Join(w.outputDir, w.filename(res, "txt"))
	if err := os.WriteFile(path, []byte(res.Summary(includeDetails)), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	w.logger.Info("Batch text report saved", "path", path)
	return path, nil
}

func (w *Writer) filename(res Result, ext string) string {
	return fmt.Sprintf("%s_%s.%s", res.Name, res.StartTime.Format("20060102_150405"), ext)
}
