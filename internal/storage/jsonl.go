package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"strikebench/internal/model"
)

// JsonlStorage appends one run line followed by one line per step.
type JsonlStorage struct {
	path string
	mu   sync.Mutex
}

type jsonlRecord struct {
	Type string            `json:"type"`
	Run  *model.Run        `json:"run,omitempty"`
	Step *model.StepResult `json:"step,omitempty"`
}

func NewJsonlStorage(path string) *JsonlStorage {
	return &JsonlStorage{path: path}
}

// PutRun appends the run and its steps as JSON lines.
func (s *JsonlStorage) PutRun(ctx context.Context, run model.Run, steps []model.StepResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	records := make([]jsonlRecord, 0, len(steps)+1)
	records = append(records, jsonlRecord{Type: "run", Run: &run})
	for i := range steps {
		records = append(records, jsonlRecord{Type: "step", Step: &steps[i]})
	}

	for _, record := range records {
		line, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshal %s record: %w", record.Type, err)
		}
		if _, err := writer.Write(line); err != nil {
			return fmt.Errorf("write %s record: %w", record.Type, err)
		}
		if err := writer.WriteByte('\n'); err != nil {
			return fmt.Errorf("write newline: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	return nil
}
