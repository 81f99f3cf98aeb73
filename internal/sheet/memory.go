package sheet

import (
	"context"
	"fmt"
	"sync"
)

// Memory is an in-process Worksheet. Failures can be injected per call to
// exercise retry paths.
type Memory struct {
	mu   sync.Mutex
	rows [][]string

	failures []error
	calls    int
	writes   int
}

// NewMemory returns a worksheet holding a copy of rows.
func NewMemory(rows ...[]string) *Memory {
	m := &Memory{}
	for _, row := range rows {
		m.rows = append(m.rows, copyRow(row))
	}
	return m
}

// FailNext queues errors returned by the next calls, one per call.
func (m *Memory) FailNext(errs ...error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = append(m.failures, errs...)
}

// Calls reports how many operations were attempted, failed ones included.
func (m *Memory) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Writes reports how many UpdateRow/AppendRow calls succeeded.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Rows returns a snapshot of the stored rows.
func (m *Memory) Rows() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyRows(m.rows)
}

func (m *Memory) Values(ctx context.Context) ([][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(ctx); err != nil {
		return nil, err
	}
	return copyRows(m.rows), nil
}

func (m *Memory) UpdateRow(ctx context.Context, rowNumber int, cells []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(ctx); err != nil {
		return err
	}
	if rowNumber < 1 {
		return fmt.Errorf("row number %d out of range", rowNumber)
	}
	for len(m.rows) < rowNumber {
		m.rows = append(m.rows, nil)
	}
	m.rows[rowNumber-1] = copyRow(cells)
	m.writes++
	return nil
}

func (m *Memory) AppendRow(ctx context.Context, cells []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(ctx); err != nil {
		return err
	}
	m.rows = append(m.rows, copyRow(cells))
	m.writes++
	return nil
}

// begin must be called with mu held.
func (m *Memory) begin(ctx context.Context) error {
	m.calls++
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(m.failures) > 0 {
		err := m.failures[0]
		m.failures = m.failures[1:]
		return err
	}
	return nil
}

func copyRow(row []string) []string {
	if row == nil {
		return nil
	}
	out := make([]string, len(row))
	copy(out, row)
	return out
}

func copyRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = copyRow(row)
	}
	return out
}
