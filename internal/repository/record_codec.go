package repository

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/blaisecz/care-log/internal/domain"
)

const (
	colDate          = "date"
	colSleepStart    = "sleep_start"
	colSleepEnd      = "sleep_end"
	colSleepDuration = "sleep_duration_hours"
	colWhatHappened  = "what_happened"
	colHowItFelt     = "how_it_felt"
	colWhatWasDone   = "what_was_done"
)

// ExpectedHeader lists the journal columns in the order they are written to a
// fresh worksheet. Existing worksheets may order them differently.
func ExpectedHeader() []string {
	header := []string{colDate}
	for _, dim := range domain.WorkloadDimensions() {
		header = append(header, string(dim))
	}
	for _, symptom := range domain.Symptoms() {
		header = append(header, string(symptom))
	}
	return append(header,
		colSleepStart, colSleepEnd, colSleepDuration,
		colWhatHappened, colHowItFelt, colWhatWasDone,
	)
}

// layout maps column name to its position in the worksheet header.
type layout struct {
	index map[string]int
	width int
}

// layoutFor checks that header holds exactly the expected column set.
func layoutFor(header []string) (*layout, error) {
	trimmed := make([]string, len(header))
	for i, h := range header {
		trimmed[i] = strings.TrimSpace(h)
	}
	for len(trimmed) > 0 && trimmed[len(trimmed)-1] == "" {
		trimmed = trimmed[:len(trimmed)-1]
	}

	l := &layout{index: make(map[string]int, len(trimmed)), width: len(trimmed)}
	for i, name := range trimmed {
		if _, dup := l.index[name]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", domain.ErrSchemaMismatch, name)
		}
		l.index[name] = i
	}

	var missing []string
	expected := make(map[string]bool)
	for _, name := range ExpectedHeader() {
		expected[name] = true
		if _, ok := l.index[name]; !ok {
			missing = append(missing, name)
		}
	}
	var extra []string
	for _, name := range trimmed {
		if !expected[name] {
			extra = append(extra, name)
		}
	}
	if len(missing) > 0 || len(extra) > 0 {
		return nil, fmt.Errorf("%w: missing %v, unexpected %v", domain.ErrSchemaMismatch, missing, extra)
	}
	return l, nil
}

func (l *layout) cell(row []string, name string) string {
	i := l.index[name]
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// rawCell returns a free-text cell exactly as stored.
func (l *layout) rawCell(row []string, name string) string {
	i := l.index[name]
	if i >= len(row) {
		return ""
	}
	return row[i]
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// encode serializes a record positionally per the header.
func (l *layout) encode(r *domain.DailyRecord) []string {
	cells := make([]string, l.width)
	set := func(name, value string) {
		cells[l.index[name]] = value
	}

	set(colDate, r.DateKey())
	if r.SleepStart != nil {
		set(colSleepStart, r.SleepStart.String())
	}
	if r.SleepEnd != nil {
		set(colSleepEnd, r.SleepEnd.String())
	}
	if r.SleepDurationHours != nil {
		set(colSleepDuration, strconv.FormatFloat(*r.SleepDurationHours, 'f', -1, 64))
	}
	for dim, score := range r.WorkloadScores {
		set(string(dim), strconv.Itoa(score))
	}
	for symptom, severity := range r.SymptomScores {
		set(string(symptom), strconv.Itoa(severity))
	}
	set(colWhatHappened, r.WhatHappened)
	set(colHowItFelt, r.HowItFelt)
	set(colWhatWasDone, r.WhatWasDone)
	return cells
}

// decode parses one data row. rowNumber is 1-based and only used in errors.
func (l *layout) decode(row []string, rowNumber int) (*domain.DailyRecord, error) {
	malformed := func(col string, err error) error {
		return fmt.Errorf("%w: row %d column %q: %v", domain.ErrMalformedRow, rowNumber, col, err)
	}

	date, err := domain.ParseDate(l.cell(row, colDate))
	if err != nil {
		return nil, malformed(colDate, err)
	}
	rec := &domain.DailyRecord{
		Date:           date,
		WorkloadScores: make(map[domain.WorkloadDimension]int),
		SymptomScores:  make(map[domain.Symptom]int),
		WhatHappened:   l.rawCell(row, colWhatHappened),
		HowItFelt:      l.rawCell(row, colHowItFelt),
		WhatWasDone:    l.rawCell(row, colWhatWasDone),
	}

	for _, col := range []string{colSleepStart, colSleepEnd} {
		raw := l.cell(row, col)
		if raw == "" {
			continue
		}
		t, err := domain.ParseTimeOfDay(raw)
		if err != nil {
			return nil, malformed(col, err)
		}
		if col == colSleepStart {
			rec.SleepStart = &t
		} else {
			rec.SleepEnd = &t
		}
	}
	if raw := l.cell(row, colSleepDuration); raw != "" {
		hours, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, malformed(colSleepDuration, err)
		}
		rec.SleepDurationHours = &hours
	}

	for _, dim := range domain.WorkloadDimensions() {
		raw := l.cell(row, string(dim))
		if raw == "" {
			continue
		}
		score, err := strconv.Atoi(raw)
		if err != nil {
			return nil, malformed(string(dim), err)
		}
		rec.WorkloadScores[dim] = score
	}
	for _, symptom := range domain.Symptoms() {
		raw := l.cell(row, string(symptom))
		if raw == "" {
			continue
		}
		severity, err := strconv.Atoi(raw)
		if err != nil {
			return nil, malformed(string(symptom), err)
		}
		rec.SymptomScores[symptom] = severity
	}

	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("%w: row %d: %v", domain.ErrMalformedRow, rowNumber, err)
	}
	return rec, nil
}
