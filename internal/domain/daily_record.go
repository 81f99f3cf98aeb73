package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used as the record key.
const DateLayout = "2006-01-02"

// DateOf truncates t to its calendar date at midnight UTC.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidInput, s)
	}
	return DateOf(d), nil
}

// DailyRecord is one calendar day of self-care journal data. Date is the
// unique key.
type DailyRecord struct {
	Date       time.Time
	SleepStart *TimeOfDay
	SleepEnd   *TimeOfDay
	// SleepDurationHours is derived from SleepStart/SleepEnd; nil means unavailable.
	SleepDurationHours *float64
	WorkloadScores     map[WorkloadDimension]int
	SymptomScores      map[Symptom]int
	WhatHappened       string
	HowItFelt          string
	WhatWasDone        string
}

// DateKey returns the record's key in DateLayout.
func (r *DailyRecord) DateKey() string {
	return r.Date.Format(DateLayout)
}

// RecomputeSleepDuration derives SleepDurationHours from the sleep times.
func (r *DailyRecord) RecomputeSleepDuration() {
	if hours, ok := SleepDuration(r.SleepStart, r.SleepEnd); ok {
		r.SleepDurationHours = &hours
		return
	}
	r.SleepDurationHours = nil
}

// WorkloadTotal sums the recorded workload scores.
func (r *DailyRecord) WorkloadTotal() int {
	total := 0
	for _, score := range r.WorkloadScores {
		total += score
	}
	return total
}

// Validate checks the record invariants: a date, known keys and bounded scores.
func (r *DailyRecord) Validate() error {
	if r.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	for symptom, severity := range r.SymptomScores {
		if !IsKnownSymptom(symptom) {
			return fmt.Errorf("%w: unknown symptom %q", ErrInvalidInput, symptom)
		}
		if severity < MinSeverity || severity > MaxSeverity {
			return fmt.Errorf("%w: severity %d for %q outside %d-%d", ErrInvalidInput, severity, symptom, MinSeverity, MaxSeverity)
		}
	}
	for dim, score := range r.WorkloadScores {
		if !IsKnownWorkloadDimension(dim) {
			return fmt.Errorf("%w: unknown workload dimension %q", ErrInvalidInput, dim)
		}
		if score < MinWorkloadScore || score > MaxWorkloadScore {
			return fmt.Errorf("%w: score %d for %q outside %d-%d", ErrInvalidInput, score, dim, MinWorkloadScore, MaxWorkloadScore)
		}
	}
	return nil
}

// SaveDailyRecordRequest is the request body for saving a day's journal entry.
// @Description Request payload for saving one day of self-care data.
type SaveDailyRecordRequest struct {
	// Calendar date (YYYY-MM-DD); defaults to today
	Date string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02" example:"2025-04-01"`
	// Time the user fell asleep (HH:MM)
	SleepStart string `json:"sleep_start,omitempty" validate:"omitempty,hhmm" example:"23:45"`
	// Time the user woke up (HH:MM); at or before sleep_start means the next day
	SleepEnd string `json:"sleep_end,omitempty" validate:"omitempty,hhmm" example:"06:45"`
	// NASA-TLX workload scores, 0-10 per dimension
	WorkloadScores map[WorkloadDimension]int `json:"workload_scores" validate:"dive,keys,workload_dimension,endkeys,min=0,max=10"`
	// Symptom severities, 1-5 per symptom
	SymptomScores map[Symptom]int `json:"symptom_scores" validate:"dive,keys,symptom,endkeys,min=1,max=5"`
	// What happened today
	WhatHappened string `json:"what_happened,omitempty" validate:"max=4000"`
	// How it felt
	HowItFelt string `json:"how_it_felt,omitempty" validate:"max=4000"`
	// What was done about it
	WhatWasDone string `json:"what_was_done,omitempty" validate:"max=4000"`
}

// AdviceRequest asks for recommendations without saving anything.
// @Description Request payload for an advice preview.
type AdviceRequest struct {
	WorkloadScores map[WorkloadDimension]int `json:"workload_scores" validate:"dive,keys,workload_dimension,endkeys,min=0,max=10"`
	SymptomScores  map[Symptom]int           `json:"symptom_scores" validate:"dive,keys,symptom,endkeys,min=1,max=5"`
}

// AdviceResponse carries the recommendations shown to the user.
// @Description Self-care recommendations.
type AdviceResponse struct {
	Advice         []string `json:"advice" example:"[\"get a massage\"]"`
	CatalogVersion string   `json:"catalog_version" example:"2025.1"`
}

// DailyRecordResponse is the JSON shape of a stored record.
// @Description One day of self-care journal data.
type DailyRecordResponse struct {
	Date       string `json:"date" example:"2025-04-01"`
	SleepStart string `json:"sleep_start,omitempty" example:"23:45"`
	SleepEnd   string `json:"sleep_end,omitempty" example:"06:45"`
	// Null when either sleep time is missing
	SleepDurationHours *float64                  `json:"sleep_duration_hours" example:"7"`
	WorkloadScores     map[WorkloadDimension]int `json:"workload_scores"`
	SymptomScores      map[Symptom]int           `json:"symptom_scores"`
	WhatHappened       string                    `json:"what_happened"`
	HowItFelt          string                    `json:"how_it_felt"`
	WhatWasDone        string                    `json:"what_was_done"`
}

func (r *DailyRecord) ToResponse() DailyRecordResponse {
	resp := DailyRecordResponse{
		Date:               r.DateKey(),
		SleepDurationHours: r.SleepDurationHours,
		WorkloadScores:     r.WorkloadScores,
		SymptomScores:      r.SymptomScores,
		WhatHappened:       r.WhatHappened,
		HowItFelt:          r.HowItFelt,
		WhatWasDone:        r.WhatWasDone,
	}
	if r.SleepStart != nil {
		resp.SleepStart = r.SleepStart.String()
	}
	if r.SleepEnd != nil {
		resp.SleepEnd = r.SleepEnd.String()
	}
	if resp.WorkloadScores == nil {
		resp.WorkloadScores = map[WorkloadDimension]int{}
	}
	if resp.SymptomScores == nil {
		resp.SymptomScores = map[Symptom]int{}
	}
	return resp
}

// SaveDailyRecordResponse is returned after a successful save.
// @Description Saved record plus the advice shown for it.
type SaveDailyRecordResponse struct {
	Record DailyRecordResponse `json:"record"`
	Advice []string            `json:"advice" example:"[\"get a massage\",\"take a short walk\"]"`
}

// DailyRecordListResponse is a page of history.
// @Description Paginated journal history, newest first.
type DailyRecordListResponse struct {
	Data       []DailyRecordResponse `json:"data"`
	Pagination PaginationResponse    `json:"pagination"`
}

// PaginationResponse contains pagination metadata.
// @Description Cursor-based pagination info.
type PaginationResponse struct {
	// Cursor for fetching the next page (empty if no more pages)
	NextCursor string `json:"next_cursor,omitempty" example:"eyJkYXRlIjoiMjAyNS0wNC0wMSJ9"`
	// True if more results are available
	HasMore bool `json:"has_more" example:"true"`
}

// DailyRecordFilter contains filter parameters for listing history
type DailyRecordFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Cursor string
}
