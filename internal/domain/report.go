package domain

import "time"

// ChronotypeType represents the sleep chronotype classification.
// @Description Chronotype classification based on mid-sleep time.
type ChronotypeType string

const (
	ChronotypeEarlyBird    ChronotypeType = "early_bird"
	ChronotypeIntermediate ChronotypeType = "intermediate"
	ChronotypeNightOwl     ChronotypeType = "night_owl"
	ChronotypeUnknown      ChronotypeType = "unknown"
)

// ChronotypeResult contains the computed chronotype and supporting data.
// @Description Chronotype analysis result.
type ChronotypeResult struct {
	// Chronotype classification
	Chronotype ChronotypeType `json:"chronotype" example:"intermediate"`
	// Median mid-sleep time (HH:MM)
	MidSleepTime string `json:"mid_sleep_time,omitempty" example:"03:45"`
	// Minutes after midnight for mid-sleep
	MidSleepMinutesAfterMidnight int `json:"mid_sleep_minutes_after_midnight" example:"225"`
	// Number of nights used in calculation
	NightsUsed int `json:"nights_used" example:"28"`
}

// DescriptiveStats holds basic statistical measures.
// @Description Basic statistical measures for a metric.
type DescriptiveStats struct {
	Count int     `json:"count" example:"28"`
	Avg   float64 `json:"avg" example:"7.2"`
	Std   float64 `json:"std" example:"0.8"`
	Min   float64 `json:"min" example:"5.5"`
	Max   float64 `json:"max" example:"9.0"`
}

// SleepPoint is one night on the sleep trend line.
type SleepPoint struct {
	Date  string  `json:"date" example:"2025-04-01"`
	Hours float64 `json:"hours" example:"7.25"`
}

// WorkloadPoint is one day on the workload trend lines.
type WorkloadPoint struct {
	Date   string                    `json:"date" example:"2025-04-01"`
	Scores map[WorkloadDimension]int `json:"scores"`
	Total  int                       `json:"total" example:"31"`
}

// CorrelationPoint pairs a night's sleep with that day's workload total.
type CorrelationPoint struct {
	Date          string  `json:"date" example:"2025-04-01"`
	SleepHours    float64 `json:"sleep_hours" example:"6.5"`
	WorkloadTotal int     `json:"workload_total" example:"34"`
}

// WorkloadSleepCorrelation is the scatter of sleep hours against workload total.
// @Description Sleep hours versus NASA-TLX total.
type WorkloadSleepCorrelation struct {
	Points []CorrelationPoint `json:"points"`
	// Pearson coefficient; nil with fewer than two points or zero variance
	Pearson *float64 `json:"pearson" example:"-0.42"`
}

// CategoryCount is how often a fatigue category appeared in recorded symptoms.
type CategoryCount struct {
	Category string `json:"category" example:"physical fatigue"`
	Count    int    `json:"count" example:"12"`
}

// ReflectionEntry is one day of free-text reflection.
type ReflectionEntry struct {
	Date         string `json:"date" example:"2025-04-01"`
	WhatHappened string `json:"what_happened"`
	HowItFelt    string `json:"how_it_felt"`
	WhatWasDone  string `json:"what_was_done"`
}

// ReportResponse is everything the reporting view draws from.
// @Description Trend report over a date window.
type ReportResponse struct {
	Window struct {
		From string `json:"from" example:"2025-03-02"`
		To   string `json:"to" example:"2025-04-01"`
	} `json:"window"`
	DaysRecorded  int                      `json:"days_recorded" example:"27"`
	Sleep         []SleepPoint             `json:"sleep"`
	SleepStats    DescriptiveStats         `json:"sleep_stats"`
	Workload      []WorkloadPoint          `json:"workload"`
	WorkloadStats DescriptiveStats         `json:"workload_stats"`
	Correlation   WorkloadSleepCorrelation `json:"correlation"`
	Categories    []CategoryCount          `json:"categories"`
	Chronotype    ChronotypeResult         `json:"chronotype"`
	Reflections   []ReflectionEntry        `json:"reflections"`
}

// ReportFilter bounds the report window; nil ends fall back to defaults.
type ReportFilter struct {
	From *time.Time
	To   *time.Time
}

// LLMReflectionOutput contains the structured output from the LLM.
// @Description LLM-generated reflection on the journal window.
type LLMReflectionOutput struct {
	// Summary of the period (2-3 sentences)
	Summary string `json:"summary" example:"Workload peaked mid-month while sleep shortened..."`
	// Observations about patterns (3-6 items)
	Observations []string `json:"observations" example:"[\"Nights after high time-pressure days were shorter\"]"`
	// Non-medical self-care suggestions (3-5 items)
	Guidance []string `json:"guidance" example:"[\"Protect a fixed wind-down time on busy days\"]"`
}

// InsightsResponse is the response for the insights endpoint.
// @Description Report plus LLM reflection.
type InsightsResponse struct {
	Report   ReportResponse      `json:"report"`
	Insights LLMReflectionOutput `json:"insights"`
	// Trace ID for feedback (only present when tracing is enabled)
	TraceID string `json:"trace_id,omitempty" example:"4bf92f3577b34da6a3ce929d0e0e4736"`
}

// FeedbackRequest is the request body for insights feedback.
// @Description Request body for submitting feedback on insights.
type FeedbackRequest struct {
	// Trace ID from the insights response
	TraceID string `json:"trace_id" validate:"required" example:"4bf92f3577b34da6a3ce929d0e0e4736"`
	// Rating score (1-5)
	Score int `json:"score" validate:"required,min=1,max=5" example:"4"`
	// Optional comment
	Comment string `json:"comment,omitempty" validate:"max=2000" example:"Helpful"`
}
