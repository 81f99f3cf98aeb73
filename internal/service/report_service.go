package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/blaisecz/care-log/internal/advice"
	"github.com/blaisecz/care-log/internal/domain"
	"github.com/blaisecz/care-log/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultReportWindowDays is how far back the default window reaches from its end date.
	DefaultReportWindowDays = 30

	// DefaultChronotypeMinSleeps is the fewest recorded nights needed to classify a chronotype.
	DefaultChronotypeMinSleeps = 7

	// Chronotype thresholds (minutes after midnight for mid-sleep)
	EarlyBirdThreshold    = 150 // < 150 = early bird (mid-sleep before 2:30 AM)
	IntermediateThreshold = 270 // 150-269 = intermediate, >= 270 = night owl (4:30 AM)
)

// ReportService computes the trend report over a date window.
type ReportService interface {
	// Compute builds the report. A nil To defaults to the newest record date
	// (today when the journal is empty); a nil From to DefaultReportWindowDays
	// before To. Both ends are inclusive.
	Compute(ctx context.Context, filter domain.ReportFilter) (*domain.ReportResponse, error)
}

type reportService struct {
	repo    repository.DailyRecordRepository
	catalog *advice.Catalog
	now     func() time.Time
}

func NewReportService(repo repository.DailyRecordRepository, catalog *advice.Catalog) ReportService {
	return &reportService{
		repo:    repo,
		catalog: catalog,
		now:     time.Now,
	}
}

func (s *reportService) Compute(ctx context.Context, filter domain.ReportFilter) (*domain.ReportResponse, error) {
	ctx, span := otel.Tracer("care-log/report").Start(ctx, "ReportService.Compute")
	defer span.End()

	records, err := s.repo.LoadAll(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	from, to := s.window(records, filter)
	if from.After(to) {
		return nil, fmt.Errorf("%w: from %s is after to %s", domain.ErrInvalidInput, from.Format(domain.DateLayout), to.Format(domain.DateLayout))
	}
	span.SetAttributes(
		attribute.String("window.from", from.Format(domain.DateLayout)),
		attribute.String("window.to", to.Format(domain.DateLayout)),
	)

	var inWindow []domain.DailyRecord
	for _, rec := range records {
		if rec.Date.Before(from) || rec.Date.After(to) {
			continue
		}
		inWindow = append(inWindow, rec)
	}
	sort.Slice(inWindow, func(i, j int) bool {
		return inWindow[i].Date.Before(inWindow[j].Date)
	})

	report := buildReport(inWindow, s.catalog)
	report.Window.From = from.Format(domain.DateLayout)
	report.Window.To = to.Format(domain.DateLayout)

	setObservationOutput(span, report)
	return report, nil
}

func (s *reportService) window(records []domain.DailyRecord, filter domain.ReportFilter) (time.Time, time.Time) {
	var to time.Time
	switch {
	case filter.To != nil:
		to = domain.DateOf(*filter.To)
	case len(records) > 0:
		for _, rec := range records {
			if rec.Date.After(to) {
				to = rec.Date
			}
		}
	default:
		to = domain.DateOf(s.now())
	}

	from := to.AddDate(0, 0, -DefaultReportWindowDays)
	if filter.From != nil {
		from = domain.DateOf(*filter.From)
	}
	return from, to
}

// buildReport assembles every report section from records sorted by date.
func buildReport(records []domain.DailyRecord, catalog *advice.Catalog) *domain.ReportResponse {
	report := &domain.ReportResponse{
		DaysRecorded: len(records),
		Sleep:        []domain.SleepPoint{},
		Workload:     []domain.WorkloadPoint{},
		Correlation:  domain.WorkloadSleepCorrelation{Points: []domain.CorrelationPoint{}},
		Categories:   []domain.CategoryCount{},
		Reflections:  []domain.ReflectionEntry{},
	}

	var sleepHours, totals, corrX, corrY []float64
	for _, rec := range records {
		date := rec.DateKey()

		if rec.SleepDurationHours != nil {
			report.Sleep = append(report.Sleep, domain.SleepPoint{Date: date, Hours: *rec.SleepDurationHours})
			sleepHours = append(sleepHours, *rec.SleepDurationHours)
		}

		if len(rec.WorkloadScores) > 0 {
			total := rec.WorkloadTotal()
			report.Workload = append(report.Workload, domain.WorkloadPoint{
				Date:   date,
				Scores: rec.WorkloadScores,
				Total:  total,
			})
			totals = append(totals, float64(total))

			if rec.SleepDurationHours != nil {
				report.Correlation.Points = append(report.Correlation.Points, domain.CorrelationPoint{
					Date:          date,
					SleepHours:    *rec.SleepDurationHours,
					WorkloadTotal: total,
				})
				corrX = append(corrX, *rec.SleepDurationHours)
				corrY = append(corrY, float64(total))
			}
		}

		if rec.WhatHappened != "" || rec.HowItFelt != "" || rec.WhatWasDone != "" {
			report.Reflections = append(report.Reflections, domain.ReflectionEntry{
				Date:         date,
				WhatHappened: rec.WhatHappened,
				HowItFelt:    rec.HowItFelt,
				WhatWasDone:  rec.WhatWasDone,
			})
		}
	}

	report.SleepStats = computeStats(sleepHours)
	report.WorkloadStats = computeStats(totals)
	report.Correlation.Pearson = pearson(corrX, corrY)
	report.Categories = categoryFrequency(records, catalog)
	report.Chronotype = computeChronotype(records, DefaultChronotypeMinSleeps)

	return report
}

// categoryFrequency counts the fatigue categories tagged on the catalog items
// of each recorded (symptom, severity) pair. Most frequent first; ties keep
// the category order.
func categoryFrequency(records []domain.DailyRecord, catalog *advice.Catalog) []domain.CategoryCount {
	counts := make(map[advice.Category]int)
	for _, rec := range records {
		for symptom, severity := range rec.SymptomScores {
			for _, item := range catalog.Candidates(symptom, severity) {
				for _, tag := range item.Tags {
					counts[tag]++
				}
			}
		}
	}

	result := []domain.CategoryCount{}
	for _, category := range advice.Categories() {
		if n := counts[category]; n > 0 {
			result = append(result, domain.CategoryCount{Category: string(category), Count: n})
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	return result
}

// computeChronotype classifies the median mid-sleep time of the recorded nights.
func computeChronotype(records []domain.DailyRecord, minSleeps int) domain.ChronotypeResult {
	var midMinutes []int
	for _, rec := range records {
		if rec.SleepStart == nil || rec.SleepDurationHours == nil {
			continue
		}
		mid := rec.SleepStart.MinutesAfterMidnight() + int(math.Round(*rec.SleepDurationHours*60/2))
		midMinutes = append(midMinutes, normalizeMidSleep(mid))
	}

	result := domain.ChronotypeResult{NightsUsed: len(midMinutes)}
	if len(midMinutes) < minSleeps {
		result.Chronotype = domain.ChronotypeUnknown
		return result
	}

	medianMid := median(midMinutes)
	result.MidSleepMinutesAfterMidnight = medianMid
	result.MidSleepTime = minutesToTimeString(medianMid)
	result.Chronotype = classifyChronotype(medianMid)
	return result
}

// normalizeMidSleep maps a mid-sleep offset onto (-720, 720] around midnight so
// that nights either side of 00:00 sort next to each other.
func normalizeMidSleep(minutes int) int {
	minutes = ((minutes % 1440) + 1440) % 1440
	if minutes > 720 {
		minutes -= 1440
	}
	return minutes
}

// median calculates the median of a slice of integers.
func median(values []int) int {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// minutesToTimeString converts minutes after midnight to HH:MM format.
func minutesToTimeString(minutes int) string {
	minutes = ((minutes % 1440) + 1440) % 1440
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// classifyChronotype determines chronotype based on mid-sleep minutes.
func classifyChronotype(midMinutes int) domain.ChronotypeType {
	if midMinutes < EarlyBirdThreshold {
		return domain.ChronotypeEarlyBird
	}
	if midMinutes < IntermediateThreshold {
		return domain.ChronotypeIntermediate
	}
	return domain.ChronotypeNightOwl
}

// computeStats calculates descriptive statistics for a slice of values.
func computeStats(values []float64) domain.DescriptiveStats {
	if len(values) == 0 {
		return domain.DescriptiveStats{}
	}

	sum := 0.0
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values {
		sum += v
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	avg := sum / float64(len(values))

	// Sample standard deviation
	sumSquares := 0.0
	for _, v := range values {
		diff := v - avg
		sumSquares += diff * diff
	}
	std := 0.0
	if len(values) > 1 {
		std = math.Sqrt(sumSquares / float64(len(values)-1))
	}

	return domain.DescriptiveStats{
		Count: len(values),
		Avg:   round2(avg),
		Std:   round2(std),
		Min:   round2(minVal),
		Max:   round2(maxVal),
	}
}

// pearson returns the correlation coefficient of xs and ys, or nil when it is
// undefined (fewer than two points or a constant series).
func pearson(xs, ys []float64) *float64 {
	n := len(xs)
	if n < 2 || n != len(ys) {
		return nil
	}

	var meanX, meanY float64
	for i := range xs {
		meanX += xs[i]
		meanY += ys[i]
	}
	meanX /= float64(n)
	meanY /= float64(n)

	var cov, varX, varY float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return nil
	}

	r := math.Round(cov/math.Sqrt(varX*varY)*1000) / 1000
	return &r
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// setObservationOutput attaches the report to the span for Langfuse.
func setObservationOutput(span trace.Span, report *domain.ReportResponse) {
	if outputJSON, err := json.Marshal(report); err == nil {
		span.SetAttributes(attribute.String("langfuse.observation.output", string(outputJSON)))
	}
}
