package seed

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/blaisecz/care-log/internal/domain"
	"github.com/blaisecz/care-log/internal/repository"
)

// DefaultDays is how much history Run creates when asked for none.
const DefaultDays = 40

var (
	happenings = []string{
		"Long meetings back to back.",
		"Deadline for the quarterly report.",
		"Quiet day, mostly focused work.",
		"Trained the new team member.",
		"Commuted in heavy rain.",
		"Day off, errands and a walk.",
	}
	feelings = []string{
		"Tired by mid-afternoon.",
		"Tense in the shoulders.",
		"Calm and steady.",
		"Scattered, hard to focus.",
		"Fine overall.",
	}
	actions = []string{
		"Went to bed earlier.",
		"Took a bath and stretched.",
		"Short walk at lunch.",
		"Skipped the evening screen time.",
		"",
	}
)

// Run fills the journal with sample records for the days days ending at now.
// Dates that already have a record are left alone, so repeated runs are safe.
// It returns how many records were written.
func Run(ctx context.Context, repo repository.DailyRecordRepository, days int, now time.Time, rng *rand.Rand) (int, error) {
	if days <= 0 {
		days = DefaultDays
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(now.UnixNano()))
	}

	if err := repo.EnsureSchema(ctx); err != nil {
		return 0, fmt.Errorf("failed to prepare store: %w", err)
	}

	today := domain.DateOf(now)
	created := 0
	for i := days - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i)

		_, err := repo.FindByDate(ctx, date)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return created, fmt.Errorf("failed to check %s: %w", date.Format(domain.DateLayout), err)
		}

		record := sampleRecord(date, rng)
		if err := repo.Upsert(ctx, record); err != nil {
			return created, fmt.Errorf("failed to save %s: %w", record.DateKey(), err)
		}
		created++
	}

	log.Printf("Seed completed: %d records created", created)
	return created, nil
}

func sampleRecord(date time.Time, rng *rand.Rand) *domain.DailyRecord {
	record := &domain.DailyRecord{
		Date:           date,
		WorkloadScores: make(map[domain.WorkloadDimension]int),
		SymptomScores:  make(map[domain.Symptom]int),
	}

	// One night in ten is left unrecorded.
	if rng.Float32() >= 0.1 {
		start := domain.TimeOfDay{Hour: (22 + rng.Intn(3)) % 24, Minute: rng.Intn(60)}
		end := domain.TimeOfDay{Hour: 5 + rng.Intn(4), Minute: rng.Intn(60)}
		record.SleepStart = &start
		record.SleepEnd = &end
	}
	record.RecomputeSleepDuration()

	for _, dim := range domain.WorkloadDimensions() {
		record.WorkloadScores[dim] = rng.Intn(domain.MaxWorkloadScore + 1)
	}

	for _, symptom := range domain.Symptoms() {
		if rng.Float32() < 0.35 {
			record.SymptomScores[symptom] = domain.MinSeverity + rng.Intn(domain.MaxSeverity)
		}
	}

	if rng.Float32() < 0.6 {
		record.WhatHappened = happenings[rng.Intn(len(happenings))]
		record.HowItFelt = feelings[rng.Intn(len(feelings))]
		record.WhatWasDone = actions[rng.Intn(len(actions))]
	}
	return record
}
