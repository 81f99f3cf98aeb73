package advice

import (
	"math/rand"
	"sort"

	"github.com/blaisecz/care-log/internal/domain"
)

const (
	// PoolSize is how many top-weighted candidates enter the random draw.
	PoolSize = 10
	// SampleSize is the maximum number of recommendations returned.
	SampleSize = 3
	// NoAdvice is returned alone when no candidate applies.
	NoAdvice = "no advice available"
)

// categoryWorkload maps each category to the workload scale that weights it.
var categoryWorkload = map[Category]domain.WorkloadDimension{
	CategoryMentalFatigue:      domain.WorkloadMentalDemand,
	CategoryPhysicalFatigue:    domain.WorkloadPhysicalDemand,
	CategorySleepDeprivation:   domain.WorkloadTemporalDemand,
	CategoryPhysicalDiscomfort: domain.WorkloadFrustration,
}

// Source supplies the random permutation used for the final draw.
// *rand.Rand satisfies it.
type Source interface {
	Perm(n int) []int
}

// Scored is a candidate with its computed weight.
type Scored struct {
	Item
	Symptom  domain.Symptom `json:"symptom"`
	Severity int            `json:"severity"`
	Weight   int            `json:"weight"`
}

// Engine ranks and samples catalog candidates. It never touches the store
// or the clock.
type Engine struct {
	catalog *Catalog
}

func NewEngine(catalog *Catalog) *Engine {
	return &Engine{catalog: catalog}
}

// Catalog returns the catalog the engine draws from.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// CategoryWeights derives a weight per category from the workload scores.
// Categories without a mapped score weigh 0.
func CategoryWeights(workload map[domain.WorkloadDimension]int) map[Category]int {
	weights := make(map[Category]int, len(categoryWorkload))
	for category, dim := range categoryWorkload {
		weights[category] = workload[dim]
	}
	return weights
}

// Rank weights every candidate for the day's symptoms and sorts them by
// weight descending. Ties keep catalog order: symptoms in document order,
// then items in list order.
func (e *Engine) Rank(symptoms map[domain.Symptom]int, workload map[domain.WorkloadDimension]int) []Scored {
	weights := CategoryWeights(workload)

	var ranked []Scored
	for _, symptom := range e.catalog.order {
		severity, ok := symptoms[symptom]
		if !ok {
			continue
		}
		for _, item := range e.catalog.Candidates(symptom, severity) {
			weight := 0
			for _, tag := range item.Tags {
				weight += weights[tag]
			}
			ranked = append(ranked, Scored{
				Item:     item,
				Symptom:  symptom,
				Severity: severity,
				Weight:   weight,
			})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Weight > ranked[j].Weight
	})
	return ranked
}

// Pool returns the top PoolSize ranked candidates.
func (e *Engine) Pool(symptoms map[domain.Symptom]int, workload map[domain.WorkloadDimension]int) []Scored {
	ranked := e.Rank(symptoms, workload)
	if len(ranked) > PoolSize {
		ranked = ranked[:PoolSize]
	}
	return ranked
}

// Generate draws up to SampleSize recommendations uniformly, without
// replacement, from the pool. A nil src uses the package-level source.
// When nothing applies the result is []string{NoAdvice}.
func (e *Engine) Generate(symptoms map[domain.Symptom]int, workload map[domain.WorkloadDimension]int, src Source) []string {
	pool := e.Pool(symptoms, workload)
	if len(pool) == 0 {
		return []string{NoAdvice}
	}

	var perm []int
	if src != nil {
		perm = src.Perm(len(pool))
	} else {
		perm = rand.Perm(len(pool))
	}

	n := SampleSize
	if len(pool) < n {
		n = len(pool)
	}
	out := make([]string, 0, n)
	for _, idx := range perm[:n] {
		out = append(out, pool[idx].Text)
	}
	return out
}
