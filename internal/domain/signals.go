package domain

// Symptom is a named body signal the user rates from 1 (mild) to 5 (severe).
// @Description Symptom name drawn from the fixed catalog of body signals.
type Symptom string

const (
	// Warning signs
	SymptomShoulderHeaviness       Symptom = "shoulder heaviness"
	SymptomDifficultyConcentrating Symptom = "difficulty concentrating"
	SymptomSleepiness              Symptom = "sleepiness"

	// Bad signs
	SymptomStomachUpset Symptom = "stomach upset"
	SymptomHeadache     Symptom = "headache"
)

const (
	MinSeverity = 1
	MaxSeverity = 5
)

// WarningSigns and BadSigns together make up the fixed symptom set, in column order.
var (
	WarningSigns = []Symptom{SymptomShoulderHeaviness, SymptomDifficultyConcentrating, SymptomSleepiness}
	BadSigns     = []Symptom{SymptomStomachUpset, SymptomHeadache}
)

// Symptoms returns every known symptom in column order.
func Symptoms() []Symptom {
	out := make([]Symptom, 0, len(WarningSigns)+len(BadSigns))
	out = append(out, WarningSigns...)
	return append(out, BadSigns...)
}

// IsKnownSymptom reports whether s is one of the fixed symptom names.
func IsKnownSymptom(s Symptom) bool {
	for _, known := range Symptoms() {
		if known == s {
			return true
		}
	}
	return false
}

// WorkloadDimension is one of the six NASA-TLX subjective workload scales.
// @Description NASA-TLX workload dimension.
type WorkloadDimension string

const (
	WorkloadMentalDemand   WorkloadDimension = "mental_demand"
	WorkloadPhysicalDemand WorkloadDimension = "physical_demand"
	WorkloadTemporalDemand WorkloadDimension = "temporal_demand"
	WorkloadEffort         WorkloadDimension = "effort"
	WorkloadPerformance    WorkloadDimension = "performance"
	WorkloadFrustration    WorkloadDimension = "frustration"
)

const (
	MinWorkloadScore = 0
	MaxWorkloadScore = 10
)

var workloadDimensions = []WorkloadDimension{
	WorkloadMentalDemand,
	WorkloadPhysicalDemand,
	WorkloadTemporalDemand,
	WorkloadEffort,
	WorkloadPerformance,
	WorkloadFrustration,
}

// workloadQuestions holds the prompt shown next to each scale.
var workloadQuestions = map[WorkloadDimension]string{
	WorkloadMentalDemand:   "How much mental and perceptual activity was required (thinking, remembering, watching, searching)?",
	WorkloadPhysicalDemand: "How much physical activity was required (pushing, pulling, turning, operating)?",
	WorkloadTemporalDemand: "How much time pressure did you feel due to the pace at which tasks occurred?",
	WorkloadEffort:         "How hard did you have to work to reach your level of performance?",
	WorkloadPerformance:    "How successful were you in accomplishing what you set out to do?",
	WorkloadFrustration:    "How stressed, irritated or annoyed did you feel during the task?",
}

// WorkloadDimensions returns the six dimensions in column order.
func WorkloadDimensions() []WorkloadDimension {
	out := make([]WorkloadDimension, len(workloadDimensions))
	copy(out, workloadDimensions)
	return out
}

// IsKnownWorkloadDimension reports whether d is one of the six scales.
func IsKnownWorkloadDimension(d WorkloadDimension) bool {
	_, ok := workloadQuestions[d]
	return ok
}

// Question returns the explanatory prompt for the dimension.
func (d WorkloadDimension) Question() string {
	return workloadQuestions[d]
}
