package main

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/blaisecz/care-log/internal/advice"
	"github.com/blaisecz/care-log/internal/domain"
	"github.com/spf13/cobra"
)

func newAdviceCmd() *cobra.Command {
	var (
		symptomArgs  []string
		workloadArgs []string
		seedValue    int64
		showPool     bool
	)

	cmd := &cobra.Command{
		Use:   "advice",
		Short: "Preview self-care advice for symptoms and workload",
		Long: `Draw advice the same way the journal does on save, without writing anything.

Symptoms are rated 1-5 and workload dimensions 0-10. Pass --seed to make the
draw repeatable and --pool to list the weighted candidates it draws from.`,
		Example: `  carelog advice --symptom headache=4 --workload mental_demand=8
  carelog advice --symptom "shoulder heaviness=3" --symptom sleepiness=2 --seed 7
  carelog advice --symptom headache=4 --pool`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			symptoms, err := parseSymptoms(symptomArgs)
			if err != nil {
				return err
			}
			workload, err := parseWorkload(workloadArgs)
			if err != nil {
				return err
			}

			catalog, err := loadCatalog()
			if err != nil {
				return err
			}
			engine := advice.NewEngine(catalog)
			out := cmd.OutOrStdout()

			if showPool {
				for _, c := range engine.Pool(symptoms, workload) {
					fmt.Fprintf(out, "%3d  %s (%s %d)\n", c.Weight, c.Text, c.Symptom, c.Severity)
				}
				return nil
			}

			var src advice.Source
			if cmd.Flags().Changed("seed") {
				src = rand.New(rand.NewSource(seedValue))
			}
			for _, line := range engine.Generate(symptoms, workload, src) {
				fmt.Fprintf(out, "- %s\n", line)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&symptomArgs, "symptom", nil, "symptom severity as name=1..5 (repeatable)")
	cmd.Flags().StringArrayVar(&workloadArgs, "workload", nil, "workload score as dimension=0..10 (repeatable)")
	cmd.Flags().Int64Var(&seedValue, "seed", 0, "random seed for a repeatable draw")
	cmd.Flags().BoolVar(&showPool, "pool", false, "list the weighted candidate pool instead of drawing")
	return cmd
}

func loadCatalog() (*advice.Catalog, error) {
	if cfg != nil && cfg.CatalogPath != "" {
		return advice.LoadCatalogFile(cfg.CatalogPath)
	}
	return advice.DefaultCatalog()
}

func parseSymptoms(args []string) (map[domain.Symptom]int, error) {
	out := make(map[domain.Symptom]int, len(args))
	for _, arg := range args {
		name, value, err := splitAssignment(arg)
		if err != nil {
			return nil, err
		}
		symptom := domain.Symptom(name)
		if !domain.IsKnownSymptom(symptom) {
			return nil, fmt.Errorf("unknown symptom %q", name)
		}
		if value < domain.MinSeverity || value > domain.MaxSeverity {
			return nil, fmt.Errorf("severity for %q must be %d-%d, got %d", name, domain.MinSeverity, domain.MaxSeverity, value)
		}
		out[symptom] = value
	}
	return out, nil
}

func parseWorkload(args []string) (map[domain.WorkloadDimension]int, error) {
	out := make(map[domain.WorkloadDimension]int, len(args))
	for _, arg := range args {
		name, value, err := splitAssignment(arg)
		if err != nil {
			return nil, err
		}
		dim := domain.WorkloadDimension(name)
		if !domain.IsKnownWorkloadDimension(dim) {
			return nil, fmt.Errorf("unknown workload dimension %q", name)
		}
		if value < domain.MinWorkloadScore || value > domain.MaxWorkloadScore {
			return nil, fmt.Errorf("score for %q must be %d-%d, got %d", name, domain.MinWorkloadScore, domain.MaxWorkloadScore, value)
		}
		out[dim] = value
	}
	return out, nil
}

// splitAssignment parses "name=value"; names may contain spaces.
func splitAssignment(arg string) (string, int, error) {
	i := strings.LastIndex(arg, "=")
	if i <= 0 {
		return "", 0, fmt.Errorf("expected name=value, got %q", arg)
	}
	name := strings.TrimSpace(arg[:i])
	value, err := strconv.Atoi(strings.TrimSpace(arg[i+1:]))
	if err != nil {
		return "", 0, fmt.Errorf("value in %q is not a number", arg)
	}
	return name, value, nil
}
