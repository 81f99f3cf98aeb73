// Package guide provides the score guidance shown next to each workload scale.
package guide

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/blaisecz/care-log/internal/domain"
)

//go:embed guide.csv
var embeddedGuide []byte

var ErrInvalidGuide = errors.New("invalid workload guide")

// Row is the guidance for scores at or above Score.
type Row struct {
	Score int    `json:"score"`
	Text  string `json:"text"`
}

type Guide struct {
	rows map[domain.WorkloadDimension][]Row
}

// Load parses a CSV with a "score" column and one column per workload
// dimension. Blank cells are dropped; unknown columns are ignored.
func Load(r io.Reader) (*Guide, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrInvalidGuide, err)
	}
	scoreCol := -1
	dims := make(map[int]domain.WorkloadDimension)
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "score" {
			scoreCol = i
			continue
		}
		if dim := domain.WorkloadDimension(name); domain.IsKnownWorkloadDimension(dim) {
			dims[i] = dim
		}
	}
	if scoreCol < 0 {
		return nil, fmt.Errorf("%w: missing score column", ErrInvalidGuide)
	}

	g := &Guide{rows: make(map[domain.WorkloadDimension][]Row)}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidGuide, err)
		}
		score, err := strconv.Atoi(strings.TrimSpace(record[scoreCol]))
		if err != nil {
			return nil, fmt.Errorf("%w: score %q is not a number", ErrInvalidGuide, record[scoreCol])
		}
		for i, dim := range dims {
			text := strings.TrimSpace(record[i])
			if text == "" {
				continue
			}
			g.rows[dim] = append(g.rows[dim], Row{Score: score, Text: text})
		}
	}

	for dim := range g.rows {
		rows := g.rows[dim]
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Score < rows[j].Score })
	}
	return g, nil
}

func LoadFile(path string) (*Guide, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open guide: %w", err)
	}
	defer f.Close()
	return Load(f)
}

var (
	defaultOnce  sync.Once
	defaultGuide *Guide
	defaultErr   error
)

// Default returns the embedded guide, parsed on first use.
func Default() (*Guide, error) {
	defaultOnce.Do(func() {
		defaultGuide, defaultErr = Load(bytes.NewReader(embeddedGuide))
	})
	return defaultGuide, defaultErr
}

// Rows returns a copy of the guidance rows for dim, scores ascending.
func (g *Guide) Rows(dim domain.WorkloadDimension) []Row {
	rows := g.rows[dim]
	out := make([]Row, len(rows))
	copy(out, rows)
	return out
}

// Describe returns the text of the highest row whose score does not exceed
// score. ok is false when no row applies.
func (g *Guide) Describe(dim domain.WorkloadDimension, score int) (string, bool) {
	rows := g.rows[dim]
	i := sort.Search(len(rows), func(i int) bool { return rows[i].Score > score })
	if i == 0 {
		return "", false
	}
	return rows[i-1].Text, true
}
