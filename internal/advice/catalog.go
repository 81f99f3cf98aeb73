// Package advice holds the self-care catalog and the engine that picks
// recommendations from it for a day's symptoms and workload.
package advice

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/blaisecz/care-log/internal/domain"
	"gopkg.in/yaml.v2"
)

// Category links advice items to workload dimensions.
type Category string

const (
	CategoryPhysicalFatigue    Category = "physical fatigue"
	CategoryMentalFatigue      Category = "mental fatigue"
	CategorySleepDeprivation   Category = "sleep deprivation"
	CategoryPhysicalDiscomfort Category = "physical discomfort"
)

// Categories returns the closed category set.
func Categories() []Category {
	return []Category{
		CategoryPhysicalFatigue,
		CategoryMentalFatigue,
		CategorySleepDeprivation,
		CategoryPhysicalDiscomfort,
	}
}

func isKnownCategory(c Category) bool {
	for _, known := range Categories() {
		if known == c {
			return true
		}
	}
	return false
}

// ErrInvalidCatalog is returned when a catalog document fails validation.
var ErrInvalidCatalog = errors.New("invalid advice catalog")

//go:embed catalog.yaml
var embeddedCatalog []byte

// Item is one candidate recommendation.
type Item struct {
	Text string     `json:"text"`
	Tags []Category `json:"tags"`
}

// Entry groups the items for one (symptom, severity) key.
type Entry struct {
	Symptom  domain.Symptom `json:"symptom"`
	Severity int            `json:"severity"`
	Items    []Item         `json:"items"`
}

// Catalog is an immutable (symptom, severity) -> items lookup.
type Catalog struct {
	version string
	order   []domain.Symptom
	items   map[domain.Symptom]map[int][]Item
}

type catalogDoc struct {
	Version  string       `yaml:"version"`
	Symptoms []symptomDoc `yaml:"symptoms"`
}

type symptomDoc struct {
	Name   string            `yaml:"name"`
	Levels map[int][]itemDoc `yaml:"levels"`
}

type itemDoc struct {
	Text string   `yaml:"text"`
	Tags []string `yaml:"tags"`
}

// LoadCatalog parses and validates a YAML catalog document.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var doc catalogDoc
	if err := yaml.UnmarshalStrict(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if strings.TrimSpace(doc.Version) == "" {
		return nil, fmt.Errorf("%w: version is required", ErrInvalidCatalog)
	}

	c := &Catalog{
		version: doc.Version,
		items:   make(map[domain.Symptom]map[int][]Item, len(doc.Symptoms)),
	}
	for _, sd := range doc.Symptoms {
		symptom := domain.Symptom(sd.Name)
		if !domain.IsKnownSymptom(symptom) {
			return nil, fmt.Errorf("%w: unknown symptom %q", ErrInvalidCatalog, sd.Name)
		}
		if _, dup := c.items[symptom]; dup {
			return nil, fmt.Errorf("%w: symptom %q listed twice", ErrInvalidCatalog, sd.Name)
		}

		levels := make(map[int][]Item, len(sd.Levels))
		for severity, docs := range sd.Levels {
			if severity < domain.MinSeverity || severity > domain.MaxSeverity {
				return nil, fmt.Errorf("%w: %q severity %d outside %d-%d", ErrInvalidCatalog, sd.Name, severity, domain.MinSeverity, domain.MaxSeverity)
			}
			items := make([]Item, 0, len(docs))
			for _, d := range docs {
				if strings.TrimSpace(d.Text) == "" {
					return nil, fmt.Errorf("%w: %q severity %d has an item without text", ErrInvalidCatalog, sd.Name, severity)
				}
				if len(d.Tags) == 0 {
					return nil, fmt.Errorf("%w: %q has no tags", ErrInvalidCatalog, d.Text)
				}
				tags := make([]Category, 0, len(d.Tags))
				for _, tag := range d.Tags {
					if !isKnownCategory(Category(tag)) {
						return nil, fmt.Errorf("%w: %q has unknown tag %q", ErrInvalidCatalog, d.Text, tag)
					}
					tags = append(tags, Category(tag))
				}
				items = append(items, Item{Text: d.Text, Tags: tags})
			}
			levels[severity] = items
		}

		c.items[symptom] = levels
		c.order = append(c.order, symptom)
	}

	return c, nil
}

// LoadCatalogFile loads a catalog document from disk.
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return LoadCatalog(f)
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// DefaultCatalog returns the embedded catalog, parsed once per process.
func DefaultCatalog() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = LoadCatalog(bytes.NewReader(embeddedCatalog))
	})
	return defaultCatalog, defaultErr
}

// Version identifies the catalog revision.
func (c *Catalog) Version() string {
	return c.version
}

// Symptoms returns the catalog's symptoms in document order.
func (c *Catalog) Symptoms() []domain.Symptom {
	out := make([]domain.Symptom, len(c.order))
	copy(out, c.order)
	return out
}

// Candidates returns a copy of the items for the exact (symptom, severity) key.
// Missing keys yield nil.
func (c *Catalog) Candidates(symptom domain.Symptom, severity int) []Item {
	items := c.items[symptom][severity]
	if len(items) == 0 {
		return nil
	}
	out := make([]Item, len(items))
	for i, item := range items {
		out[i] = Item{Text: item.Text, Tags: append([]Category(nil), item.Tags...)}
	}
	return out
}

// Entries lists every key in document order, severities ascending.
func (c *Catalog) Entries() []Entry {
	var out []Entry
	for _, symptom := range c.order {
		severities := make([]int, 0, len(c.items[symptom]))
		for severity := range c.items[symptom] {
			severities = append(severities, severity)
		}
		sort.Ints(severities)
		for _, severity := range severities {
			out = append(out, Entry{
				Symptom:  symptom,
				Severity: severity,
				Items:    c.Candidates(symptom, severity),
			})
		}
	}
	return out
}
