package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"contentbrowser/internal/domain"
)

// ErrUnknownKind is returned for catalog tables that do not name a known kind
var ErrUnknownKind = errors.New("unknown item kind")

//go:embed sample.toml
var sampleCatalog []byte

// record is the on-disk shape of one catalog entry
type record struct {
	ID          string            `toml:"id"`
	Title       string            `toml:"title"`
	Name        string            `toml:"name"`
	Summary     string            `toml:"summary"`
	Description string            `toml:"description"`
	URL         string            `toml:"url"`
	Feed        string            `toml:"feed"`
	Date        string            `toml:"date"`
	People      []string          `toml:"people"`
	Company     string            `toml:"company"`
	Attributes  map[string]string `toml:"attributes"`
}

const dateLayout = "2006-01-02"

func (r record) toItem(kind domain.Kind) (domain.Item, error) {
	if strings.TrimSpace(r.ID) == "" {
		return domain.Item{}, fmt.Errorf("%s entry without id", kind)
	}
	title := r.Title
	if title == "" {
		title = r.Name
	}
	it := domain.Item{
		ID:          r.ID,
		Kind:        kind,
		Title:       title,
		Summary:     r.Summary,
		Description: r.Description,
		URL:         r.URL,
		FeedURL:     r.Feed,
		PersonIDs:   r.People,
		CompanyID:   r.Company,
		Attributes:  r.Attributes,
	}
	if r.Date != "" {
		d, err := time.Parse(dateLayout, r.Date)
		if err != nil {
			return domain.Item{}, fmt.Errorf("%s %s: bad date %q: %w", kind, r.ID, r.Date, err)
		}
		it.Date = d
	}
	return it, nil
}

// LoadBytes parses a TOML catalog. Tables are named after kinds
// ([[video]], [[person]], ...); entry order within a table is kept.
func LoadBytes(data []byte) ([]domain.Item, error) {
	var raw map[string][]record
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	byKind := make(map[domain.Kind][]record, len(raw))
	var unknown []string
	for name, recs := range raw {
		kind, err := domain.ParseKind(name)
		if err != nil {
			unknown = append(unknown, name)
			continue
		}
		byKind[kind] = append(byKind[kind], recs...)
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, strings.Join(unknown, ", "))
	}

	var items []domain.Item
	for _, kind := range domain.Kinds() {
		for _, rec := range byKind[kind] {
			it, err := rec.toItem(kind)
			if err != nil {
				return nil, err
			}
			items = append(items, it)
		}
	}
	return items, nil
}

// LoadFile reads a TOML catalog from path
func LoadFile(path string) ([]domain.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return LoadBytes(data)
}

// Sample returns the built-in sample catalog
func Sample() []domain.Item {
	items, err := LoadBytes(sampleCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded sample catalog is invalid: %v", err))
	}
	return items
}
