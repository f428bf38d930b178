// Package sources holds the static provider configuration: series identifiers
// per tenor, field names, endpoints and Valet groups. It is parsed once from
// the embedded sources.yaml and shared read-only by every adapter.
package sources

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"yieldcurve/internal/domain"

	"gopkg.in/yaml.v3"
)

//go:embed sources.yaml
var defaultDocument []byte

// SeriesMap maps a tenor to its candidate series identifiers in priority order.
// A tenor mapped to an empty list is unsupported by the provider.
type SeriesMap map[domain.Tenor][]string

// Candidates returns the identifiers to try for t.
func (m SeriesMap) Candidates(t domain.Tenor) []string {
	return m[t]
}

type FREDConfig struct {
	BaseURL  string
	GraphURL string
	Series   SeriesMap
}

type TreasuryConfig struct {
	BaseURL   string
	Endpoints []string
	DateField string
	Fields    map[domain.Tenor]string
}

// EndpointURLs returns the absolute endpoint URLs in fallback order.
func (c TreasuryConfig) EndpointURLs() []string {
	out := make([]string, 0, len(c.Endpoints))
	base := strings.TrimRight(c.BaseURL, "/")
	for _, e := range c.Endpoints {
		if strings.HasPrefix(e, "http://") || strings.HasPrefix(e, "https://") {
			out = append(out, e)
			continue
		}
		out = append(out, base+"/"+strings.TrimLeft(e, "/"))
	}
	return out
}

// ValetGroup is one Bank of Canada observation group fetched as a single batch.
type ValetGroup struct {
	Name   string
	Recent int
	Series SeriesMap
	// Substitutes documents tenors served by a related, non-identical series.
	Substitutes map[domain.Tenor]string
}

type ValetConfig struct {
	BaseURL string
	Groups  []ValetGroup
}

// GroupFor returns the group that configures t, if any.
func (c ValetConfig) GroupFor(t domain.Tenor) (ValetGroup, bool) {
	for _, g := range c.Groups {
		if _, ok := g.Series[t]; ok {
			return g, true
		}
	}
	return ValetGroup{}, false
}

// Catalog is the immutable provider configuration.
type Catalog struct {
	FRED     FREDConfig
	Treasury TreasuryConfig
	Valet    ValetConfig
}

type rawDocument struct {
	FRED struct {
		BaseURL  string              `yaml:"base_url"`
		GraphURL string              `yaml:"graph_url"`
		Series   map[string][]string `yaml:"series"`
	} `yaml:"fred"`
	Treasury struct {
		BaseURL   string            `yaml:"base_url"`
		Endpoints []string          `yaml:"endpoints"`
		DateField string            `yaml:"date_field"`
		Fields    map[string]string `yaml:"fields"`
	} `yaml:"treasury"`
	Valet struct {
		BaseURL string `yaml:"base_url"`
		Groups  []struct {
			Name        string              `yaml:"name"`
			Recent      int                 `yaml:"recent"`
			Series      map[string][]string `yaml:"series"`
			Substitutes map[string]string   `yaml:"substitutes"`
		} `yaml:"groups"`
	} `yaml:"valet"`
}

// Parse decodes a catalog document and validates every tenor key.
func Parse(data []byte) (*Catalog, error) {
	var raw rawDocument
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode source catalog: %w", err)
	}

	cat := &Catalog{}
	var err error

	cat.FRED.BaseURL = strings.TrimRight(raw.FRED.BaseURL, "/")
	cat.FRED.GraphURL = raw.FRED.GraphURL
	if cat.FRED.Series, err = seriesMap(raw.FRED.Series); err != nil {
		return nil, fmt.Errorf("fred series: %w", err)
	}

	cat.Treasury.BaseURL = raw.Treasury.BaseURL
	cat.Treasury.Endpoints = append([]string(nil), raw.Treasury.Endpoints...)
	cat.Treasury.DateField = raw.Treasury.DateField
	if cat.Treasury.DateField == "" {
		cat.Treasury.DateField = "record_date"
	}
	cat.Treasury.Fields = make(map[domain.Tenor]string, len(raw.Treasury.Fields))
	for label, field := range raw.Treasury.Fields {
		t, err := domain.NormalizeTenor(label)
		if err != nil {
			return nil, fmt.Errorf("treasury fields: %w", err)
		}
		cat.Treasury.Fields[t] = strings.TrimSpace(field)
	}
	if len(cat.Treasury.Endpoints) == 0 {
		return nil, fmt.Errorf("treasury: at least one endpoint is required")
	}

	cat.Valet.BaseURL = strings.TrimRight(raw.Valet.BaseURL, "/")
	seen := map[domain.Tenor]string{}
	for _, g := range raw.Valet.Groups {
		if strings.TrimSpace(g.Name) == "" {
			return nil, fmt.Errorf("valet: group without a name")
		}
		group := ValetGroup{Name: g.Name, Recent: g.Recent, Substitutes: map[domain.Tenor]string{}}
		if group.Recent <= 0 {
			group.Recent = 30
		}
		if group.Series, err = seriesMap(g.Series); err != nil {
			return nil, fmt.Errorf("valet group %s: %w", g.Name, err)
		}
		for t := range group.Series {
			if other, dup := seen[t]; dup {
				return nil, fmt.Errorf("valet: tenor %s configured in both %s and %s", t, other, g.Name)
			}
			seen[t] = g.Name
		}
		for label, note := range g.Substitutes {
			t, err := domain.NormalizeTenor(label)
			if err != nil {
				return nil, fmt.Errorf("valet group %s substitutes: %w", g.Name, err)
			}
			group.Substitutes[t] = strings.TrimSpace(note)
		}
		cat.Valet.Groups = append(cat.Valet.Groups, group)
	}

	return cat, nil
}

func seriesMap(raw map[string][]string) (SeriesMap, error) {
	out := make(SeriesMap, len(raw))
	for label, ids := range raw {
		t, err := domain.NormalizeTenor(label)
		if err != nil {
			return nil, err
		}
		clean := make([]string, 0, len(ids))
		for _, id := range ids {
			if id = strings.TrimSpace(id); id != "" {
				clean = append(clean, id)
			}
		}
		out[t] = clean
	}
	return out, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog parsed from the embedded document.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse(defaultDocument)
	})
	return defaultCatalog, defaultErr
}
