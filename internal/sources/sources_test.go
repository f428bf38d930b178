package sources

import (
	"errors"
	"reflect"
	"testing"

	"yieldcurve/internal/domain"
)

func TestDefaultCatalog(t *testing.T) {
	cat, err := Default()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, tenor := range domain.TenorCatalog {
		if len(cat.FRED.Series.Candidates(tenor)) != 1 {
			t.Fatalf("expected one FRED series for %s, got %v", tenor, cat.FRED.Series[tenor])
		}
		if cat.Treasury.Fields[tenor] == "" {
			t.Fatalf("expected a treasury field for %s", tenor)
		}
	}
	if cat.FRED.Series.Candidates(domain.Tenor10Y)[0] != "DGS10" {
		t.Fatalf("unexpected 10Y series: %v", cat.FRED.Series[domain.Tenor10Y])
	}

	urls := cat.Treasury.EndpointURLs()
	if len(urls) != 3 {
		t.Fatalf("expected 3 treasury endpoints, got %d", len(urls))
	}
	want := "https://api.fiscaldata.treasury.gov/services/api/fiscal_service/v2/accounting/od/daily_treasury_par_yield_curve"
	if urls[0] != want {
		t.Fatalf("unexpected first endpoint: %s", urls[0])
	}
}

func TestDefaultValetGroups(t *testing.T) {
	cat, err := Default()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cat.Valet.Groups) != 2 {
		t.Fatalf("expected 2 valet groups, got %d", len(cat.Valet.Groups))
	}

	tbill, ok := cat.Valet.GroupFor(domain.Tenor3M)
	if !ok || tbill.Name != "TBILL_ALL" || tbill.Recent != 30 {
		t.Fatalf("unexpected 3M group: %+v", tbill)
	}
	if !reflect.DeepEqual(tbill.Series.Candidates(domain.Tenor3M), []string{"V80691344", "V80691303"}) {
		t.Fatalf("unexpected 3M candidates: %v", tbill.Series[domain.Tenor3M])
	}

	bench, ok := cat.Valet.GroupFor(domain.Tenor20Y)
	if !ok || bench.Name != "bond_yields_benchmark" || bench.Recent != 60 {
		t.Fatalf("unexpected 20Y group: %+v", bench)
	}
	if len(bench.Series.Candidates(domain.Tenor20Y)) != 0 {
		t.Fatalf("20Y must be unsupported, got %v", bench.Series[domain.Tenor20Y])
	}
	if bench.Substitutes[domain.Tenor30Y] == "" {
		t.Fatal("30Y substitution must be documented")
	}
	if _, ok := bench.Substitutes[domain.Tenor10Y]; ok {
		t.Fatal("10Y is not a substitution")
	}
}

func TestParseRejectsUnknownTenor(t *testing.T) {
	doc := []byte(`
fred:
  series:
    15Y: [DGS15]
treasury:
  endpoints: [/x]
`)
	if _, err := Parse(doc); !errors.Is(err, domain.ErrUnsupportedTenor) {
		t.Fatalf("expected ErrUnsupportedTenor, got %v", err)
	}
}

func TestParseRejectsDuplicateValetTenor(t *testing.T) {
	doc := []byte(`
treasury:
  endpoints: [/x]
valet:
  groups:
    - name: a
      series:
        2y: [X]
    - name: b
      series:
        2Y: [Y]
`)
	if _, err := Parse(doc); err == nil {
		t.Fatal("expected duplicate tenor error")
	}
}

func TestParseNormalisesKeys(t *testing.T) {
	doc := []byte(`
fred:
  series:
    " 10y": [" DGS10 ", ""]
treasury:
  base_url: https://example.com/
  endpoints: [v1/a, "https://other.example/b"]
`)
	cat, err := Parse(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(cat.FRED.Series[domain.Tenor10Y], []string{"DGS10"}) {
		t.Fatalf("unexpected series: %v", cat.FRED.Series)
	}
	if cat.Treasury.DateField != "record_date" {
		t.Fatalf("expected default date field, got %q", cat.Treasury.DateField)
	}
	want := []string{"https://example.com/v1/a", "https://other.example/b"}
	if !reflect.DeepEqual(cat.Treasury.EndpointURLs(), want) {
		t.Fatalf("unexpected endpoints: %v", cat.Treasury.EndpointURLs())
	}
}
