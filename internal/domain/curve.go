package domain

import "time"

// Jurisdiction identifies the sovereign issuer of a curve.
type Jurisdiction string

const (
	JurisdictionUS Jurisdiction = "US"
	JurisdictionCA Jurisdiction = "CA"
)

// JurisdictionNames holds the chart and report labels per jurisdiction.
var JurisdictionNames = map[Jurisdiction]string{
	JurisdictionUS: "US Treasury",
	JurisdictionCA: "Government of Canada",
}

// Name returns the display label for j.
func (j Jurisdiction) Name() string {
	if n, ok := JurisdictionNames[j]; ok {
		return n
	}
	return string(j)
}

// SourceKind tags the closed set of provider adapter variants.
type SourceKind string

const (
	SourceKeyedSeries      SourceKind = "keyed_series"
	SourceKeylessAggregate SourceKind = "keyless_aggregate"
	SourceKeylessSeries    SourceKind = "keyless_series"
	SourceGroupedSeries    SourceKind = "grouped_series"
)

// Observation is one tenor's latest value from a provider.
type Observation struct {
	Tenor    Tenor  `json:"tenor"`
	Yield    Yield  `json:"-"`
	AsOf     string `json:"as_of,omitempty"`
	SeriesID string `json:"series_id,omitempty"`
	// Substitute documents a related series standing in for the tenor.
	Substitute string `json:"substitute,omitempty"`
}

// SourceResult is what a provider adapter returns for a set of requested tenors.
// Observations holds exactly one entry per requested tenor.
type SourceResult struct {
	Source       string
	Kind         SourceKind
	AsOf         string
	Observations map[Tenor]Observation
}

// NewSourceResult returns a result with every tenor present and absent.
func NewSourceResult(source string, kind SourceKind, tenors []Tenor) SourceResult {
	obs := make(map[Tenor]Observation, len(tenors))
	for _, t := range tenors {
		obs[t] = Observation{Tenor: t}
	}
	return SourceResult{Source: source, Kind: kind, Observations: obs}
}

// AllAbsent reports whether none of tenors has a present value.
func (r SourceResult) AllAbsent(tenors []Tenor) bool {
	for _, t := range tenors {
		if r.Observations[t].Yield.Present() {
			return false
		}
	}
	return true
}

// Covered counts the tenors with a usable value.
func (r SourceResult) Covered(tenors []Tenor) int {
	n := 0
	for _, t := range tenors {
		if r.Observations[t].Yield.Usable() {
			n++
		}
	}
	return n
}

// SourceAttempt records one adapter invocation made while resolving a curve.
type SourceAttempt struct {
	Source  string     `json:"source"`
	Kind    SourceKind `json:"kind"`
	Covered int        `json:"covered"`
	AsOf    string     `json:"as_of,omitempty"`
}

// Curve is one jurisdiction's tenor to yield mapping for the requested tenors.
type Curve struct {
	Jurisdiction Jurisdiction
	Source       string
	AsOf         string
	Tenors       []Tenor
	Observations map[Tenor]Observation
	Attempts     []SourceAttempt
	FetchedAt    time.Time
}

// Yield returns the value at t, absent when t was not requested.
func (c Curve) Yield(t Tenor) Yield {
	return c.Observations[t].Yield
}

// Values renders the curve as label to value for diagnostics; absent is nil.
func (c Curve) Values() map[string]*float64 {
	out := make(map[string]*float64, len(c.Tenors))
	for _, t := range c.Tenors {
		out[string(t)] = c.Yield(t).Ptr()
	}
	return out
}

// Substitutions lists the documented series substitutions behind usable values.
func (c Curve) Substitutions() map[Tenor]string {
	out := map[Tenor]string{}
	for _, t := range c.Tenors {
		o := c.Observations[t]
		if o.Substitute != "" && o.Yield.Usable() {
			out[t] = o.Substitute
		}
	}
	return out
}
