package client

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"

	"github.com/tlambert03/fpbase-go/internal/constants"
	"github.com/tlambert03/fpbase-go/pkg/fpbase"
)

// FluorophoreKind discriminates the combined dye/protein lookup table.
type FluorophoreKind string

// Fluorophore kinds.
const (
	KindDye     FluorophoreKind = "dye"
	KindProtein FluorophoreKind = "protein"
)

// OwnerCategory is the one-letter spectrum category code of a hardware
// family in the bulk listing query.
type OwnerCategory string

// Spectrum owner categories.
const (
	CategoryFilter OwnerCategory = "F"
	CategoryCamera OwnerCategory = "C"
	CategoryLight  OwnerCategory = "L"
)

// familyName returns the user-facing family name used in error messages.
func (c OwnerCategory) familyName() string {
	switch c {
	case CategoryFilter:
		return "filter"
	case CategoryCamera:
		return "camera"
	case CategoryLight:
		return "light source"
	default:
		return "spectrum owner"
	}
}

// FluorophoreEntry is one resolved fluorophore lookup result.
type FluorophoreEntry struct {
	ID   fpbase.ID
	Kind FluorophoreKind
	Name string
}

// OwnerEntry is one resolved hardware lookup result: the identifier of
// the spectrum the record owns, plus the display name.
type OwnerEntry struct {
	SpectrumID fpbase.ID
	Name       string
}

// queryFunc issues one query through the response cache and returns the
// raw body.
type queryFunc func(ctx context.Context, query string, variables map[string]interface{}) ([]byte, error)

// Resolver maps loosely formatted user names to canonical identifiers.
// Each entity family has one lazily built lookup table, derived from a
// single bulk listing query; once built, resolution is a pure in-memory
// lookup. Misses fall back to a closest-match suggestion.
type Resolver struct {
	query queryFunc

	mu           sync.Mutex
	fluorophores map[string]FluorophoreEntry
	owners       map[OwnerCategory]map[string]OwnerEntry
}

// NewResolver creates a resolver issuing lookup queries through query.
func NewResolver(query queryFunc) *Resolver {
	return &Resolver{
		query:  query,
		owners: make(map[OwnerCategory]map[string]OwnerEntry),
	}
}

// normalizeFluorophoreName lower-cases a fluorophore query. Display
// names, slugs, and protein identifiers are all indexed lower-cased.
func normalizeFluorophoreName(name string) string {
	return strings.ToLower(name)
}

// normalizeOwnerName lower-cases a hardware name and hyphenates spaces
// and slashes, so "Chroma ET525/50m" and "chroma-et525-50m" collide.
func normalizeOwnerName(name string) string {
	normed := strings.ToLower(name)
	normed = strings.ReplaceAll(normed, " ", "-")
	normed = strings.ReplaceAll(normed, "/", "-")

	return normed
}

// ResolveFluorophore maps a name, slug, or protein identifier to its
// entry in the combined dye/protein table.
func (r *Resolver) ResolveFluorophore(ctx context.Context, name string) (FluorophoreEntry, error) {
	table, err := r.fluorophoreTable(ctx)
	if err != nil {
		return FluorophoreEntry{}, err
	}

	key := normalizeFluorophoreName(name)
	if entry, ok := table[key]; ok {
		return entry, nil
	}

	return FluorophoreEntry{}, &fpbase.NotFoundError{
		Family:     "fluorophore",
		Query:      name,
		Suggestion: closestKey(key, table),
	}
}

// ResolveOwner maps a hardware name to its entry in the family's table.
func (r *Resolver) ResolveOwner(ctx context.Context, category OwnerCategory, name string) (OwnerEntry, error) {
	table, err := r.ownerTable(ctx, category)
	if err != nil {
		return OwnerEntry{}, err
	}

	key := normalizeOwnerName(name)
	if entry, ok := table[key]; ok {
		return entry, nil
	}

	return OwnerEntry{}, &fpbase.NotFoundError{
		Family:     category.familyName(),
		Query:      name,
		Suggestion: closestKey(key, table),
	}
}

// FluorophoreNames returns the sorted distinct display names known to
// the combined dye/protein table.
func (r *Resolver) FluorophoreNames(ctx context.Context) ([]string, error) {
	table, err := r.fluorophoreTable(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(table))
	names := make([]string, 0, len(table))

	for _, entry := range table {
		if _, ok := seen[entry.Name]; !ok {
			seen[entry.Name] = struct{}{}
			names = append(names, entry.Name)
		}
	}

	sort.Strings(names)

	return names, nil
}

// OwnerNames returns the sorted distinct display names known to the
// family's table.
func (r *Resolver) OwnerNames(ctx context.Context, category OwnerCategory) ([]string, error) {
	table, err := r.ownerTable(ctx, category)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(table))
	names := make([]string, 0, len(table))

	for _, entry := range table {
		if _, ok := seen[entry.Name]; !ok {
			seen[entry.Name] = struct{}{}
			names = append(names, entry.Name)
		}
	}

	sort.Strings(names)

	return names, nil
}

// Reset drops all built tables so the next resolution rebuilds them.
func (r *Resolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.fluorophores = nil
	r.owners = make(map[OwnerCategory]map[string]OwnerEntry)
}

// fluorophoreTable builds the combined dye/protein table on first use.
// The lock is held through the bulk query: concurrent first callers wait
// instead of fetching twice.
func (r *Resolver) fluorophoreTable(ctx context.Context) (map[string]FluorophoreEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.fluorophores != nil {
		return r.fluorophores, nil
	}

	body, err := r.query(ctx, fluorophoreLookupQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("listing fluorophores: %w", err)
	}

	var listing struct {
		Dyes []struct {
			ID   fpbase.ID `json:"id"`
			Name string    `json:"name"`
			Slug string    `json:"slug"`
		} `json:"dyes"`
		Proteins []struct {
			ID   fpbase.ID `json:"id"`
			Name string    `json:"name"`
			Slug string    `json:"slug"`
		} `json:"proteins"`
	}

	if err := fpbase.UnmarshalData(body, &listing); err != nil {
		return nil, fmt.Errorf("decoding fluorophore listing: %w", err)
	}

	table := make(map[string]FluorophoreEntry, 2*(len(listing.Dyes)+len(listing.Proteins)))

	for _, dye := range listing.Dyes {
		entry := FluorophoreEntry{ID: dye.ID, Kind: KindDye, Name: dye.Name}
		table[normalizeFluorophoreName(dye.Name)] = entry
		table[normalizeFluorophoreName(dye.Slug)] = entry
	}

	for _, protein := range listing.Proteins {
		entry := FluorophoreEntry{ID: protein.ID, Kind: KindProtein, Name: protein.Name}
		table[normalizeFluorophoreName(protein.Name)] = entry
		table[normalizeFluorophoreName(protein.Slug)] = entry
		table[normalizeFluorophoreName(protein.ID.String())] = entry
	}

	r.fluorophores = table

	return table, nil
}

// ownerTable builds one hardware family's table on first use.
func (r *Resolver) ownerTable(ctx context.Context, category OwnerCategory) (map[string]OwnerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if table, ok := r.owners[category]; ok {
		return table, nil
	}

	query := fmt.Sprintf(spectrumLookupQueryFormat, category)

	body, err := r.query(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("listing %ss: %w", category.familyName(), err)
	}

	var listing struct {
		Spectra []struct {
			ID    fpbase.ID `json:"id"`
			Owner struct {
				Name string `json:"name"`
			} `json:"owner"`
		} `json:"spectra"`
	}

	if err := fpbase.UnmarshalData(body, &listing); err != nil {
		return nil, fmt.Errorf("decoding %s listing: %w", category.familyName(), err)
	}

	table := make(map[string]OwnerEntry, len(listing.Spectra))
	for _, spectrum := range listing.Spectra {
		table[normalizeOwnerName(spectrum.Owner.Name)] = OwnerEntry{
			SpectrumID: spectrum.ID,
			Name:       spectrum.Owner.Name,
		}
	}

	r.owners[category] = table

	return table, nil
}

// closestKey returns the table key most similar to key, or empty when no
// key clears the similarity cutoff. Similarity is the Levenshtein ratio
// 1 - distance/max(len); only the single best candidate is offered.
func closestKey[V any](key string, table map[string]V) string {
	var (
		best      string
		bestRatio float64
	)

	for candidate := range table {
		ratio := similarity(key, candidate)
		if ratio > bestRatio || (ratio == bestRatio && best != "" && candidate < best) {
			best = candidate
			bestRatio = ratio
		}
	}

	if bestRatio < constants.SuggestionCutoff {
		return ""
	}

	return best
}

func similarity(a, b string) float64 {
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 1
	}

	distance := levenshtein.ComputeDistance(a, b)

	return 1 - float64(distance)/float64(longest)
}
