package fpbase

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is an opaque entity identifier. The remote schema has served both
// string and integer identifiers across protocol revisions, so an ID
// unmarshals from either form and normalizes to the string representation.
type ID string

// UnmarshalJSON accepts a JSON string or number.
func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID(s)

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w, got %s", ErrInvalidID, string(data))
	}

	*id = ID(n.String())

	return nil
}

// String returns the canonical string form of the identifier.
func (id ID) String() string {
	return string(id)
}

// Int coerces the identifier to an integer, for query variables whose
// wire type is Int.
func (id ID) Int() (int, error) {
	n, err := strconv.Atoi(string(id))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNonNumericID, string(id))
	}

	return n, nil
}

// SpectrumType tags a spectrum curve with its physical meaning.
type SpectrumType string

// Spectrum subtypes served by the remote schema. EX, AB, and EM tag
// excitation, absorption, and emission curves; A_2P is two-photon
// absorption; BP, LP, SP, and BS tag bandpass, longpass, shortpass, and
// beamsplitter filter profiles (BX and BM are the excitation and emission
// bandpass variants); QE is camera quantum efficiency and PD light-source
// power density.
const (
	SpectrumTypeA2P SpectrumType = "A_2P"
	SpectrumTypeAB  SpectrumType = "AB"
	SpectrumTypeBM  SpectrumType = "BM"
	SpectrumTypeBP  SpectrumType = "BP"
	SpectrumTypeBS  SpectrumType = "BS"
	SpectrumTypeBX  SpectrumType = "BX"
	SpectrumTypeEM  SpectrumType = "EM"
	SpectrumTypeEX  SpectrumType = "EX"
	SpectrumTypeLP  SpectrumType = "LP"
	SpectrumTypePD  SpectrumType = "PD"
	SpectrumTypeQE  SpectrumType = "QE"
	SpectrumTypeSP  SpectrumType = "SP"
)

var validSpectrumTypes = map[SpectrumType]struct{}{
	SpectrumTypeA2P: {},
	SpectrumTypeAB:  {},
	SpectrumTypeBM:  {},
	SpectrumTypeBP:  {},
	SpectrumTypeBS:  {},
	SpectrumTypeBX:  {},
	SpectrumTypeEM:  {},
	SpectrumTypeEX:  {},
	SpectrumTypeLP:  {},
	SpectrumTypePD:  {},
	SpectrumTypeQE:  {},
	SpectrumTypeSP:  {},
}

// Valid reports whether the subtype is a member of the closed set.
func (s SpectrumType) Valid() bool {
	_, ok := validSpectrumTypes[s]

	return ok
}

// FilterPath places a filter in the excitation path, the emission path,
// or as a beamsplitter.
type FilterPath string

// Filter placement paths.
const (
	FilterPathEX FilterPath = "EX"
	FilterPathEM FilterPath = "EM"
	FilterPathBS FilterPath = "BS"
)

// Valid reports whether the path is a member of the closed set.
func (p FilterPath) Valid() bool {
	switch p {
	case FilterPathEX, FilterPathEM, FilterPathBS:
		return true
	default:
		return false
	}
}

// Oligomerization tags a protein's aggregation state.
type Oligomerization string

// Oligomerization states.
const (
	OligomerizationMonomer     Oligomerization = "M"
	OligomerizationDimer       Oligomerization = "D"
	OligomerizationTandemDimer Oligomerization = "TD"
	OligomerizationWeakDimer   Oligomerization = "WD"
	OligomerizationTetramer    Oligomerization = "T"
)

// Valid reports whether the tag is a member of the closed set.
func (o Oligomerization) Valid() bool {
	switch o {
	case OligomerizationMonomer, OligomerizationDimer, OligomerizationTandemDimer,
		OligomerizationWeakDimer, OligomerizationTetramer:
		return true
	default:
		return false
	}
}

// SwitchType tags a protein's photoswitching behavior.
type SwitchType string

// Photoswitching types.
const (
	SwitchTypeBasic             SwitchType = "B"
	SwitchTypePhotoactivatable  SwitchType = "PA"
	SwitchTypePhotoswitchable   SwitchType = "PS"
	SwitchTypePhotoconvertible  SwitchType = "PC"
	SwitchTypeMultiphotochromic SwitchType = "MP"
	SwitchTypeTimer             SwitchType = "T"
	SwitchTypeOther             SwitchType = "O"
)

// Valid reports whether the tag is a member of the closed set.
func (s SwitchType) Valid() bool {
	switch s {
	case SwitchTypeBasic, SwitchTypePhotoactivatable, SwitchTypePhotoswitchable,
		SwitchTypePhotoconvertible, SwitchTypeMultiphotochromic, SwitchTypeTimer,
		SwitchTypeOther:
		return true
	default:
		return false
	}
}

// SpectrumPoint is one (wavelength, value) sample of a spectrum curve.
type SpectrumPoint [2]float64

// Wavelength returns the sample's wavelength in nanometers.
func (p SpectrumPoint) Wavelength() float64 {
	return p[0]
}

// Value returns the sample's intensity or transmission value.
func (p SpectrumPoint) Value() float64 {
	return p[1]
}

// Spectrum is an ordered wavelength/value curve tagged with a subtype.
// Peripheral payloads (spectra nested inside microscope configurations)
// may omit the identifier.
type Spectrum struct {
	ID      ID              `json:"id,omitempty" yaml:"id,omitempty"`
	Subtype SpectrumType    `json:"subtype"      yaml:"subtype"`
	Data    []SpectrumPoint `json:"data"         yaml:"data"`

	// Owner back-references are populated only by the spectrum detail
	// query; at most one is non-nil.
	OwnerFilter *Filter      `json:"ownerFilter,omitempty" yaml:"ownerFilter,omitempty"`
	OwnerCamera *Camera      `json:"ownerCamera,omitempty" yaml:"ownerCamera,omitempty"`
	OwnerLight  *LightSource `json:"ownerLight,omitempty"  yaml:"ownerLight,omitempty"`
}

// SpectrumOwner is the shared shape of filter, camera, and light source
// records: an identifier, a display name, and exactly one owned spectrum.
type SpectrumOwner struct {
	ID       ID       `json:"id,omitempty" yaml:"id,omitempty"`
	Name     string   `json:"name"         yaml:"name"`
	Spectrum Spectrum `json:"spectrum"     yaml:"spectrum"`
}

// Filter is an optical filter with its transmission spectrum.
type Filter struct {
	SpectrumOwner `yaml:",inline"`

	Manufacturer string   `json:"manufacturer,omitempty" yaml:"manufacturer,omitempty"`
	Bandcenter   *float64 `json:"bandcenter,omitempty"   yaml:"bandcenter,omitempty"`
	Bandwidth    *float64 `json:"bandwidth,omitempty"    yaml:"bandwidth,omitempty"`
	Edge         *float64 `json:"edge,omitempty"         yaml:"edge,omitempty"`
}

// Camera is a detector with its quantum efficiency spectrum.
type Camera struct {
	SpectrumOwner `yaml:",inline"`

	Manufacturer string `json:"manufacturer,omitempty" yaml:"manufacturer,omitempty"`
}

// LightSource is an illumination source with its emission spectrum.
type LightSource struct {
	SpectrumOwner `yaml:",inline"`

	Manufacturer string `json:"manufacturer,omitempty" yaml:"manufacturer,omitempty"`
}

// State is one spectral/photophysical configuration of a fluorophore.
type State struct {
	ID       ID         `json:"id"                 yaml:"id"`
	Name     string     `json:"name"               yaml:"name"`
	ExMax    *float64   `json:"exMax,omitempty"    yaml:"exMax,omitempty"`
	EmMax    *float64   `json:"emMax,omitempty"    yaml:"emMax,omitempty"`
	ExHex    string     `json:"exhex,omitempty"    yaml:"exhex,omitempty"`
	EmHex    string     `json:"emhex,omitempty"    yaml:"emhex,omitempty"`
	ExtCoeff *float64   `json:"extCoeff,omitempty" yaml:"extCoeff,omitempty"`
	QY       *float64   `json:"qy,omitempty"       yaml:"qy,omitempty"`
	Lifetime *float64   `json:"lifetime,omitempty" yaml:"lifetime,omitempty"`
	Spectra  []Spectrum `json:"spectra"            yaml:"spectra"`
}

// ExcitationSpectrum returns the first excitation-tagged spectrum,
// falling back to the first absorption-tagged spectrum, or nil when the
// state has neither.
func (s *State) ExcitationSpectrum() *Spectrum {
	for i := range s.Spectra {
		if s.Spectra[i].Subtype == SpectrumTypeEX {
			return &s.Spectra[i]
		}
	}

	for i := range s.Spectra {
		if s.Spectra[i].Subtype == SpectrumTypeAB {
			return &s.Spectra[i]
		}
	}

	return nil
}

// EmissionSpectrum returns the first emission-tagged spectrum, or nil.
func (s *State) EmissionSpectrum() *Spectrum {
	for i := range s.Spectra {
		if s.Spectra[i].Subtype == SpectrumTypeEM {
			return &s.Spectra[i]
		}
	}

	return nil
}

// Fluorophore is a dye or protein with one or more spectral states.
// DefaultState aliases a member of States; it is resolved from the
// payload's state reference, falling back to the first state.
type Fluorophore struct {
	Name         string  `json:"name"                   yaml:"name"`
	ID           ID      `json:"id"                     yaml:"id"`
	States       []State `json:"states"                 yaml:"states"`
	DefaultState *State  `json:"defaultState,omitempty" yaml:"defaultState,omitempty"`
}

// Reference is a literature reference identified by DOI.
type Reference struct {
	DOI string `json:"doi" yaml:"doi"`
}

// URL returns the DOI resolver URL for the reference.
func (r Reference) URL() string {
	return "https://doi.org/" + r.DOI
}

// Protein is a fluorescent protein with sequence, cross-reference, and
// literature data in addition to the fluorophore fields.
type Protein struct {
	Fluorophore `yaml:",inline"`

	Seq              string          `json:"seq,omitempty"              yaml:"seq,omitempty"`
	PDB              []string        `json:"pdb"                        yaml:"pdb"`
	Genbank          string          `json:"genbank,omitempty"          yaml:"genbank,omitempty"`
	Uniprot          string          `json:"uniprot,omitempty"          yaml:"uniprot,omitempty"`
	MolecularWeight  *float64        `json:"mw,omitempty"               yaml:"mw,omitempty"`
	Agg              Oligomerization `json:"agg,omitempty"              yaml:"agg,omitempty"`
	SwitchType       SwitchType      `json:"switchType,omitempty"       yaml:"switchType,omitempty"`
	PrimaryReference *Reference      `json:"primaryReference,omitempty" yaml:"primaryReference,omitempty"`
	References       []Reference     `json:"references"                 yaml:"references"`
}

// FilterPlacement positions a filter within an optical configuration.
type FilterPlacement struct {
	Path     FilterPath `json:"path"     yaml:"path"`
	Filter   Filter     `json:"filter"   yaml:"filter"`
	Reflects bool       `json:"reflects" yaml:"reflects"`
}

// OpticalConfig is one imaging channel: a named combination of filter
// placements, an optional camera, an optional light source, and an
// optional laser wavelength in nanometers.
type OpticalConfig struct {
	Name    string            `json:"name"             yaml:"name"`
	Filters []FilterPlacement `json:"filters"          yaml:"filters"`
	Camera  *Camera           `json:"camera,omitempty" yaml:"camera,omitempty"`
	Light   *LightSource      `json:"light,omitempty"  yaml:"light,omitempty"`
	Laser   *int              `json:"laser,omitempty"  yaml:"laser,omitempty"`
}

// Microscope is a configured instrument with its optical configurations.
type Microscope struct {
	ID             ID              `json:"id"             yaml:"id"`
	Name           string          `json:"name"           yaml:"name"`
	OpticalConfigs []OpticalConfig `json:"opticalConfigs" yaml:"opticalConfigs"`
}

// MicroscopeSummary identifies a microscope in listing results. The ID is
// the key accepted by the microscope getter; the name is a display alias.
type MicroscopeSummary struct {
	ID   ID     `json:"id"   yaml:"id"`
	Name string `json:"name" yaml:"name"`
}
