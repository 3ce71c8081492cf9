package fpbase

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// graphQLEnvelope is the GraphQL-over-HTTP response wrapper.
type graphQLEnvelope struct {
	Data   json.RawMessage      `json:"data"`
	Errors []GraphQLErrorDetail `json:"errors"`
}

// ParseMicroscopeResponse decodes and validates a microscope detail
// response body.
func ParseMicroscopeResponse(body []byte) (*Microscope, error) {
	var payload struct {
		Microscope *Microscope `json:"microscope"`
	}

	if err := UnmarshalData(body, &payload); err != nil {
		return nil, err
	}

	if payload.Microscope == nil {
		return nil, &ValidationError{Path: "data.microscope", Message: "missing required object"}
	}

	scope := payload.Microscope
	scope.normalize()

	if err := scope.validate("data.microscope"); err != nil {
		return nil, err
	}

	return scope, nil
}

// ParseProteinResponse decodes and validates a protein detail response
// body.
func ParseProteinResponse(body []byte) (*Protein, error) {
	var payload struct {
		Protein json.RawMessage `json:"protein"`
	}

	if err := UnmarshalData(body, &payload); err != nil {
		return nil, err
	}

	if rawIsNull(payload.Protein) {
		return nil, &ValidationError{Path: "data.protein", Message: "missing required object"}
	}

	normalized, err := NormalizeFluorophorePayload(payload.Protein)
	if err != nil {
		return nil, wrapDecodeError(err, "data.protein")
	}

	var protein Protein
	if err := json.Unmarshal(normalized, &protein); err != nil {
		return nil, wrapDecodeError(err, "data.protein")
	}

	protein.normalize()
	protein.resolveDefaultState()

	if err := protein.validate("data.protein"); err != nil {
		return nil, err
	}

	return &protein, nil
}

// ParseDyeResponse decodes and validates a dye detail response body. Dye
// payloads inline a single state's spectral fields at the top level, so
// the payload is rewritten into the general one-state form first.
func ParseDyeResponse(body []byte) (*Fluorophore, error) {
	var payload struct {
		Dye json.RawMessage `json:"dye"`
	}

	if err := UnmarshalData(body, &payload); err != nil {
		return nil, err
	}

	if rawIsNull(payload.Dye) {
		return nil, &ValidationError{Path: "data.dye", Message: "missing required object"}
	}

	normalized, err := NormalizeFluorophorePayload(payload.Dye)
	if err != nil {
		return nil, wrapDecodeError(err, "data.dye")
	}

	var fluor Fluorophore
	if err := json.Unmarshal(normalized, &fluor); err != nil {
		return nil, wrapDecodeError(err, "data.dye")
	}

	fluor.normalize()
	fluor.resolveDefaultState()

	if err := fluor.validate("data.dye"); err != nil {
		return nil, err
	}

	return &fluor, nil
}

// ParseSpectrumResponse decodes and validates a spectrum detail response
// body, including whichever owner back-reference the payload populates.
func ParseSpectrumResponse(body []byte) (*Spectrum, error) {
	var payload struct {
		Spectrum *Spectrum `json:"spectrum"`
	}

	if err := UnmarshalData(body, &payload); err != nil {
		return nil, err
	}

	if payload.Spectrum == nil {
		return nil, &ValidationError{Path: "data.spectrum", Message: "missing required object"}
	}

	spectrum := payload.Spectrum
	spectrum.normalize()

	if err := spectrum.validate("data.spectrum"); err != nil {
		return nil, err
	}

	return spectrum, nil
}

// ParseDataResponse decodes a response body into the raw data mapping
// without entity validation, for callers issuing their own queries.
func ParseDataResponse(body []byte) (map[string]interface{}, error) {
	var data map[string]interface{}
	if err := UnmarshalData(body, &data); err != nil {
		return nil, err
	}

	return data, nil
}

// NormalizeFluorophorePayload rewrites the single-state detail shape
// (spectral fields inlined at the top level, no states key) into the
// general form whose sole state is also the default. Payloads already
// carrying a states key pass through unchanged. This transform runs on
// the loosely typed payload before strict validation.
func NormalizeFluorophorePayload(raw json.RawMessage) (json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}

	if _, ok := fields["states"]; ok {
		return raw, nil
	}

	if _, ok := fields["exMax"]; !ok {
		return raw, nil
	}

	state := make([]byte, 0, len(raw)+2)
	state = append(state, '[')
	state = append(state, raw...)
	state = append(state, ']')

	fields["states"] = json.RawMessage(state)
	fields["defaultState"] = raw

	rewritten, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}

	return rewritten, nil
}

// UnmarshalData unwraps the GraphQL envelope and decodes the data field
// into out. Envelope errors take precedence over shape problems. The
// typed Parse functions are built on this; it is exported for callers
// decoding their own query responses.
func UnmarshalData(body []byte, out interface{}) error {
	var envelope graphQLEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return wrapDecodeError(err, "data")
	}

	if len(envelope.Errors) > 0 {
		return &GraphQLError{Errors: envelope.Errors}
	}

	if rawIsNull(envelope.Data) {
		return &ValidationError{Path: "data", Message: "missing response data"}
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return wrapDecodeError(err, "data")
	}

	return nil
}

// wrapDecodeError converts encoding/json failures into field-path
// qualified validation errors.
func wrapDecodeError(err error, root string) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		path := root
		if typeErr.Field != "" {
			path = root + "." + typeErr.Field
		}

		return &ValidationError{
			Path:    path,
			Message: fmt.Sprintf("cannot decode %s into %s", typeErr.Value, typeErr.Type),
		}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &ValidationError{
			Path:    root,
			Message: fmt.Sprintf("malformed JSON at offset %d: %v", syntaxErr.Offset, err),
		}
	}

	if errors.Is(err, ErrInvalidID) {
		return &ValidationError{Path: root, Message: err.Error()}
	}

	return err
}

func rawIsNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)

	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func (s *Spectrum) normalize() {
	if s.Data == nil {
		s.Data = []SpectrumPoint{}
	}

	if s.OwnerFilter != nil {
		s.OwnerFilter.Spectrum.normalize()
	}

	if s.OwnerCamera != nil {
		s.OwnerCamera.Spectrum.normalize()
	}

	if s.OwnerLight != nil {
		s.OwnerLight.Spectrum.normalize()
	}
}

func (s *Spectrum) validate(path string) error {
	if s.Subtype == "" {
		return &ValidationError{Path: path + ".subtype", Message: "missing required field"}
	}

	if !s.Subtype.Valid() {
		return &ValidationError{Path: path + ".subtype", Message: fmt.Sprintf("unknown spectrum subtype %q", s.Subtype)}
	}

	if s.OwnerFilter != nil {
		if err := s.OwnerFilter.validate(path + ".ownerFilter"); err != nil {
			return err
		}
	}

	if s.OwnerCamera != nil {
		if err := s.OwnerCamera.validate(path + ".ownerCamera"); err != nil {
			return err
		}
	}

	if s.OwnerLight != nil {
		if err := s.OwnerLight.validate(path + ".ownerLight"); err != nil {
			return err
		}
	}

	return nil
}

func (o *SpectrumOwner) validate(path string) error {
	if o.Name == "" {
		return &ValidationError{Path: path + ".name", Message: "missing required field"}
	}

	return o.Spectrum.validate(path + ".spectrum")
}

func (f *Filter) validate(path string) error {
	return f.SpectrumOwner.validate(path)
}

func (c *Camera) validate(path string) error {
	return c.SpectrumOwner.validate(path)
}

func (l *LightSource) validate(path string) error {
	return l.SpectrumOwner.validate(path)
}

func (s *State) normalize() {
	if s.Spectra == nil {
		s.Spectra = []Spectrum{}
	}

	for i := range s.Spectra {
		s.Spectra[i].normalize()
	}
}

func (s *State) validate(path string) error {
	if s.ID == "" {
		return &ValidationError{Path: path + ".id", Message: "missing required field"}
	}

	if s.Name == "" {
		return &ValidationError{Path: path + ".name", Message: "missing required field"}
	}

	for i := range s.Spectra {
		if err := s.Spectra[i].validate(fmt.Sprintf("%s.spectra[%d]", path, i)); err != nil {
			return err
		}
	}

	return nil
}

func (f *Fluorophore) normalize() {
	if f.States == nil {
		f.States = []State{}
	}

	for i := range f.States {
		f.States[i].normalize()
	}
}

// resolveDefaultState replaces the payload's default-state reference with
// a pointer into States, matching by identifier and falling back to the
// first state, or to nil when there are no states.
func (f *Fluorophore) resolveDefaultState() {
	if len(f.States) == 0 {
		f.DefaultState = nil

		return
	}

	if f.DefaultState != nil {
		for i := range f.States {
			if f.States[i].ID == f.DefaultState.ID {
				f.DefaultState = &f.States[i]

				return
			}
		}
	}

	f.DefaultState = &f.States[0]
}

func (f *Fluorophore) validate(path string) error {
	if f.Name == "" {
		return &ValidationError{Path: path + ".name", Message: "missing required field"}
	}

	if f.ID == "" {
		return &ValidationError{Path: path + ".id", Message: "missing required field"}
	}

	for i := range f.States {
		if err := f.States[i].validate(fmt.Sprintf("%s.states[%d]", path, i)); err != nil {
			return err
		}
	}

	return nil
}

func (p *Protein) normalize() {
	p.Fluorophore.normalize()

	if p.PDB == nil {
		p.PDB = []string{}
	}

	if p.References == nil {
		p.References = []Reference{}
	}
}

func (p *Protein) validate(path string) error {
	if err := p.Fluorophore.validate(path); err != nil {
		return err
	}

	if p.Agg != "" && !p.Agg.Valid() {
		return &ValidationError{Path: path + ".agg", Message: fmt.Sprintf("unknown oligomerization %q", p.Agg)}
	}

	if p.SwitchType != "" && !p.SwitchType.Valid() {
		return &ValidationError{Path: path + ".switchType", Message: fmt.Sprintf("unknown switch type %q", p.SwitchType)}
	}

	if p.PrimaryReference != nil && p.PrimaryReference.DOI == "" {
		return &ValidationError{Path: path + ".primaryReference.doi", Message: "missing required field"}
	}

	for i, ref := range p.References {
		if ref.DOI == "" {
			return &ValidationError{Path: fmt.Sprintf("%s.references[%d].doi", path, i), Message: "missing required field"}
		}
	}

	return nil
}

func (p *FilterPlacement) validate(path string) error {
	if p.Path == "" {
		return &ValidationError{Path: path + ".path", Message: "missing required field"}
	}

	if !p.Path.Valid() {
		return &ValidationError{Path: path + ".path", Message: fmt.Sprintf("unknown filter path %q", p.Path)}
	}

	return p.Filter.validate(path + ".filter")
}

func (c *OpticalConfig) normalize() {
	if c.Filters == nil {
		c.Filters = []FilterPlacement{}
	}

	for i := range c.Filters {
		c.Filters[i].Filter.Spectrum.normalize()
	}

	if c.Camera != nil {
		c.Camera.Spectrum.normalize()
	}

	if c.Light != nil {
		c.Light.Spectrum.normalize()
	}
}

func (c *OpticalConfig) validate(path string) error {
	if c.Name == "" {
		return &ValidationError{Path: path + ".name", Message: "missing required field"}
	}

	for i := range c.Filters {
		if err := c.Filters[i].validate(fmt.Sprintf("%s.filters[%d]", path, i)); err != nil {
			return err
		}
	}

	if c.Camera != nil {
		if err := c.Camera.validate(path + ".camera"); err != nil {
			return err
		}
	}

	if c.Light != nil {
		if err := c.Light.validate(path + ".light"); err != nil {
			return err
		}
	}

	return nil
}

func (m *Microscope) normalize() {
	if m.OpticalConfigs == nil {
		m.OpticalConfigs = []OpticalConfig{}
	}

	for i := range m.OpticalConfigs {
		m.OpticalConfigs[i].normalize()
	}
}

func (m *Microscope) validate(path string) error {
	if m.ID == "" {
		return &ValidationError{Path: path + ".id", Message: "missing required field"}
	}

	if m.Name == "" {
		return &ValidationError{Path: path + ".name", Message: "missing required field"}
	}

	for i := range m.OpticalConfigs {
		if err := m.OpticalConfigs[i].validate(fmt.Sprintf("%s.opticalConfigs[%d]", path, i)); err != nil {
			return err
		}
	}

	return nil
}
