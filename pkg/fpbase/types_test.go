package fpbase_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tlambert03/fpbase-go/pkg/fpbase"
)

func TestID_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected fpbase.ID
		wantErr  bool
	}{
		{name: "string", input: `"R9NL8"`, expected: fpbase.ID("R9NL8")},
		{name: "integer", input: `169`, expected: fpbase.ID("169")},
		{name: "large integer keeps digits", input: `9007199254740993`, expected: fpbase.ID("9007199254740993")},
		{name: "boolean rejected", input: `true`, wantErr: true},
		{name: "object rejected", input: `{}`, wantErr: true},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var id fpbase.ID

			err := json.Unmarshal([]byte(testCase.input), &id)
			if testCase.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, fpbase.ErrInvalidID)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, testCase.expected, id)
		})
	}
}

func TestID_Int(t *testing.T) {
	t.Parallel()

	n, err := fpbase.ID("169").Int()
	require.NoError(t, err)
	assert.Equal(t, 169, n)

	_, err = fpbase.ID("R9NL8").Int()
	require.Error(t, err)
	assert.ErrorIs(t, err, fpbase.ErrNonNumericID)
	assert.True(t, fpbase.IsInvalidArgument(err))
}

func TestSpectrumType_Valid(t *testing.T) {
	t.Parallel()

	valid := []fpbase.SpectrumType{
		fpbase.SpectrumTypeA2P, fpbase.SpectrumTypeAB, fpbase.SpectrumTypeBM,
		fpbase.SpectrumTypeBP, fpbase.SpectrumTypeBS, fpbase.SpectrumTypeBX,
		fpbase.SpectrumTypeEM, fpbase.SpectrumTypeEX, fpbase.SpectrumTypeLP,
		fpbase.SpectrumTypePD, fpbase.SpectrumTypeQE, fpbase.SpectrumTypeSP,
	}
	for _, subtype := range valid {
		assert.True(t, subtype.Valid(), "subtype %s", subtype)
	}

	assert.False(t, fpbase.SpectrumType("").Valid())
	assert.False(t, fpbase.SpectrumType("ex").Valid())
	assert.False(t, fpbase.SpectrumType("2P").Valid())
}

func TestFilterPath_Valid(t *testing.T) {
	t.Parallel()

	assert.True(t, fpbase.FilterPathEX.Valid())
	assert.True(t, fpbase.FilterPathEM.Valid())
	assert.True(t, fpbase.FilterPathBS.Valid())
	assert.False(t, fpbase.FilterPath("DICHROIC").Valid())
}

func TestOligomerizationAndSwitchType_Valid(t *testing.T) {
	t.Parallel()

	assert.True(t, fpbase.OligomerizationMonomer.Valid())
	assert.True(t, fpbase.OligomerizationTandemDimer.Valid())
	assert.False(t, fpbase.Oligomerization("X").Valid())

	assert.True(t, fpbase.SwitchTypeBasic.Valid())
	assert.True(t, fpbase.SwitchTypePhotoconvertible.Valid())
	assert.False(t, fpbase.SwitchType("X").Valid())
}

func TestState_SpectrumAccessors(t *testing.T) {
	t.Parallel()

	t.Run("excitation preferred over absorption", func(t *testing.T) {
		t.Parallel()

		state := &fpbase.State{Spectra: []fpbase.Spectrum{
			{Subtype: fpbase.SpectrumTypeAB},
			{Subtype: fpbase.SpectrumTypeEX},
			{Subtype: fpbase.SpectrumTypeEM},
		}}

		excitation := state.ExcitationSpectrum()
		require.NotNil(t, excitation)
		assert.Equal(t, fpbase.SpectrumTypeEX, excitation.Subtype)

		emission := state.EmissionSpectrum()
		require.NotNil(t, emission)
		assert.Equal(t, fpbase.SpectrumTypeEM, emission.Subtype)
	})

	t.Run("absorption fallback", func(t *testing.T) {
		t.Parallel()

		state := &fpbase.State{Spectra: []fpbase.Spectrum{
			{Subtype: fpbase.SpectrumTypeAB},
		}}

		excitation := state.ExcitationSpectrum()
		require.NotNil(t, excitation)
		assert.Equal(t, fpbase.SpectrumTypeAB, excitation.Subtype)
		assert.Nil(t, state.EmissionSpectrum())
	})

	t.Run("no spectra", func(t *testing.T) {
		t.Parallel()

		state := &fpbase.State{}
		assert.Nil(t, state.ExcitationSpectrum())
		assert.Nil(t, state.EmissionSpectrum())
	})
}

func TestReference_URL(t *testing.T) {
	t.Parallel()

	ref := fpbase.Reference{DOI: "10.1038/nmeth.2413"}
	assert.Equal(t, "https://doi.org/10.1038/nmeth.2413", ref.URL())
}

func TestSpectrumPoint_Accessors(t *testing.T) {
	t.Parallel()

	point := fpbase.SpectrumPoint{488.0, 0.97}
	assert.InDelta(t, 488.0, point.Wavelength(), 0)
	assert.InDelta(t, 0.97, point.Value(), 0)
}
