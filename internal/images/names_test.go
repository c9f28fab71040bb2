package images

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilename(t *testing.T) {
	v := VMax{Percentile: 99, Raw: 99.7}
	cases := map[string]string{
		MaskedRBand: "masked_r_band_vmax99p0.png",
		GalfitModel: "galfit_model_vmax99p0.png",
		Residual:    "residual_vmax99p0.png",
		RawRBand:    "raw_r_band_vmax99p7.png",
		APLpy:       "aplpy.png",
		Lupton:      "lupton.png",
	}
	for base, want := range cases {
		assert.Equal(t, want, Filename(base, v), base)
	}
	assert.Equal(t, "residual_vmaxm1p5.png", Filename(Residual, VMax{Percentile: -1.5}))
}

func TestParseFilename(t *testing.T) {
	cases := []struct {
		name     string
		wantBase string
		wantVMax VMax
	}{
		{name: "masked_r_band_vmax98p5.png", wantBase: MaskedRBand, wantVMax: VMax{Percentile: 98.5, Raw: 99.7}},
		{name: "raw_r_band_vmax99p9.png", wantBase: RawRBand, wantVMax: VMax{Percentile: 99.0, Raw: 99.9}},
		{name: "lupton.png", wantBase: Lupton, wantVMax: DefaultVMax},
		{name: "residual_vmaxm2p0.png", wantBase: Residual, wantVMax: VMax{Percentile: -2, Raw: 99.7}},
	}
	for _, tc := range cases {
		base, v := ParseFilename(tc.name, DefaultVMax)
		assert.Equal(t, tc.wantBase, base, tc.name)
		assert.InDelta(t, tc.wantVMax.Percentile, v.Percentile, 1e-9, tc.name)
		assert.InDelta(t, tc.wantVMax.Raw, v.Raw, 1e-9, tc.name)
	}
}

func TestFilenameRoundTrip(t *testing.T) {
	v := VMax{Percentile: 97.25, Raw: 99.95}
	for _, base := range BaseNames {
		gotBase, gotV := ParseFilename(Filename(base, v), DefaultVMax)
		assert.Equal(t, base, gotBase)
		if e := v.Expected(base); e != nil {
			assert.Equal(t, *e, *gotV.Expected(base), base)
		}
	}
}

func TestExpected(t *testing.T) {
	assert.Nil(t, DefaultVMax.Expected(APLpy))
	assert.Equal(t, 99.7, *DefaultVMax.Expected(RawRBand))
	assert.Equal(t, 99.0, *DefaultVMax.Expected(GalfitModel))
}
