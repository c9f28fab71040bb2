package images

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

const (
	MaskedRBand = "masked_r_band"
	GalfitModel = "galfit_model"
	Residual    = "residual"
	RawRBand    = "raw_r_band"
	APLpy       = "aplpy"
	Lupton      = "lupton"
)

// BaseNames lists the images shown for a galaxy, in display order.
var BaseNames = []string{MaskedRBand, GalfitModel, Residual, RawRBand, APLpy, Lupton}

var titles = map[string]string{
	MaskedRBand: "Masked r-Band",
	GalfitModel: "GalfitModel",
	Residual:    "Residual",
	RawRBand:    "Raw r-band",
	APLpy:       "APLpy",
	Lupton:      "Zoomed out",
}

func Title(base string) string { return titles[base] }

// VMax holds the display percentiles: Percentile for the masked, model and
// residual panels, Raw for the raw r-band panel.
type VMax struct {
	Percentile float64
	Raw        float64
}

var DefaultVMax = VMax{Percentile: 99.0, Raw: 99.7}

func usesPercentile(base string) bool {
	return base == MaskedRBand || base == GalfitModel || base == Residual
}

// Expected returns the percentile a base image is rendered with, or nil for
// the color composites.
func (v VMax) Expected(base string) *float64 {
	switch {
	case usesPercentile(base):
		p := v.Percentile
		return &p
	case base == RawRBand:
		p := v.Raw
		return &p
	default:
		return nil
	}
}

// Filename encodes the percentile into the file name so that changing it
// produces a new file.
func Filename(base string, v VMax) string {
	switch {
	case usesPercentile(base):
		return base + "_vmax" + slug(v.Percentile) + ".png"
	case base == RawRBand:
		return base + "_vmax" + slug(v.Raw) + ".png"
	default:
		return base + ".png"
	}
}

var vmaxSuffix = regexp.MustCompile(`^(.*)_vmax([0-9pm]+)$`)

// ParseFilename inverts Filename. Values missing from the name come from
// defaults; an unparsable suffix is treated as part of the base name.
func ParseFilename(name string, defaults VMax) (string, VMax) {
	stem := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	m := vmaxSuffix.FindStringSubmatch(stem)
	if m == nil {
		return stem, defaults
	}
	p, err := strconv.ParseFloat(unslug(m[2]), 64)
	if err != nil {
		return stem, defaults
	}
	out := defaults
	if m[1] == RawRBand {
		out.Raw = p
	} else {
		out.Percentile = p
	}
	return m[1], out
}

// formatPercent always keeps a fractional part, so 99 renders as "99.0".
func formatPercent(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func slug(v float64) string {
	return strings.NewReplacer(".", "p", "-", "m").Replace(formatPercent(v))
}

func unslug(s string) string {
	return strings.NewReplacer("p", ".", "m", "-").Replace(s)
}
