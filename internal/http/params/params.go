package params

import (
	"net/url"

	"github.com/yungbote/lsbmorph-backend/internal/navigation"
)

const (
	KeyWithRedshift  = "with_redshift"
	KeyClassified    = "classified"
	KeySkipped       = "skipped"
	KeyValidRedshift = "valid_redshift"
)

// FromValues starts from navigation.DefaultMode and overrides every key
// holding yes/true/no/false. Other values are ignored.
func FromValues(v url.Values) navigation.Mode {
	m := navigation.DefaultMode()
	set := func(dst *navigation.Tri, key string) {
		if t := navigation.ParseTri(v.Get(key)); t != navigation.Any {
			*dst = t
		}
	}
	set(&m.WithRedshift, KeyWithRedshift)
	set(&m.Classified, KeyClassified)
	set(&m.Skipped, KeySkipped)
	set(&m.ValidRedshift, KeyValidRedshift)
	return m
}

// ToValues emits only the flags that differ from the default mode. An
// explicit request for a default value therefore reads back the same as no
// request.
func ToValues(m navigation.Mode) url.Values {
	d := navigation.DefaultMode()
	out := url.Values{}
	put := func(key string, got, def navigation.Tri) {
		if got == navigation.Any || got == def {
			return
		}
		if got == navigation.Yes {
			out.Set(key, "yes")
		} else {
			out.Set(key, "no")
		}
	}
	put(KeyWithRedshift, m.WithRedshift, d.WithRedshift)
	put(KeyClassified, m.Classified, d.Classified)
	put(KeySkipped, m.Skipped, d.Skipped)
	put(KeyValidRedshift, m.ValidRedshift, d.ValidRedshift)
	return out
}

// Filter parses the raw engine filter used by the neighbors endpoint. An
// omitted flag does not constrain.
func Filter(v url.Values) navigation.Filter {
	f := navigation.Filter{
		Skipped:      navigation.ParseTri(v.Get(KeySkipped)),
		Classified:   navigation.ParseTri(v.Get(KeyClassified)),
		WithRedshift: navigation.ParseTri(v.Get(KeyWithRedshift)),
	}
	if t := navigation.ParseTri(v.Get(KeyValidRedshift)); t != navigation.Any {
		b := t == navigation.Yes
		f.ValidRedshift = &b
	}
	return f
}
