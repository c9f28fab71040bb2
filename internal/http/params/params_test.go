package params

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yungbote/lsbmorph-backend/internal/navigation"
)

func TestFromValues(t *testing.T) {
	m := FromValues(url.Values{
		"with_redshift":  {"YES"},
		"classified":     {"true"},
		"skipped":        {"maybe"},
		"valid_redshift": {"false"},
	})
	assert.Equal(t, navigation.Yes, m.WithRedshift)
	assert.Equal(t, navigation.Yes, m.Classified)
	assert.Equal(t, navigation.No, m.Skipped, "unrecognized values keep the default")
	assert.Equal(t, navigation.No, m.ValidRedshift)

	assert.Equal(t, navigation.DefaultMode(), FromValues(url.Values{}))
}

func TestToValuesOmitsDefaults(t *testing.T) {
	m := navigation.Mode{WithRedshift: navigation.No, Classified: navigation.Yes, Skipped: navigation.No}
	v := ToValues(m)
	assert.Equal(t, "no", v.Get(KeyWithRedshift))
	assert.Equal(t, "yes", v.Get(KeyClassified))
	assert.False(t, v.Has(KeySkipped))
	assert.False(t, v.Has(KeyValidRedshift))

	assert.Equal(t, m, FromValues(v))
}

// An explicit default and an absent flag serialize identically, so the
// distinction is lost across a round trip.
func TestToValuesExplicitDefaultIsIndistinguishable(t *testing.T) {
	explicit := FromValues(url.Values{"classified": {"no"}, "skipped": {"no"}})
	implicit := FromValues(url.Values{})

	assert.Equal(t, ToValues(explicit).Encode(), ToValues(implicit).Encode())
	assert.Equal(t, "", ToValues(explicit).Encode())
}

func TestFilter(t *testing.T) {
	f := Filter(url.Values{})
	assert.Equal(t, navigation.Filter{}, f, "omitted flags do not constrain")

	f = Filter(url.Values{"skipped": {"yes"}, "classified": {"no"}, "valid_redshift": {"true"}})
	assert.Equal(t, navigation.Yes, f.Skipped)
	assert.Equal(t, navigation.No, f.Classified)
	assert.Equal(t, navigation.Any, f.WithRedshift)
	if assert.NotNil(t, f.ValidRedshift) {
		assert.True(t, *f.ValidRedshift)
	}
}
