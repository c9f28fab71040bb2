package observability

import "testing"

func TestParseHeaders(t *testing.T) {
	got := ParseHeaders(" api-key = abc , bad, =x, tenant=lsb ")
	if len(got) != 2 {
		t.Fatalf("len: want=2 got=%d (%v)", len(got), got)
	}
	if got["api-key"] != "abc" || got["tenant"] != "lsb" {
		t.Fatalf("headers: got=%v", got)
	}
	if ParseHeaders("  ") != nil {
		t.Fatalf("blank: want=nil")
	}
}

func TestClampRatio(t *testing.T) {
	cases := map[float64]float64{-1: 0.1, 0: 0.1, 0.5: 0.5, 3: 1}
	for in, want := range cases {
		if got := clampRatio(in); got != want {
			t.Fatalf("clampRatio(%v): want=%v got=%v", in, want, got)
		}
	}
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/x", "200", 0)
	m.ApiInflightInc()
	m.ApiInflightDec()
}
