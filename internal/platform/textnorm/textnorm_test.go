package textnorm

import "testing"

func TestUsername(t *testing.T) {
	cases := map[string]string{
		"Alice":          "alice",
		"  Bob  ":        "bob",
		"Zoë Smith":      "zoesmith",
		"José-María":     "josemaria",
		"under_score":    "under_score",
		"dots.and@signs": "dotsandsigns",
		"Ｆｕｌｌｗｉｄｔｈ":      "fullwidth",
		"日本":             "",
		"":               "",
	}
	for in, want := range cases {
		if got := Username(in); got != want {
			t.Fatalf("Username(%q): want=%q got=%q", in, want, got)
		}
	}
}
