package guard

import "testing"

func TestDecide(t *testing.T) {
	g := New()

	tests := []struct {
		name     string
		path     string
		authed   bool
		allow    bool
		redirect string
		from     string
	}{
		{"protected unauthenticated", "/send", false, false, "/auth", "/send"},
		{"protected subpath unauthenticated", "/receive/history", false, false, "/auth", "/receive/history"},
		{"protected authenticated", "/send", true, true, "", ""},
		{"profile unauthenticated", "/profile", false, false, "/auth", "/profile"},
		{"adrop unauthenticated", "/adrop", false, false, "/auth", "/adrop"},
		{"auth while authenticated", "/auth", true, false, "/send", ""},
		{"auth subpath while authenticated", "/auth/reset", true, false, "/send", ""},
		{"auth while unauthenticated", "/auth", false, true, "", ""},
		{"public path", "/how-it-works", false, true, "", ""},
		{"prefix is not a subpath", "/sendx", false, true, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := g.Decide(tt.path, tt.authed)
			if d.Allow != tt.allow {
				t.Fatalf("Allow = %v, want %v", d.Allow, tt.allow)
			}
			if d.RedirectTo != tt.redirect {
				t.Fatalf("RedirectTo = %q, want %q", d.RedirectTo, tt.redirect)
			}
			if d.From != tt.from {
				t.Fatalf("From = %q, want %q", d.From, tt.from)
			}
		})
	}
}
