package domain

import "testing"

func TestHref(t *testing.T) {
	tests := []struct {
		name string
		cfg  Configuration
		path string
		want string
	}{
		{
			name: "root with trailing slash",
			cfg:  Configuration{Base: "/", TrailingSlash: true},
			path: "/",
			want: "/",
		},
		{
			name: "page with trailing slash",
			cfg:  Configuration{Base: "/", TrailingSlash: true},
			path: "download",
			want: "/download/",
		},
		{
			name: "page without trailing slash",
			cfg:  Configuration{Base: "/docs"},
			path: "download",
			want: "/docs/download",
		},
		{
			name: "append document name",
			cfg:  Configuration{Base: "/", AppendDocumentName: true, DocumentName: "index.html"},
			path: "guides/install",
			want: "/guides/install/index.html",
		},
		{
			name: "root with document name",
			cfg:  Configuration{Base: "/", AppendDocumentName: true},
			path: "/",
			want: "/index.html",
		},
		{
			name: "empty base defaults to slash",
			cfg:  Configuration{},
			path: "support",
			want: "/support",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Href(tt.path); got != tt.want {
				t.Errorf("Href(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestRelativeHref(t *testing.T) {
	cfg := Configuration{Base: "/", UseRelativePaths: true, TrailingSlash: true}

	tests := []struct {
		from, to, want string
	}{
		{from: "/", to: "download", want: "download/"},
		{from: "download", to: "installation", want: "../installation/"},
		{from: "download", to: "/", want: "../"},
		{from: "/", to: "/", want: "./"},
		{from: "guides/install", to: "support", want: "../../support/"},
	}

	for _, tt := range tests {
		if got := cfg.RelativeHref(tt.from, tt.to); got != tt.want {
			t.Errorf("RelativeHref(%q, %q) = %q, want %q", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestRelativeHrefFilePages(t *testing.T) {
	cfg := Configuration{Base: "/", UseRelativePaths: true}

	if got := cfg.RelativeHref("guides/install", "support"); got != "../support" {
		t.Errorf("RelativeHref() = %q, want %q", got, "../support")
	}
}

func TestRelativeHrefDisabled(t *testing.T) {
	cfg := Configuration{Base: "/", TrailingSlash: true}

	if got := cfg.RelativeHref("download", "support"); got != "/support/" {
		t.Errorf("RelativeHref() = %q, want absolute %q", got, "/support/")
	}
}
