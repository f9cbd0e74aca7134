package htmlutil

import "testing"

func TestRedirectURL(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "meta refresh with url",
			html: `<html><head><meta http-equiv="refresh" content="0; url=http://choosehappy.dev/" /></head></html>`,
			want: "http://choosehappy.dev/",
		},
		{
			name: "meta refresh uppercase URL",
			html: `<html><head><meta http-equiv="Refresh" content="5;URL=https://example.com" /></head></html>`,
			want: "https://example.com",
		},
		{
			name: "meta refresh quoted target",
			html: `<html><head><meta content="0; url='/blog/'" http-equiv="refresh"></head></html>`,
			want: "/blog/",
		},
		{
			name: "meta refresh without url",
			html: `<html><head><meta http-equiv="refresh" content="30"></head></html>`,
			want: "",
		},
		{
			name: "window.location assignment",
			html: `<script>window.location = "https://newsite.com/";</script>`,
			want: "https://newsite.com/",
		},
		{
			name: "location.href assignment",
			html: `<script>location.href = "https://redirected.com";</script>`,
			want: "https://redirected.com",
		},
		{
			name: "window.location.replace",
			html: `<script>window.location.replace("https://replaced.com/");</script>`,
			want: "https://replaced.com/",
		},
		{
			name: "no redirect",
			html: `<html><head><title>Normal Page</title></head><body>location = "x" in prose</body></html>`,
			want: "",
		},
		{
			name: "fragment only ignored",
			html: `<script>location.href = "#section";</script>`,
			want: "",
		},
		{
			name: "meta refresh takes precedence over JS",
			html: `<html><head><meta http-equiv="refresh" content="0; url=https://meta.com" /></head><script>window.location = "https://js.com";</script></html>`,
			want: "https://meta.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.html))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got := RedirectURL(doc); got != tt.want {
				t.Errorf("RedirectURL() = %q, want %q", got, tt.want)
			}
		})
	}
}
