package htmlutil

import "testing"

func TestTitleFallbacks(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"og wins", `<head><meta property="og:title" content="OG"><meta name="twitter:title" content="TW"><title>T</title></head>`, "OG"},
		{"twitter", `<head><meta name="twitter:title" content="TW"><title>T</title></head>`, "TW"},
		{"title element", `<head><title>  My   Blog </title></head><body><h1>H</h1></body>`, "My Blog"},
		{"h1", `<body><h1>Heading <em>one</em></h1><h1>two</h1></body>`, "Heading one"},
		{"empty og skipped", `<head><meta property="og:title" content=""><title>T</title></head>`, "T"},
		{"none", `<body><p>x</p></body>`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.html))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got := Title(doc); got != tt.want {
				t.Errorf("Title() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDescriptionFallbacks(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"description", `<meta name="description" content="D"><meta property="og:description" content="OG">`, "D"},
		{"og", `<meta property="og:description" content="OG"><meta name="twitter:description" content="TW">`, "OG"},
		{"twitter", `<meta name="twitter:description" content="TW">`, "TW"},
		{"none", `<p>nothing</p>`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.html))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got := Description(doc); got != tt.want {
				t.Errorf("Description() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		base, ref, want string
	}{
		{"https://blog.example.com/posts/", "/about", "https://blog.example.com/about"},
		{"https://blog.example.com/posts/", "hello-world", "https://blog.example.com/posts/hello-world"},
		{"https://blog.example.com/", "//cdn.example.com/x.png", "https://cdn.example.com/x.png"},
		{"https://blog.example.com/", "https://other.example.org/", "https://other.example.org/"},
	}
	for _, tt := range tests {
		if got := ResolveURL(tt.base, tt.ref); got != tt.want {
			t.Errorf("ResolveURL(%q, %q) = %q, want %q", tt.base, tt.ref, got, tt.want)
		}
	}
}

func TestIsRelative(t *testing.T) {
	tests := map[string]bool{
		"/posts/1":                 true,
		"posts/1":                  true,
		"https://example.com/x":    false,
		"//example.com/x":          false,
		"#top":                     false,
		"":                         false,
		"mailto:someone@example.o": false,
	}
	for href, want := range tests {
		if got := IsRelative(href); got != want {
			t.Errorf("IsRelative(%q) = %v, want %v", href, got, want)
		}
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound("Oops! 404 Not Found") {
		t.Error("IsNotFound() = false for 404 page")
	}
	if IsNotFound("Talks by someone about Go") {
		t.Error("IsNotFound() = true for normal page")
	}
}
