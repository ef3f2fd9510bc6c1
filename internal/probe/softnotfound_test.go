package probe

import "testing"

func TestSoftNotFound(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "title with 404 and not found",
			html: "<html><head><title>404 Not Found</title></head></html>",
			want: "HTML title indicates 404",
		},
		{
			name: "title with 404 and not found, mixed case and noise",
			html: "<html><head><title>Error 404 — page NOT FOUND</title></head><body></body></html>",
			want: "HTML title indicates 404",
		},
		{
			name: "title with embedded tags and whitespace",
			html: "<title>\n  404 <b>Not</b>\tFound  </title>",
			want: "HTML title indicates 404",
		},
		{
			name: "title page not found without 404",
			html: "<html><head><title>Page not found | Example Docs</title></head></html>",
			want: "HTML title indicates missing page",
		},
		{
			name: "h1 exact 404",
			html: "<html><body><h1>404</h1></body></html>",
			want: "HTML h1 indicates missing page",
		},
		{
			name: "h1 exact 404 not found",
			html: "<body><h1 class=\"err\">404 Not Found</h1></body>",
			want: "HTML h1 indicates missing page",
		},
		{
			name: "h1 page not found any casing and whitespace",
			html: "<h1>\n  PAGE   NOT   FOUND\n</h1>",
			want: "HTML h1 indicates missing page",
		},
		{
			name: "h1 exact not found",
			html: "<h1>not found</h1>",
			want: "HTML h1 indicates missing page",
		},
		{
			name: "h1 phrase inside longer sentence does not fire",
			html: "<h1>Why 'page not found' errors hurt your SEO</h1>",
			want: "",
		},
		{
			name: "healthy page",
			html: "<html><head><title>Evidence guidelines</title></head><body><h1>Guidelines</h1></body></html>",
			want: "",
		},
		{
			name: "not found string buried in script bundle does not fire",
			html: "<html><head><title>App</title><script>var msg='404 not found';</script></head><body><h1>Welcome</h1></body></html>",
			want: "",
		},
		{
			name: "empty body",
			html: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SoftNotFound(tt.html)
			if got != tt.want {
				t.Errorf("SoftNotFound() = %q, want %q", got, tt.want)
			}
		})
	}
}
