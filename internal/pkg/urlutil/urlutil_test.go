package urlutil

import "testing"

// TestNormalizeBaseURL тестирует нормализацию базового URL API
func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "bare host", input: "https://gitea.example.com", want: "https://gitea.example.com/api/v1/"},
		{name: "trailing slash", input: "https://gitea.example.com/", want: "https://gitea.example.com/api/v1/"},
		{name: "many trailing slashes", input: "https://gitea.example.com///", want: "https://gitea.example.com/api/v1/"},
		{name: "api suffix", input: "https://gitea.example.com/api", want: "https://gitea.example.com/api/v1/"},
		{name: "api v1 suffix", input: "https://gitea.example.com/api/v1", want: "https://gitea.example.com/api/v1/"},
		{name: "api v1 suffix with slash", input: "https://gitea.example.com/api/v1/", want: "https://gitea.example.com/api/v1/"},
		{name: "subpath", input: "https://example.com/gitea", want: "https://example.com/gitea/api/v1/"},
		{name: "subpath with api v1", input: "https://example.com/gitea/api/v1", want: "https://example.com/gitea/api/v1/"},
		{name: "surrounding whitespace", input: "  https://gitea.example.com  ", want: "https://gitea.example.com/api/v1/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeBaseURL(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeBaseURL(%q) = %q, expected %q", tt.input, got, tt.want)
			}
			// Идемпотентность: повторная нормализация ничего не меняет.
			if again := NormalizeBaseURL(got); again != got {
				t.Errorf("Not idempotent: %q -> %q", got, again)
			}
		})
	}
}

// TestPackagesBaseURL тестирует построение соседнего базового пути пакетов
func TestPackagesBaseURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "bare host", input: "https://gitea.example.com/api/v1/", want: "https://gitea.example.com/api/packages/"},
		{name: "subpath", input: "https://example.com/gitea/api/v1/", want: "https://example.com/gitea/api/packages/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PackagesBaseURL(tt.input); got != tt.want {
				t.Errorf("PackagesBaseURL(%q) = %q, expected %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestMaskURL тестирует маскирование URL для логов
func TestMaskURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "url with token in query", input: "https://gitea.example.com/api/v1/repos?token=secret", want: "https://gitea.example.com/***"},
		{name: "url with path", input: "https://gitea.example.com/owner/repo", want: "https://gitea.example.com/***"},
		{name: "invalid url", input: "://broken", want: "***invalid-url***"},
		{name: "empty url", input: "", want: "***invalid-url***"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaskURL(tt.input); got != tt.want {
				t.Errorf("MaskURL(%q) = %q, expected %q", tt.input, got, tt.want)
			}
		})
	}
}
