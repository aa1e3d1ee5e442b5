package browser

import "testing"

func TestNextPageURLRelNext(t *testing.T) {
	html := `<html><body>
		<a href="/search/projects?search=x&page=3">3</a>
		<a rel="next" href="/search/projects?search=x&page=2">Вперёд</a>
	</body></html>`
	got := NextPageURL(html, "https://www.behance.net/search/projects?search=x")
	want := "https://www.behance.net/search/projects?search=x&page=2"
	if got != want {
		t.Fatalf("NextPageURL = %q, want %q", got, want)
	}
}

func TestNextPageURLByLabel(t *testing.T) {
	for _, label := range []string{"Next", "Следующая", " следующая страница "} {
		html := `<html><body><a href="/search?page=2">` + label + `</a></body></html>`
		got := NextPageURL(html, "https://www.behance.net/search")
		if got != "https://www.behance.net/search?page=2" {
			t.Fatalf("label %q: NextPageURL = %q", label, got)
		}
	}
}

func TestNextPageURLAbsoluteHrefKept(t *testing.T) {
	html := `<html><body><a rel="next" href="https://www.behance.net/search?page=5">next</a></body></html>`
	got := NextPageURL(html, "https://example.com/")
	if got != "https://www.behance.net/search?page=5" {
		t.Fatalf("NextPageURL = %q", got)
	}
}

func TestNextPageURLAbsent(t *testing.T) {
	html := `<html><body>
		<a href="/gallery/1/x">a project</a>
		<a href="/search?page=1">1</a>
	</body></html>`
	if got := NextPageURL(html, "https://www.behance.net/"); got != "" {
		t.Fatalf("expected no next link, got %q", got)
	}
}
