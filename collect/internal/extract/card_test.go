package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const baseURL = "https://www.behance.net"

func cardSelection(t *testing.T, html string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc.Find("div.card").First()
}

const ruCard = `<div class="card ProjectCover-root">
  <a href="/gallery/242129829/card-design" title="Дизайн карточек Wildberries"></a>
  <a href="https://www.behance.net/valeriy_maslov">Валерий Маслов</a>
  <img src="https://mir-cdn.example.com/cover.jpg">
  <span>Оценок: 277 за Дизайн карточек</span>
  <span>Просмотров: 2` + " " + `075 для Дизайн карточек</span>
</div>`

func TestParseCardRussian(t *testing.T) {
	c, err := ParseCard(cardSelection(t, ruCard), 1, baseURL)
	if err != nil {
		t.Fatalf("ParseCard: %v", err)
	}
	if c.BehanceID != "242129829" {
		t.Errorf("BehanceID = %q, want 242129829", c.BehanceID)
	}
	if c.Position != 1 {
		t.Errorf("Position = %d, want 1", c.Position)
	}
	if c.Title != "Дизайн карточек Wildberries" {
		t.Errorf("Title = %q", c.Title)
	}
	if c.URL != "https://www.behance.net/gallery/242129829/card-design" {
		t.Errorf("URL = %q", c.URL)
	}
	if c.Slug != "card-design" {
		t.Errorf("Slug = %q, want card-design", c.Slug)
	}
	if c.AuthorHandle != "valeriy_maslov" {
		t.Errorf("AuthorHandle = %q, want valeriy_maslov", c.AuthorHandle)
	}
	if c.AuthorName != "Валерий Маслов" {
		t.Errorf("AuthorName = %q", c.AuthorName)
	}
	if c.Appreciations != 277 {
		t.Errorf("Appreciations = %d, want 277", c.Appreciations)
	}
	if c.Views != 2075 {
		t.Errorf("Views = %d, want 2075", c.Views)
	}
	if c.Promoted {
		t.Error("Promoted = true, want false")
	}
	if c.CoverURL != "https://mir-cdn.example.com/cover.jpg" {
		t.Errorf("CoverURL = %q", c.CoverURL)
	}
}

func TestParseCardEnglishFallback(t *testing.T) {
	html := `<div class="card">
	  <a href="/gallery/100200300/poster"></a>
	  <div class="Title-abc">Poster Design</div>
	  <span>1,200 appreciations for Poster Design</span>
	  <span>34,560 views for Poster Design</span>
	</div>`
	c, err := ParseCard(cardSelection(t, html), 3, baseURL)
	if err != nil {
		t.Fatalf("ParseCard: %v", err)
	}
	// Title attr missing: falls back to the Title class element.
	if c.Title != "Poster Design" {
		t.Errorf("Title = %q, want Poster Design", c.Title)
	}
	if c.Appreciations != 1200 { // English "N appreciations for" fallback
		t.Errorf("Appreciations = %d, want 1200", c.Appreciations)
	}
	if c.Views != 34560 {
		t.Errorf("Views = %d, want 34560", c.Views)
	}
}

func TestParseCardPromotedFeatured(t *testing.T) {
	byElement := `<div class="card">
	  <a href="/gallery/1/x/"></a>
	  <a href="/help/promoted">?</a>
	  <div class="FeaturedBadge">ribbon</div>
	</div>`
	c, err := ParseCard(cardSelection(t, byElement), 1, baseURL)
	if err != nil {
		t.Fatalf("ParseCard: %v", err)
	}
	if !c.Promoted {
		t.Error("Promoted by element presence not detected")
	}
	if !c.Featured {
		t.Error("Featured by element presence not detected")
	}

	byKeyword := `<div class="card">
	  <a href="/gallery/2/y/"></a>
	  <span>Promoted</span>
	</div>`
	c, err = ParseCard(cardSelection(t, byKeyword), 1, baseURL)
	if err != nil {
		t.Fatalf("ParseCard: %v", err)
	}
	if !c.Promoted {
		t.Error("Promoted by keyword presence not detected")
	}
	if c.Featured {
		t.Error("Featured = true, want false")
	}
}

func TestParseCardNoGalleryLink(t *testing.T) {
	html := `<div class="card"><a href="/somewhere">no gallery</a></div>`
	if _, err := ParseCard(cardSelection(t, html), 1, baseURL); err != ErrNoGalleryLink {
		t.Fatalf("err = %v, want ErrNoGalleryLink", err)
	}

	// A gallery href without an id is rejected the same way.
	html = `<div class="card"><a href="/gallery/">broken</a></div>`
	if _, err := ParseCard(cardSelection(t, html), 1, baseURL); err != ErrNoGalleryLink {
		t.Fatalf("err = %v, want ErrNoGalleryLink", err)
	}
}

func TestParseCardUnparseableStatsAreZero(t *testing.T) {
	html := `<div class="card">
	  <a href="/gallery/3/z/"></a>
	  <span>Оценок: скоро</span>
	</div>`
	c, err := ParseCard(cardSelection(t, html), 1, baseURL)
	if err != nil {
		t.Fatalf("ParseCard: %v", err)
	}
	if c.Appreciations != 0 || c.Views != 0 {
		t.Errorf("stats = %d/%d, want 0/0", c.Appreciations, c.Views)
	}
}

func TestParseOwnProjects(t *testing.T) {
	html := `<html><body>
	  <div class="ProjectCover-abc">
	    <a href="/gallery/111/first" title="First">x</a>
	    <span>12</span><span>1.5K</span>
	  </div>
	  <div class="ProjectCover-abc">
	    <a href="/gallery/222/second" title="Second">x</a>
	  </div>
	  <a href="/gallery/111/first">duplicate link to first</a>
	</body></html>`

	projects := ParseOwnProjects(html, baseURL)
	if len(projects) != 2 {
		t.Fatalf("got %d projects, want 2 (deduplicated)", len(projects))
	}
	if projects[0].BehanceID != "111" || projects[1].BehanceID != "222" {
		t.Errorf("ids = %s, %s", projects[0].BehanceID, projects[1].BehanceID)
	}
	if projects[0].Appreciations != 12 || projects[0].Views != 1500 {
		t.Errorf("stats = %d/%d, want 12/1500", projects[0].Appreciations, projects[0].Views)
	}
}
