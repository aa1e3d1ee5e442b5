package extract

import "testing"

const detailHTML = `<html><head>
<script type="application/json">
{"project":{"tags":[{"id":1,"title":"infographic"},{"id":2,"title":"marketplace"},{"id":3,"title":"infographic"}],
"tools":[{"id":10,"title":"Photoshop"},{"id":11,"title":"Figma"}],
"fields":[{"label":"Graphic Design"},{"title":"Branding"}]}}
</script>
</head><body>
<div class="Project-module-abc"><img src="a.jpg"></div>
<div class="Project-module-abc"><video src="b.mp4"></video></div>
<div class="Project-module-abc"><iframe src="https://player.example.com/embed/1"></iframe></div>
<div class="ProjectDescription-root">Инфографика для маркетплейса, подробное описание проекта.</div>
<a href="https://example.com/portfolio">my site</a>
<a href="https://www.behance.net/other">internal</a>
<a href="/gallery/999/other">relative internal</a>
<div class="ProjectOwner-root">
  <a href="https://www.behance.net/main_author">Main</a>
  <a href="https://www.behance.net/co_author">Co</a>
</div>
<div class="Comments-root"><span class="count">14</span></div>
</body></html>`

const detailText = "Инфографика для маркетплейса\nОпубликовано: 13 января 2026 г.\n"

func TestParseDetail(t *testing.T) {
	d := ParseDetail(detailHTML, detailText, "инфографика")

	if d.PublishedDate == nil || *d.PublishedDate != "2026-01-13" {
		t.Fatalf("PublishedDate = %v, want 2026-01-13", d.PublishedDate)
	}
	if d.PublishWeekday == nil || *d.PublishWeekday != 2 {
		t.Errorf("PublishWeekday = %v, want 2", d.PublishWeekday)
	}

	// Embedded JSON wins and is deduplicated by title.
	if len(d.Tags) != 2 || d.Tags[0] != "infographic" || d.Tags[1] != "marketplace" {
		t.Errorf("Tags = %v", d.Tags)
	}
	if len(d.Tools) != 2 || d.Tools[0] != "Photoshop" {
		t.Errorf("Tools = %v", d.Tools)
	}
	if len(d.CreativeFields) != 2 || d.CreativeFields[0] != "Graphic Design" || d.CreativeFields[1] != "Branding" {
		t.Errorf("CreativeFields = %v", d.CreativeFields)
	}

	// One module of each kind, precedence image > video > embed.
	if d.ImageCount != 1 || d.VideoCount != 1 || d.EmbedCount != 1 {
		t.Errorf("module counts = img %d video %d embed %d, want 1/1/1",
			d.ImageCount, d.VideoCount, d.EmbedCount)
	}
	if d.ModuleCount != 3 {
		t.Errorf("ModuleCount = %d, want 3", d.ModuleCount)
	}

	if d.DescriptionLength == 0 {
		t.Error("DescriptionLength = 0, want > 0")
	}
	if d.DescriptionHasQuery == nil || !*d.DescriptionHasQuery {
		t.Error("DescriptionHasQuery: query token present in description not detected")
	}

	// Only the absolute non-behance link counts.
	if d.ExternalLinkCount != 1 {
		t.Errorf("ExternalLinkCount = %d, want 1", d.ExternalLinkCount)
	}

	// Two distinct owner handles, minus the primary.
	if d.CoOwners != 1 {
		t.Errorf("CoOwners = %d, want 1", d.CoOwners)
	}

	if d.CommentsCount == nil || *d.CommentsCount != 14 {
		t.Errorf("CommentsCount = %v, want 14", d.CommentsCount)
	}
}

func TestParseDetailAmbiguousModuleCountedOnce(t *testing.T) {
	// A block containing both an image and a video counts as image only.
	html := `<html><body>
	<div class="module-x"><img src="a.jpg"><video src="b.mp4"></video></div>
	</body></html>`
	d := ParseDetail(html, "", "")
	if d.ImageCount != 1 || d.VideoCount != 0 {
		t.Errorf("counts = img %d video %d, want 1/0", d.ImageCount, d.VideoCount)
	}
	if d.ModuleCount != 1 {
		t.Errorf("ModuleCount = %d, want 1", d.ModuleCount)
	}
}

func TestParseDetailPermalinkOverride(t *testing.T) {
	html := `<html><body>
	<div class="module-x"><img src="a.jpg"></div>
	<a href="/project/modules/1">#</a>
	<a href="/project/modules/2">#</a>
	<a href="/project/modules/3">#</a>
	</body></html>`
	d := ParseDetail(html, "", "")
	if d.ModuleCount != 3 {
		t.Errorf("ModuleCount = %d, want 3 (permalink count)", d.ModuleCount)
	}
	if d.ImageCount != 3 {
		t.Errorf("ImageCount = %d, want 3", d.ImageCount)
	}
}

func TestParseDetailSelectorFallbackForTags(t *testing.T) {
	html := `<html><body>
	<a href="/search?tracking_source=project_tag&q=design">design</a>
	<a href="/search?tracking_source=project_tag&q=poster">poster</a>
	<a href="/search?tracking_source=project_tag&q=design">design</a>
	</body></html>`
	d := ParseDetail(html, "", "")
	if len(d.Tags) != 2 || d.Tags[0] != "design" || d.Tags[1] != "poster" {
		t.Errorf("Tags = %v, want [design poster]", d.Tags)
	}
}

func TestParseDetailMissingEverything(t *testing.T) {
	d := ParseDetail("<html><body></body></html>", "", "")
	if d.PublishedDate != nil {
		t.Error("PublishedDate should stay unset")
	}
	if d.DescriptionHasQuery != nil {
		t.Error("DescriptionHasQuery should stay unset without a query")
	}
	if d.CommentsCount != nil {
		t.Error("CommentsCount should stay unset")
	}
	if len(d.Tags) != 0 || d.ModuleCount != 0 {
		t.Errorf("unexpected non-zero fields: tags %v modules %d", d.Tags, d.ModuleCount)
	}
}

func TestParseTrackedStats(t *testing.T) {
	html := `<html><body><script>
	{"project":{"stats":{"views":5120,"appreciations":340,"comments":12}}}
	</script></body></html>`
	ts := ParseTrackedStats(html, "Опубликовано: 13 января 2026 г.")
	if ts.Views != 5120 || ts.Appreciations != 340 || ts.Comments != 12 {
		t.Errorf("stats = %d/%d/%d, want 5120/340/12", ts.Views, ts.Appreciations, ts.Comments)
	}
	if ts.PublishedDate != "2026-01-13" {
		t.Errorf("PublishedDate = %q, want 2026-01-13", ts.PublishedDate)
	}
}

func TestParseTrackedStatsVisibleTextFallback(t *testing.T) {
	ts := ParseTrackedStats("<html></html>", "Просмотров: 1 024 для проекта")
	if ts.Views != 1024 {
		t.Errorf("Views = %d, want 1024", ts.Views)
	}
}

// Without the stats fragment, appreciations must stay 0: the only
// visible appreciation number on a project page belongs to individual
// comments, and a wrong total in the append-only history is worse than
// an unknown.
func TestParseTrackedStatsNoAppreciationsFallback(t *testing.T) {
	ts := ParseTrackedStats("<html></html>", "Комментарии\nОценок: 5 за комментарий\n")
	if ts.Appreciations != 0 {
		t.Errorf("Appreciations = %d, want 0 when the stats fragment is missing", ts.Appreciations)
	}
}

func TestParseDetailModulePrecedenceOverMarkupNoise(t *testing.T) {
	// "video" as a plain word inside an image module must not demote it.
	html := `<html><body>
	<div class="module-x"><img src="a.jpg" alt="video thumbnail"></div>
	</body></html>`
	d := ParseDetail(html, "", "")
	if d.ImageCount != 1 || d.VideoCount != 0 {
		t.Errorf("counts = img %d video %d, want 1/0", d.ImageCount, d.VideoCount)
	}
}
