package collect

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "behrank.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigFileDefaults(t *testing.T) {
	path := writeConfig(t, `
primary_queries:
  - инфографика
  - дизайн карточек
secondary_queries:
  - карточка товара
self_username: valeriy_maslov
tracked_projects:
  - label: A_new_title
    behance_id: "123456"
`)
	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}

	if cfg.SortType != "recommended" {
		t.Errorf("sort_type = %q", cfg.SortType)
	}
	if cfg.ProjectsPerQuery != 100 || cfg.PagesPerQuery != 5 {
		t.Errorf("caps = %d/%d", cfg.ProjectsPerQuery, cfg.PagesPerQuery)
	}
	if cfg.DelayMin != 2*time.Second || cfg.DelayMax != 5*time.Second {
		t.Errorf("delays = %v/%v", cfg.DelayMin, cfg.DelayMax)
	}
	if cfg.Locale != "ru-RU" || cfg.Timezone != "Europe/Moscow" {
		t.Errorf("locale/timezone = %q/%q", cfg.Locale, cfg.Timezone)
	}
	if cfg.BaseURL != "https://www.behance.net" {
		t.Errorf("base_url = %q", cfg.BaseURL)
	}
	if len(cfg.Tracked) != 1 || cfg.Tracked[0].BehanceID != "123456" {
		t.Errorf("tracked = %+v", cfg.Tracked)
	}

	qs := cfg.Queries(false)
	if len(qs) != 2 {
		t.Errorf("primary-only queries = %v", qs)
	}
	qs = cfg.Queries(true)
	if len(qs) != 3 || qs[2] != "карточка товара" {
		t.Errorf("all queries = %v", qs)
	}
}

func TestLoadConfigFileRequiresQueries(t *testing.T) {
	path := writeConfig(t, `self_username: x`)
	if _, err := LoadConfigFile(path); err == nil {
		t.Fatal("expected error for empty primary_queries")
	}
}

func TestSearchURLEscapesQuery(t *testing.T) {
	cfg := &Config{PrimaryQueries: []string{"x"}}
	cfg.applyDefaults()

	got := cfg.SearchURL("дизайн карточек")
	want := "https://www.behance.net/search/projects?search=" +
		"%D0%B4%D0%B8%D0%B7%D0%B0%D0%B9%D0%BD+%D0%BA%D0%B0%D1%80%D1%82%D0%BE%D1%87%D0%B5%D0%BA" +
		"&sort=recommended"
	if got != want {
		t.Errorf("SearchURL = %q, want %q", got, want)
	}
}

func TestSelfProfileURL(t *testing.T) {
	cfg := &Config{PrimaryQueries: []string{"x"}, SelfUsername: "valeriy_maslov"}
	cfg.applyDefaults()
	if got := cfg.SelfProfileURL(); got != "https://www.behance.net/valeriy_maslov" {
		t.Errorf("SelfProfileURL = %q", got)
	}

	cfg.SelfUsername = ""
	if cfg.SelfProfileURL() != "" {
		t.Error("empty self username must yield empty URL")
	}
}
