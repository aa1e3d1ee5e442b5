package collect

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// TrackedProject is one allowlisted gallery id to sample after each
// run.
type TrackedProject struct {
	Label     string `yaml:"label"`
	BehanceID string `yaml:"behance_id"`
	URL       string `yaml:"url"`
}

// Config is the immutable per-run configuration.
type Config struct {
	// Queries to crawl. Primary runs always; secondary only when the
	// run is started with the secondary flag.
	PrimaryQueries   []string `yaml:"primary_queries"`
	SecondaryQueries []string `yaml:"secondary_queries"`

	// SelfUsername marks results from this portfolio as self-authored.
	SelfUsername string `yaml:"self_username"`

	SortType         string `yaml:"sort_type"`
	ProjectsPerQuery int    `yaml:"projects_per_query"`
	PagesPerQuery    int    `yaml:"pages_per_query"`

	DelayMin time.Duration `yaml:"delay_min"`
	DelayMax time.Duration `yaml:"delay_max"`

	RequestTimeout    time.Duration `yaml:"request_timeout"`
	NavigationTimeout time.Duration `yaml:"navigation_timeout"`

	BaseURL           string `yaml:"base_url"`
	SearchURLTemplate string `yaml:"search_url_template"`

	UserAgent string `yaml:"user_agent"`
	Locale    string `yaml:"locale"`
	Timezone  string `yaml:"timezone"`

	// BrowserURL connects to an external Chrome; empty launches one.
	BrowserURL string `yaml:"browser_url"`

	DBPath string `yaml:"db_path"`

	Tracked []TrackedProject `yaml:"tracked_projects"`
}

// LoadConfigFile reads a YAML configuration file and applies defaults.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("collect: read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("collect: parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.SortType == "" {
		c.SortType = "recommended"
	}
	if c.ProjectsPerQuery <= 0 {
		c.ProjectsPerQuery = 100
	}
	if c.PagesPerQuery <= 0 {
		c.PagesPerQuery = 5
	}
	if c.DelayMin <= 0 {
		c.DelayMin = 2 * time.Second
	}
	if c.DelayMax <= 0 {
		c.DelayMax = 5 * time.Second
	}
	if c.DelayMax < c.DelayMin {
		c.DelayMax = c.DelayMin
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 30 * time.Second
	}
	if c.NavigationTimeout <= 0 {
		c.NavigationTimeout = 60 * time.Second
	}
	if c.BaseURL == "" {
		c.BaseURL = "https://www.behance.net"
	}
	if c.SearchURLTemplate == "" {
		c.SearchURLTemplate = c.BaseURL + "/search/projects?search=%s&sort=%s"
	}
	if c.UserAgent == "" {
		c.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
			"AppleWebKit/537.36 (KHTML, like Gecko) " +
			"Chrome/131.0.0.0 Safari/537.36"
	}
	if c.Locale == "" {
		c.Locale = "ru-RU"
	}
	if c.Timezone == "" {
		c.Timezone = "Europe/Moscow"
	}
	if c.DBPath == "" {
		c.DBPath = "data/behance.db"
	}
}

func (c *Config) validate() error {
	if len(c.PrimaryQueries) == 0 {
		return fmt.Errorf("collect: config: primary_queries is empty")
	}
	return nil
}

// Queries returns the query list for one run.
func (c *Config) Queries(includeSecondary bool) []string {
	qs := append([]string(nil), c.PrimaryQueries...)
	if includeSecondary {
		qs = append(qs, c.SecondaryQueries...)
	}
	return qs
}

// SearchURL builds the first listing page URL for a query.
func (c *Config) SearchURL(query string) string {
	return fmt.Sprintf(c.SearchURLTemplate, url.QueryEscape(query), url.QueryEscape(c.SortType))
}

// SelfProfileURL is the operator's own portfolio page, empty when no
// self username is configured.
func (c *Config) SelfProfileURL() string {
	if c.SelfUsername == "" {
		return ""
	}
	return c.BaseURL + "/" + c.SelfUsername
}
