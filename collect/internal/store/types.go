package store

// Pointer fields model SQL NULL: nil means "not observed this run" and
// leaves the stored value untouched on upsert. A non-nil zero is a real
// observation and overwrites.

// Author is the canonical per-handle record.
type Author struct {
	ID           int64
	Username     string
	DisplayName  *string
	URL          *string
	Location     *string
	MemberSince  *string
	BioText      *string
	HasPro       *bool
	HasServices  *bool
	HireStatus   *string
	HasBanner    *bool
	HasWebsite   *bool
	Completeness *int
	FirstSeen    string
	LastSeen     string
}

// AuthorStats is one append-only author_snapshots row.
type AuthorStats struct {
	TotalViews         int
	TotalAppreciations int
	Followers          int
	Following          int
	ProjectCount       int
}

// Project is the canonical per-gallery-id record.
type Project struct {
	ID               int64
	BehanceID        string
	Title            *string
	URL              *string
	URLSlug          *string
	PublishedDate    *string
	PublishWeekday   *int
	PublishHour      *int
	AuthorID         *int64
	ModuleCount      *int
	ImageCount       *int
	VideoCount       *int
	TextCount        *int
	EmbedCount       *int
	DescriptionLen   *int
	DescHasQuery     *bool
	TitleMatch       *float64
	HasExternalLinks *bool
	ExternalLinks    *int
	CoverURL         *string
	CoverWidth       *int
	CoverHeight      *int
	CommentsCount    *int
	SavesCount       *int
	IsFeatured       *bool
	CoOwnersCount    *int
	CreativeFields   *string
	ToolsUsed        *string
	IsMyProject      *bool
	FirstSeen        string
	LastSeen         string
}

// SearchResult is one ranked appearance of a project in a snapshot.
type SearchResult struct {
	SnapshotID    int64
	ProjectID     int64
	Position      int
	Appreciations int
	Views         int
	Comments      int
	IsPromoted    bool
	IsFeatured    bool
	CoverURL      *string
}

// Snapshot is one crawl of one query.
type Snapshot struct {
	ID             int64
	Timestamp      string
	Query          string
	SortType       string
	TotalCollected int
}

// TrackedSample is one append-only tracked_snapshots row.
type TrackedSample struct {
	Timestamp        string
	BehanceID        string
	Label            *string
	Appreciations    int
	Views            int
	Comments         int
	PosInfografika   *int
	PosDesignCards   *int
	DaysSincePublish *float64
}
