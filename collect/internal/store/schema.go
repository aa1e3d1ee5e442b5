package store

// Schema is the full collection store schema. It is the committed
// contract for downstream reporting tools, so column names and
// semantics must be preserved across any evolution.
const Schema = `
-- One crawl of one query. total_collected is written at finalize time.
CREATE TABLE IF NOT EXISTS snapshots (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp       TEXT    NOT NULL,
    query           TEXT    NOT NULL,
    sort_type       TEXT    NOT NULL DEFAULT 'recommended',
    total_collected INTEGER DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_snapshots_query ON snapshots(query);

-- Canonical author record. Coalesce-upsert: a field once known is
-- never regressed to NULL by a later, emptier observation.
CREATE TABLE IF NOT EXISTS authors (
    id                   INTEGER PRIMARY KEY AUTOINCREMENT,
    username             TEXT    UNIQUE NOT NULL,
    display_name         TEXT,
    url                  TEXT,
    location             TEXT,
    member_since         TEXT,
    bio_text             TEXT,
    has_pro              INTEGER DEFAULT 0,
    has_services         INTEGER DEFAULT 0,
    hire_status          TEXT,
    has_banner           INTEGER DEFAULT 0,
    has_website_link     INTEGER DEFAULT 0,
    profile_completeness INTEGER DEFAULT 0,
    first_seen           TEXT,
    last_seen            TEXT
);

-- Append-only time series of author aggregate stats, one row per run
-- in which the author was observed.
CREATE TABLE IF NOT EXISTS author_snapshots (
    id                  INTEGER PRIMARY KEY AUTOINCREMENT,
    author_id           INTEGER NOT NULL,
    snapshot_id         INTEGER NOT NULL,
    total_views         INTEGER DEFAULT 0,
    total_appreciations INTEGER DEFAULT 0,
    followers           INTEGER DEFAULT 0,
    following           INTEGER DEFAULT 0,
    project_count       INTEGER DEFAULT 0,
    FOREIGN KEY (author_id) REFERENCES authors(id),
    FOREIGN KEY (snapshot_id) REFERENCES snapshots(id)
);
CREATE INDEX IF NOT EXISTS idx_author_snapshots_author ON author_snapshots(author_id);

-- Canonical project record, keyed by the site's stable gallery id.
-- Same coalesce-upsert discipline as authors.
CREATE TABLE IF NOT EXISTS projects (
    id                  INTEGER PRIMARY KEY AUTOINCREMENT,
    behance_id          TEXT    UNIQUE NOT NULL,
    title               TEXT,
    url                 TEXT,
    url_slug            TEXT,
    published_date      TEXT,
    publish_day_of_week INTEGER,
    publish_hour        INTEGER,
    author_id           INTEGER,
    module_count        INTEGER DEFAULT 0,
    image_count         INTEGER DEFAULT 0,
    video_count         INTEGER DEFAULT 0,
    text_count          INTEGER DEFAULT 0,
    embed_count         INTEGER DEFAULT 0,
    description_length  INTEGER DEFAULT 0,
    description_has_query_keywords INTEGER DEFAULT 0,
    title_keyword_match REAL    DEFAULT 0.0,
    has_external_links  INTEGER DEFAULT 0,
    external_link_count INTEGER DEFAULT 0,
    cover_image_url     TEXT,
    cover_image_width   INTEGER,
    cover_image_height  INTEGER,
    comments_count      INTEGER DEFAULT 0,
    saves_count         INTEGER DEFAULT 0,
    is_featured         INTEGER DEFAULT 0,
    co_owners_count     INTEGER DEFAULT 0,
    creative_fields     TEXT,
    tools_used          TEXT,
    is_my_project       INTEGER DEFAULT 0,
    first_seen          TEXT,
    last_seen           TEXT,
    FOREIGN KEY (author_id) REFERENCES authors(id)
);
CREATE INDEX IF NOT EXISTS idx_projects_author ON projects(author_id);
CREATE INDEX IF NOT EXISTS idx_projects_behance_id ON projects(behance_id);

-- Tag set per project. Re-inserting an existing tag is a no-op.
CREATE TABLE IF NOT EXISTS project_tags (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    project_id  INTEGER NOT NULL,
    tag_name    TEXT    NOT NULL,
    FOREIGN KEY (project_id) REFERENCES projects(id),
    UNIQUE(project_id, tag_name)
);

-- One ranked appearance of a project within one snapshot. Append-only.
CREATE TABLE IF NOT EXISTS search_results (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    snapshot_id     INTEGER NOT NULL,
    project_id      INTEGER NOT NULL,
    position        INTEGER NOT NULL,
    appreciations   INTEGER DEFAULT 0,
    views           INTEGER DEFAULT 0,
    comments        INTEGER DEFAULT 0,
    is_promoted     INTEGER DEFAULT 0,
    is_featured     INTEGER DEFAULT 0,
    cover_image_url TEXT,
    FOREIGN KEY (snapshot_id) REFERENCES snapshots(id),
    FOREIGN KEY (project_id) REFERENCES projects(id),
    UNIQUE(snapshot_id, position)
);
CREATE INDEX IF NOT EXISTS idx_search_results_snapshot ON search_results(snapshot_id);
CREATE INDEX IF NOT EXISTS idx_search_results_project ON search_results(project_id);

-- Append-only samples for explicitly tracked gallery ids. Position
-- columns are NULL when the project was not in that query's collected
-- results for the run.
CREATE TABLE IF NOT EXISTS tracked_snapshots (
    id                    INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp             TEXT    NOT NULL,
    behance_id            TEXT    NOT NULL,
    label                 TEXT,
    appreciations         INTEGER DEFAULT 0,
    views                 INTEGER DEFAULT 0,
    comments              INTEGER DEFAULT 0,
    position_infografika  INTEGER,
    position_design_cards INTEGER,
    days_since_publish    REAL
);
CREATE INDEX IF NOT EXISTS idx_tracked_behance_id ON tracked_snapshots(behance_id);
`
