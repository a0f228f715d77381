package model

// SourceType classifies a candidate source by the trustworthiness of its domain
type SourceType string

const (
	SourceOfficial SourceType = "official" // .gov, .edu, institutional documents
	SourceNews     SourceType = "news"     // established news organizations
	SourceBlog     SourceType = "blog"     // blogs and opinion platforms
	SourceSocial   SourceType = "social"   // social media posts
	SourceUnknown  SourceType = "unknown"  // everything else
)

// SourceStatus tracks a candidate source through its lifecycle. filtered,
// analyzed and fetch_failed are all terminal; only analyzed sources enter
// scoring.
type SourceStatus string

const (
	StatusPending     SourceStatus = "pending"
	StatusAnalyzed    SourceStatus = "analyzed"
	StatusFiltered    SourceStatus = "filtered"
	StatusFetchFailed SourceStatus = "fetch_failed"
)

// Source is a candidate corroborating document discovered by search
type Source struct {
	URL            string         `json:"url"`
	Domain         string         `json:"domain"`
	Title          string         `json:"title,omitempty"`
	Snippet        string         `json:"snippet,omitempty"`
	Type           SourceType     `json:"source_type"`
	Status         SourceStatus   `json:"status"`
	RelevanceScore float64        `json:"relevance_score"`
	Hierarchy      *FactHierarchy `json:"fact_hierarchy,omitempty"`
	Verdicts       []Verdict      `json:"verdicts,omitempty"`
	FailReason     string         `json:"fail_reason,omitempty"`
}

// VerdictOutcome is the external comparison judgment for one original entity
type VerdictOutcome string

const (
	OutcomeMatch    VerdictOutcome = "match"
	OutcomeConflict VerdictOutcome = "conflict"
	OutcomeAbsent   VerdictOutcome = "absent" // the source simply does not discuss it
)

// Verdict is one judgment about one original-article entity against one
// source's hierarchy. SourceRef is set only for match and conflict outcomes.
type Verdict struct {
	OriginalRef string         `json:"original_ref"`
	Kind        EntityKind     `json:"kind,omitempty"`
	Outcome     VerdictOutcome `json:"outcome"`
	SourceRef   string         `json:"source_ref,omitempty"`
	Detail      string         `json:"detail,omitempty"` // match strength or conflict type
}
