package arttinder

import (
	"github.com/kailas-cloud/arttinder/internal/domain"
)

// Response records shared with the server.
type (
	// Photo is a normalized photo record.
	Photo = domain.Photo
	// Publisher identifies the photographer of a photo.
	Publisher = domain.Publisher
	// PhotoPage is one page of photos.
	PhotoPage = domain.PhotoPage
	// Preferences is an open key-value record; "styles" and "subjects" drive recommendations.
	Preferences = domain.Preferences
	// HandleLookup is the result of ValidateHandle.
	HandleLookup = domain.HandleLookup
)

// SearchRequest is a plain photo search. Zero PerPage and Page use the server defaults (24, 1).
type SearchRequest struct {
	Query   string
	PerPage int
	Page    int
}

// PageRequest selects a page of recommendations. Zero values use the server defaults (10, 1).
type PageRequest struct {
	PerPage int
	Page    int
}

// Suggestions is the result of Suggest.
type Suggestions struct {
	Query string   `json:"query"`
	Terms []string `json:"suggestions"`
	// UpstreamTokens is the language-model token count the server reported, 0 when none.
	UpstreamTokens int `json:"-"`
}

// HealthStatus represents the aggregated server health.
type HealthStatus struct {
	Status  string            `json:"status"` // "ok", "degraded", "error"
	Checks  map[string]string `json:"checks"` // component → "ok"/"error"
	Version string            `json:"version"`
}
