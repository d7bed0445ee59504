package domain

// PhotoSource is the provider name reported in photo responses.
const PhotoSource = "pexels"

// Publisher identifies the photographer of a photo.
type Publisher struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	ID   int64  `json:"id"`
}

// Photo is the normalized photo record returned to clients.
// ID is the provider-assigned identity used for deduplication.
type Photo struct {
	ID          int64             `json:"id"`
	Title       string            `json:"title"`
	Alt         string            `json:"alt"`
	URL         string            `json:"url"`
	Publisher   Publisher         `json:"publisher"`
	PublishedAt *string           `json:"published_at"` // provider has no publish date; always null
	AvgColor    string            `json:"avg_color"`
	Width       int               `json:"width"`
	Height      int               `json:"height"`
	Src         map[string]string `json:"src"`
	Attribution string            `json:"attribution"`
}

// SearchQuery is a single provider search request.
type SearchQuery struct {
	Query   string
	PerPage int
	Page    int
	APIKey  string
}

// PhotoPage is one page of normalized photos.
// For plain search TotalResults is the provider total; for recommendations it is
// the size of the deduplicated merged list.
type PhotoPage struct {
	Source       string  `json:"source"`
	TotalResults int     `json:"total_results"`
	Page         int     `json:"page"`
	PerPage      int     `json:"per_page"`
	NextPage     *string `json:"next_page,omitempty"`
	Photos       []Photo `json:"photos"`
}
