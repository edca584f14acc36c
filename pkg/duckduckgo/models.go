package duckduckgo

// Session pairs a query with the vqd token that authorizes its search requests
type Session struct {
	Query string
	Token string
}

// SearchResponse represents one page returned by the i.js endpoint.
// Results is a pointer so an absent key can be told apart from an empty page.
type SearchResponse struct {
	Results *[]Result `json:"results"`
	Next    string    `json:"next"`
}

// Result represents a single image search record
type Result struct {
	Image     string `json:"image"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail"`
	Source    string `json:"source"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// Image holds a fetched image body and the headers needed to name it
type Image struct {
	URL         string
	ContentType string
	StatusCode  int
	Data        []byte
}
