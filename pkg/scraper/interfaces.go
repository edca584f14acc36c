package scraper

import (
	"context"

	"ddgscraper/pkg/duckduckgo"
)

// TokenProvider obtains the session token that authorizes searches for a query
type TokenProvider interface {
	Token(ctx context.Context, query string) (string, error)
}

// ResultSearcher fetches one page of search results
type ResultSearcher interface {
	Search(ctx context.Context, session duckduckgo.Session, offset int) ([]duckduckgo.Result, error)
}

// ImageDownloader saves a single image and owns the per-query file index
type ImageDownloader interface {
	Download(ctx context.Context, imageURL, subdir string) (bool, error)
	ResetCount()
}

// OutputRoot is the destructive setup step run before any download
type OutputRoot interface {
	ResetOutputRoot() error
}
