// Package scraper runs the per-query pipeline: acquire a token, page through
// the search results and download every image, strictly one request at a time.
//
// Each query moves through TOKEN_PENDING, TOKEN_ACQUIRED, then alternating
// PAGE_FETCH and DOWNLOAD states until every page offset below the requested
// amount has been fetched. Any fatal error aborts the whole run, not only the
// current query. A failed image download is logged and skipped.
//
//	s := scraper.New(cfg, log)
//	if err := s.Run(ctx, []string{"cats", "dogs"}); err != nil {
//	    os.Exit(1)
//	}
//
// Run wipes the configured output directory before the first query.
package scraper
