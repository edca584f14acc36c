// Package duckduckgo provides a client for DuckDuckGo image search.
//
// A search runs in two steps. The landing page is fetched once per query and
// the vqd token is scraped from the first script in its head; every request
// to the i.js JSON endpoint must carry that token.
//
//	client := duckduckgo.NewClient(cfg, log)
//
//	token, err := client.Token(ctx, "cats")
//	if err != nil {
//	    return err
//	}
//	session := duckduckgo.Session{Query: "cats", Token: token}
//
//	results, err := client.Search(ctx, session, 0)
//	if errors.Is(err, scrapererrors.ErrNoResults) {
//	    // the page came back with a non-200 status
//	}
//
// ExtractToken and ExtractScriptFields work on raw page bytes and never touch
// the network.
package duckduckgo
