// Package logger provides structured logging for the image scraper.
//
// It wraps zerolog behind a small Logger interface so components receive a
// logger by injection and tests can swap in TestLogger or NewNopLogger.
//
//	if err := logger.Initialize(&cfg.Logging); err != nil {
//	    return err
//	}
//
//	log := logger.GetLogger().WithField("query", "cats")
//	log.InfoWithFields("search page fetched", map[string]interface{}{
//	    "offset":  100,
//	    "results": 100,
//	})
//
// Console output goes to stderr with colored levels; setting File writes
// plain JSON lines to that file instead.
package logger
