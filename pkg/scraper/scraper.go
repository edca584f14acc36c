package scraper

import (
	"context"
	"errors"
	"fmt"
	"os"

	"ddgscraper/internal/downloader"
	"ddgscraper/pkg/config"
	"ddgscraper/pkg/duckduckgo"
	scrapererrors "ddgscraper/pkg/errors"
	"ddgscraper/pkg/logger"
	"ddgscraper/pkg/storage"
	"ddgscraper/pkg/ui"
)

// State is a step of the per-query pipeline
type State string

const (
	StateTokenPending  State = "TOKEN_PENDING"
	StateTokenAcquired State = "TOKEN_ACQUIRED"
	StatePageFetch     State = "PAGE_FETCH"
	StateDownload      State = "DOWNLOAD"
	StateDone          State = "DONE"
)

// Scraper orchestrates token acquisition, pagination and downloads
type Scraper struct {
	tokens     TokenProvider
	searcher   ResultSearcher
	downloader ImageDownloader
	root       OutputRoot
	config     *config.Config
	logger     logger.Logger
}

// New wires a Scraper against the real DuckDuckGo endpoints
func New(cfg *config.Config, log logger.Logger) *Scraper {
	if log == nil {
		log = logger.GetLogger()
	}

	client := duckduckgo.NewClient(cfg, log)
	manager := storage.NewManager(cfg.Output.BaseDirectory)
	reporter := ui.NewReporter(os.Stdout, cfg.UI.Quiet)

	return NewWithDeps(cfg, client, client, downloader.New(client, manager, reporter, log), manager, log)
}

// NewWithDeps creates a Scraper from explicit components
func NewWithDeps(
	cfg *config.Config,
	tokens TokenProvider,
	searcher ResultSearcher,
	dl ImageDownloader,
	root OutputRoot,
	log logger.Logger,
) *Scraper {
	if log == nil {
		log = logger.GetLogger()
	}

	return &Scraper{
		tokens:     tokens,
		searcher:   searcher,
		downloader: dl,
		root:       root,
		config:     cfg,
		logger:     log,
	}
}

// PageOffsets returns the offsets 0, pageSize, 2*pageSize, ... below amount.
// A trailing partial page is still requested at full size.
func PageOffsets(amount, pageSize int) []int {
	if pageSize <= 0 {
		pageSize = duckduckgo.PageSize
	}

	var offsets []int
	for s := 0; s < amount; s += pageSize {
		offsets = append(offsets, s)
	}
	return offsets
}

// Run resets the output root, then scrapes every query in order. The first
// fatal error stops the run.
func (s *Scraper) Run(ctx context.Context, queries []string) error {
	s.logger.InfoWithFields("resetting output directory", map[string]interface{}{
		"output_dir": s.config.Output.BaseDirectory,
	})
	if err := s.root.ResetOutputRoot(); err != nil {
		return err
	}

	for _, query := range queries {
		if err := s.ScrapeQuery(ctx, query); err != nil {
			return fmt.Errorf("query %q: %w", query, err)
		}
	}
	return nil
}

// ScrapeQuery runs the full pipeline for one query
func (s *Scraper) ScrapeQuery(ctx context.Context, query string) error {
	log := s.logger.WithField("query", query)
	ui.PrintInfo("Query", query)

	log.DebugWithFields("state change", map[string]interface{}{"state": StateTokenPending})
	token, err := s.tokens.Token(ctx, query)
	if err != nil {
		log.WithError(err).Error("failed trying to get vqd")
		return err
	}
	session := duckduckgo.Session{Query: query, Token: token}
	log.DebugWithFields("state change", map[string]interface{}{"state": StateTokenAcquired})

	s.downloader.ResetCount()

	for _, offset := range PageOffsets(s.config.Download.Amount, s.config.Search.PageSize) {
		if err := ctx.Err(); err != nil {
			return err
		}

		log.DebugWithFields("state change", map[string]interface{}{"state": StatePageFetch, "offset": offset})
		results, err := s.searcher.Search(ctx, session, offset)
		if err != nil {
			if errors.Is(err, scrapererrors.ErrNoResults) && s.config.Search.SkipFailedPages {
				log.WithError(err).WithField("offset", offset).Warn("skipping failed search page")
				ui.PrintWarning(fmt.Sprintf("Skipping results page at offset %d", offset), err)
				continue
			}
			return err
		}

		log.DebugWithFields("state change", map[string]interface{}{"state": StateDownload, "offset": offset})
		for _, result := range results {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := s.downloader.Download(ctx, result.Image, query); err != nil {
				return err
			}
		}
	}

	log.DebugWithFields("state change", map[string]interface{}{"state": StateDone})
	return nil
}
