// package scrub runs the anonymization itself: an ordered registry of
// scrubbers sharing one database transaction and one set of audit files.
// Either every scrubber succeeds and the transaction commits, or the first
// failure rolls the whole run back.
package scrub

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/ledantec/dbscrub/internal/descriptor"
	"github.com/ledantec/dbscrub/internal/shared"
	"github.com/ledantec/dbscrub/internal/ssv"
	"github.com/ledantec/dbscrub/internal/store"
)

// Scrubber anonymizes one unit of the platform inside the run's transaction.
type Scrubber interface {
	Name() string
	Scrub(ctx context.Context, tx *store.Tx) error
}

// Reporter receives progress notifications as the run advances through the
// registry.
type Reporter interface {
	Start(unit string)
	Done(unit string)
	Fail(unit string, err error)
}

type noopReporter struct{}

func (noopReporter) Start(string)       {}
func (noopReporter) Done(string)        {}
func (noopReporter) Fail(string, error) {}

// Engine drives a full anonymization run.
type Engine struct {
	db       *sql.DB
	dialect  store.Dialect
	config   *shared.Config
	logger   *log.Logger
	reporter Reporter
}

// NewEngine builds an engine for the given database. reporter may be nil.
func NewEngine(db *sql.DB, dialect store.Dialect, config *shared.Config, logger *log.Logger, reporter Reporter) *Engine {
	if reporter == nil {
		reporter = noopReporter{}
	}
	return &Engine{
		db:       db,
		dialect:  dialect,
		config:   config,
		logger:   logger,
		reporter: reporter,
	}
}

// registry builds the scrubbers in their fixed execution order. Spaces and
// component instances go first so the structural passes that follow operate
// on already-neutral container names; domains must precede users and groups,
// whose global passes rely on the migrated specific identifiers.
func (e *Engine) registry(audit *ssv.Logger) []Scrubber {
	sync := descriptor.NewSynchronizer(e.config.Platform.Home, e.logger)
	return []Scrubber{
		&Spaces{templates: e.config.Templates.Space, audit: audit},
		&Components{templates: e.config.Templates.App, audit: audit},
		&Domains{
			templates:      e.config.Templates.Domain,
			userTemplates:  e.config.Templates.User,
			groupTemplates: e.config.Templates.Group,
			serverURL:      e.config.Platform.ServerURL,
			sync:           sync,
			audit:          audit,
			logger:         e.logger,
		},
		&Users{templates: e.config.Templates.User, audit: audit},
		&Groups{templates: e.config.Templates.Group},
		&Nodes{templates: e.config.Templates, audit: audit, logger: e.logger},
		&Publications{templates: e.config.Templates.Publication, audit: audit},
		&Authorizations{audit: audit},
	}
}

// Run executes the registry inside a single transaction. The audit files are
// opened before any database work and closed on every path, so whatever the
// outcome the operator keeps the records written so far.
func (e *Engine) Run(ctx context.Context) error {
	audit, err := ssv.Open(e.config.Audit.Dir)
	if err != nil {
		return fmt.Errorf("failed to open audit files: %w", err)
	}

	tx, err := store.Begin(ctx, e.db, e.dialect)
	if err != nil {
		audit.Close()
		return err
	}

	for _, s := range e.registry(audit) {
		e.reporter.Start(s.Name())
		if err := s.Scrub(ctx, tx); err != nil {
			e.reporter.Fail(s.Name(), err)
			if rerr := tx.Rollback(); rerr != nil {
				e.logger.Error("rollback failed", "error", rerr)
			}
			audit.Close()
			return fmt.Errorf("anonymizing the %s: %w", s.Name(), err)
		}
		e.reporter.Done(s.Name())
	}

	if err := tx.Commit(); err != nil {
		audit.Close()
		return err
	}
	return audit.Close()
}
