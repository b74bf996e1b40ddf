package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"lapse/internal/catalog"
	"lapse/internal/config"
	"lapse/internal/export"
	"lapse/internal/logging"
	"lapse/internal/preflight"
	"lapse/internal/scan"
	"lapse/internal/sequence"
)

const lockFileName = ".lapse.lock"

// Status describes what happened to a sequence during a session.
type Status string

const (
	StatusExported Status = "exported"
	StatusDeclined Status = "declined"
	StatusSkipped  Status = "skipped"
	StatusFailed   Status = "failed"
	StatusPlanned  Status = "planned"
)

// Outcome pairs a sequence with its session result.
type Outcome struct {
	Sequence sequence.Sequence
	Status   Status
	Dest     string
	Imported bool
	Err      error
}

// Summary reports an entire session.
type Summary struct {
	SessionID string
	Source    string
	Images    int
	Outcomes  []Outcome
	Exported  int
	Bytes     int64
	Elapsed   time.Duration
}

// Importer runs import sessions against a fixed configuration.
type Importer struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *catalog.Store
	selector Selector
}

// New builds an importer. store may be nil when the catalog is disabled;
// selector must not be nil.
func New(cfg *config.Config, logger *slog.Logger, store *catalog.Store, selector Selector) *Importer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Importer{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "importer"),
		store:    store,
		selector: selector,
	}
}

// Run executes one session over source. With dryRun set, sequences are
// selected and reported but nothing is copied or recorded.
func (i *Importer) Run(ctx context.Context, source string, dryRun bool) (*Summary, error) {
	started := time.Now()

	if err := preflight.CheckSourceReadable(source); err != nil {
		return nil, err
	}
	destRoot := i.cfg.Paths.DestDir
	if err := os.MkdirAll(destRoot, 0o755); err != nil {
		return nil, fmt.Errorf("create destination %s: %w", destRoot, err)
	}
	if err := preflight.CheckDestWritable(destRoot); err != nil {
		return nil, err
	}

	lock := flock.New(filepath.Join(destRoot, lockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, errors.New("another import session is already running against this destination")
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			i.logger.Warn("failed to release session lock", logging.Error(unlockErr))
		}
	}()

	summary := &Summary{
		SessionID: uuid.NewString(),
		Source:    source,
	}
	logger := i.logger.With(logging.String(logging.FieldSession, summary.SessionID))
	logger.Info("import session started",
		logging.String(logging.FieldSource, source),
		logging.String(logging.FieldDest, destRoot),
		logging.Bool("dry_run", dryRun))

	scanner := scan.New(logger, i.cfg.Import.Extensions)
	images, err := scanner.Scan(source)
	if err != nil {
		if errors.Is(err, scan.ErrNoImages) {
			logger.Info("no timelapse images on source")
			summary.Elapsed = time.Since(started)
			return summary, nil
		}
		return nil, err
	}
	summary.Images = len(images)

	sequences := sequence.Group(images, i.cfg.Import.GapThreshold)
	logger.Info("sequences discovered",
		logging.Int("images", len(images)),
		logging.Int("sequences", len(sequences)))

	acceptRest := false
	for _, seq := range sequences {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}

		outcome := Outcome{Sequence: seq, Status: StatusDeclined}
		outcome.Imported = i.alreadyImported(ctx, logger, seq)

		decision := DecisionYes
		if !acceptRest {
			decision, err = i.selector.Decide(seq, outcome.Imported)
			if err != nil {
				return summary, fmt.Errorf("select sequence %d: %w", seq.Index, err)
			}
		}

		switch decision {
		case DecisionQuit:
			logger.Info("session ended by user", logging.Int(logging.FieldSequence, seq.Index))
			summary.Outcomes = append(summary.Outcomes, outcome)
			summary.Elapsed = time.Since(started)
			return summary, nil
		case DecisionNo:
			summary.Outcomes = append(summary.Outcomes, outcome)
			continue
		case DecisionAll:
			acceptRest = true
		}

		i.exportSequence(ctx, logger, seq, dryRun, &outcome, summary)
		summary.Outcomes = append(summary.Outcomes, outcome)
	}

	summary.Elapsed = time.Since(started)
	logger.Info("import session finished",
		logging.Int("exported", summary.Exported),
		logging.Int64("bytes", summary.Bytes),
		logging.Duration("elapsed", summary.Elapsed))
	return summary, nil
}

func (i *Importer) exportSequence(ctx context.Context, logger *slog.Logger, seq sequence.Sequence, dryRun bool, outcome *Outcome, summary *Summary) {
	destRoot := i.cfg.Paths.DestDir
	outcome.Dest = filepath.Join(destRoot, fmt.Sprintf("%s_%d", i.cfg.Import.Prefix, seq.Index))

	if dryRun {
		outcome.Status = StatusPlanned
		return
	}

	headroom := i.cfg.Import.MinFreeMiB << 20
	if err := preflight.CheckSpace(destRoot, seq.TotalBytes(), headroom); err != nil {
		outcome.Status = StatusSkipped
		outcome.Err = err
		logger.Warn("sequence skipped",
			logging.Int(logging.FieldSequence, seq.Index),
			logging.Error(err))
		return
	}

	exporter := export.New(logger, i.cfg.Import.Verify)
	result, err := exporter.Export(destRoot, i.cfg.Import.Prefix, seq)
	summary.Bytes += result.Bytes
	if err != nil {
		outcome.Status = StatusFailed
		outcome.Err = err
		logger.Error("sequence export failed",
			logging.Int(logging.FieldSequence, seq.Index),
			logging.Error(err))
		return
	}

	outcome.Status = StatusExported
	summary.Exported++
	i.record(ctx, logger, seq, result, summary.SessionID)
}

func (i *Importer) alreadyImported(ctx context.Context, logger *slog.Logger, seq sequence.Sequence) bool {
	if i.store == nil {
		return false
	}
	seen, err := i.store.WasImported(ctx, seq.Fingerprint())
	if err != nil {
		logger.Warn("catalog lookup failed",
			logging.Int(logging.FieldSequence, seq.Index),
			logging.Error(err))
		return false
	}
	return seen
}

func (i *Importer) record(ctx context.Context, logger *slog.Logger, seq sequence.Sequence, result export.Result, sessionID string) {
	if i.store == nil {
		return
	}
	start, end := seq.Bounds()
	rec := &catalog.Record{
		SessionID:    sessionID,
		Fingerprint:  seq.Fingerprint(),
		SourceDir:    seq.SourceDir(),
		DestDir:      result.Dir,
		Prefix:       i.cfg.Import.Prefix,
		ImageCount:   seq.Count(),
		ByteTotal:    result.Bytes,
		CaptureStart: start,
		CaptureEnd:   end,
	}
	if err := i.store.Add(ctx, rec); err != nil {
		logger.Warn("catalog record failed",
			logging.Int(logging.FieldSequence, seq.Index),
			logging.Error(err))
	}
}
