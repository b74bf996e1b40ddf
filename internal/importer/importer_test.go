package importer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"lapse/internal/importer"
	"lapse/internal/logging"
	"lapse/internal/sequence"
	"lapse/internal/testsupport"
)

type scriptedSelector struct {
	decisions []importer.Decision
	calls     int
	seen      []bool
}

func (s *scriptedSelector) Decide(_ sequence.Sequence, imported bool) (importer.Decision, error) {
	s.seen = append(s.seen, imported)
	d := importer.DecisionNo
	if s.calls < len(s.decisions) {
		d = s.decisions[s.calls]
	}
	s.calls++
	return d, nil
}

func writeCard(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	for i := 1; i <= 3; i++ {
		testsupport.WriteShot(t, root, "100GOPRO", 1, i, base.Add(time.Duration(i)*time.Second))
	}
	for i := 1; i <= 2; i++ {
		testsupport.WriteShot(t, root, "100GOPRO", 2, i, base.Add(time.Duration(10+i)*time.Second))
	}
	return root
}

func TestRunExportsApprovedSequences(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenCatalog(t, cfg)
	source := writeCard(t)

	imp := importer.New(cfg, logging.NewNop(), store, importer.AcceptAll{})
	summary, err := imp.Run(context.Background(), source, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Images != 5 {
		t.Fatalf("expected 5 images scanned, got %d", summary.Images)
	}
	if summary.Exported != 2 {
		t.Fatalf("expected 2 sequences exported, got %d", summary.Exported)
	}
	if summary.SessionID == "" {
		t.Fatal("expected a session id")
	}

	for seq, want := range map[string][]string{
		"timelapse_1": {"00000001.JPG", "00000002.JPG", "00000003.JPG"},
		"timelapse_2": {"00000001.JPG", "00000002.JPG"},
	} {
		dir := filepath.Join(cfg.Paths.DestDir, seq)
		for _, name := range want {
			if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
				t.Fatalf("expected %s/%s: %v", seq, name, err)
			}
		}
	}

	records, err := store.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 catalog records, got %d", len(records))
	}
	if records[0].SessionID != summary.SessionID {
		t.Fatalf("catalog session mismatch: %q vs %q", records[0].SessionID, summary.SessionID)
	}
}

func TestRunDeclineCopiesNothing(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCatalogDisabled())
	source := writeCard(t)

	sel := &scriptedSelector{decisions: []importer.Decision{importer.DecisionNo, importer.DecisionNo}}
	imp := importer.New(cfg, logging.NewNop(), nil, sel)
	summary, err := imp.Run(context.Background(), source, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Exported != 0 {
		t.Fatalf("expected nothing exported, got %d", summary.Exported)
	}
	entries, err := os.ReadDir(cfg.Paths.DestDir)
	if err != nil {
		t.Fatalf("read dest: %v", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			t.Fatalf("unexpected destination directory %s", e.Name())
		}
	}
}

func TestRunQuitStopsSession(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCatalogDisabled())
	source := writeCard(t)

	sel := &scriptedSelector{decisions: []importer.Decision{importer.DecisionQuit}}
	imp := importer.New(cfg, logging.NewNop(), nil, sel)
	summary, err := imp.Run(context.Background(), source, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sel.calls != 1 {
		t.Fatalf("expected a single prompt, got %d", sel.calls)
	}
	if summary.Exported != 0 {
		t.Fatalf("expected nothing exported after quit, got %d", summary.Exported)
	}
}

func TestRunAcceptAllStopsPrompting(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCatalogDisabled())
	source := writeCard(t)

	sel := &scriptedSelector{decisions: []importer.Decision{importer.DecisionAll}}
	imp := importer.New(cfg, logging.NewNop(), nil, sel)
	summary, err := imp.Run(context.Background(), source, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sel.calls != 1 {
		t.Fatalf("expected one prompt before accept-all, got %d", sel.calls)
	}
	if summary.Exported != 2 {
		t.Fatalf("expected both sequences exported, got %d", summary.Exported)
	}
}

func TestRunDryRunCopiesNothing(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenCatalog(t, cfg)
	source := writeCard(t)

	imp := importer.New(cfg, logging.NewNop(), store, importer.AcceptAll{})
	summary, err := imp.Run(context.Background(), source, true)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Exported != 0 || summary.Bytes != 0 {
		t.Fatalf("dry run must not copy: %+v", summary)
	}
	for _, outcome := range summary.Outcomes {
		if outcome.Status != importer.StatusPlanned {
			t.Fatalf("expected planned status, got %s", outcome.Status)
		}
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.DestDir, "timelapse_1")); !os.IsNotExist(err) {
		t.Fatalf("dry run created destination directory: %v", err)
	}
	records, err := store.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("dry run recorded %d catalog rows", len(records))
	}
}

func TestRunFlagsPreviouslyImported(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenCatalog(t, cfg)
	source := writeCard(t)

	imp := importer.New(cfg, logging.NewNop(), store, importer.AcceptAll{})
	if _, err := imp.Run(context.Background(), source, false); err != nil {
		t.Fatalf("first run: %v", err)
	}

	sel := &scriptedSelector{decisions: []importer.Decision{importer.DecisionNo, importer.DecisionNo}}
	second := importer.New(cfg, logging.NewNop(), store, sel)
	if _, err := second.Run(context.Background(), source, false); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(sel.seen) != 2 {
		t.Fatalf("expected 2 prompts, got %d", len(sel.seen))
	}
	for i, imported := range sel.seen {
		if !imported {
			t.Fatalf("sequence %d not flagged as previously imported", i+1)
		}
	}
}

func TestRunEmptySourceSucceeds(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCatalogDisabled())
	source := t.TempDir()

	imp := importer.New(cfg, logging.NewNop(), nil, importer.AcceptAll{})
	summary, err := imp.Run(context.Background(), source, false)
	if err != nil {
		t.Fatalf("expected clean run on empty source, got %v", err)
	}
	if summary.Images != 0 || len(summary.Outcomes) != 0 {
		t.Fatalf("expected empty summary, got %+v", summary)
	}
}

func TestRunMissingSourceFails(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCatalogDisabled())

	imp := importer.New(cfg, logging.NewNop(), nil, importer.AcceptAll{})
	if _, err := imp.Run(context.Background(), filepath.Join(t.TempDir(), "gone"), false); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestRunRefusesConcurrentSession(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCatalogDisabled())
	source := writeCard(t)

	if err := os.MkdirAll(cfg.Paths.DestDir, 0o755); err != nil {
		t.Fatalf("mkdir dest: %v", err)
	}
	held := flock.New(filepath.Join(cfg.Paths.DestDir, ".lapse.lock"))
	ok, err := held.TryLock()
	if err != nil || !ok {
		t.Fatalf("prime lock: ok=%v err=%v", ok, err)
	}
	defer held.Unlock()

	imp := importer.New(cfg, logging.NewNop(), nil, importer.AcceptAll{})
	if _, err := imp.Run(context.Background(), source, false); err == nil {
		t.Fatal("expected error while lock is held")
	}
}
