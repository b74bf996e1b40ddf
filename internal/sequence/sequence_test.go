package sequence_test

import (
	"testing"
	"time"

	"lapse/internal/scan"
	"lapse/internal/sequence"
)

func img(dir string, run, seq int) scan.Image {
	return scan.Image{
		Path: dir + "/file",
		Dir:  dir,
		Run:  run,
		Seq:  seq,
		Size: 100,
	}
}

func TestGroupContiguousRunStaysTogether(t *testing.T) {
	images := []scan.Image{
		img("A", 1, 100),
		img("A", 1, 101),
		img("A", 1, 102),
		img("A", 1, 103),
	}
	groups := sequence.Group(images, 5)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if groups[0].Count() != 4 {
		t.Fatalf("expected 4 images, got %d", groups[0].Count())
	}
	for i, image := range groups[0].Images {
		if image.Seq != 100+i {
			t.Fatalf("order not preserved at %d: %+v", i, image)
		}
	}
}

func TestGroupSplitsOnDirectoryChange(t *testing.T) {
	images := []scan.Image{
		img("A", 1, 100),
		img("A", 1, 101),
		img("B", 1, 102),
	}
	groups := sequence.Group(images, 5)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Count() != 2 || groups[1].Count() != 1 {
		t.Fatalf("unexpected split: %d/%d", groups[0].Count(), groups[1].Count())
	}
	if groups[0].Index != 1 || groups[1].Index != 2 {
		t.Fatalf("unexpected indices: %d/%d", groups[0].Index, groups[1].Index)
	}
}

func TestGroupSplitsOnGapAboveThreshold(t *testing.T) {
	images := []scan.Image{
		img("A", 1, 100),
		img("A", 1, 105), // gap of 5 == threshold, stays
		img("A", 1, 111), // gap of 6 > threshold, splits
	}
	groups := sequence.Group(images, 5)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Count() != 2 {
		t.Fatalf("gap equal to threshold must not split, got %d in first group", groups[0].Count())
	}
}

func TestGroupSplitsOnRunChange(t *testing.T) {
	images := []scan.Image{
		img("A", 1, 100),
		img("A", 2, 101),
	}
	groups := sequence.Group(images, 5)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
}

func TestGroupSplitsOnCounterReset(t *testing.T) {
	images := []scan.Image{
		img("A", 0, 998),
		img("A", 0, 999),
		img("A", 0, 1),
		img("A", 0, 2),
	}
	groups := sequence.Group(images, 5)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
}

func TestGroupEmptyInput(t *testing.T) {
	if groups := sequence.Group(nil, 5); groups != nil {
		t.Fatalf("expected nil for empty input, got %v", groups)
	}
}

func TestBoundsAndTotals(t *testing.T) {
	base := time.Date(2026, 8, 1, 6, 0, 0, 0, time.UTC)
	images := []scan.Image{
		{Dir: "A", Seq: 1, Size: 10, Taken: base.Add(2 * time.Second)},
		{Dir: "A", Seq: 2, Size: 20, Taken: base},
		{Dir: "A", Seq: 3, Size: 30, Taken: base.Add(4 * time.Second)},
	}
	groups := sequence.Group(images, 5)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	seq := groups[0]
	if seq.TotalBytes() != 60 {
		t.Fatalf("expected 60 bytes, got %d", seq.TotalBytes())
	}
	start, end := seq.Bounds()
	if !start.Equal(base) || !end.Equal(base.Add(4*time.Second)) {
		t.Fatalf("unexpected bounds: %v .. %v", start, end)
	}
}

func TestFingerprintStableAndDistinct(t *testing.T) {
	a := sequence.Group([]scan.Image{img("A", 1, 100), img("A", 1, 101)}, 5)[0]
	b := sequence.Group([]scan.Image{img("A", 1, 100), img("A", 1, 101)}, 5)[0]
	c := sequence.Group([]scan.Image{img("B", 1, 100), img("B", 1, 101)}, 5)[0]

	if a.Fingerprint() == "" {
		t.Fatal("expected non-empty fingerprint")
	}
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatal("identical sequences must share a fingerprint")
	}
	if a.Fingerprint() == c.Fingerprint() {
		t.Fatal("sequences from different directories must differ")
	}
}
