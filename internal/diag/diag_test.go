package diag

import (
	"testing"
)

func TestBagLimitAndSort(t *testing.T) {
	bag := NewBag(3)
	r := BagReporter{Bag: bag}
	r.Report(TreeDuplicateIdentity, SevWarning, Location{Side: SideNew, Identity: "b.B"}, "dup", nil)
	r.Report(CheckEnclosingUnresolved, SevWarning, Location{Side: SideOld, Identity: "a.A#m()"}, "no type", nil)
	r.Report(TreeInfo, SevInfo, Location{Side: SideOld, Identity: "a.A#m()"}, "info", nil)
	if bag.Add(New(SevInfo, TreeInfo, Location{}, "overflow")) {
		t.Fatalf("expected bag to reject a fourth diagnostic")
	}

	bag.Sort()
	items := bag.Items()
	if items[0].Code != CheckEnclosingUnresolved {
		t.Fatalf("expected warning first for same location, got %s", items[0].Code.ID())
	}
	if items[2].Location.Side != SideNew {
		t.Fatalf("expected new-side diagnostics last, got %s", items[2].Location)
	}
	if !bag.HasWarnings() {
		t.Fatalf("expected warnings")
	}
}

func TestNewBagClampsNegative(t *testing.T) {
	bag := NewBag(-1)
	if bag.Cap() != 0 {
		t.Fatalf("expected zero capacity, got %d", bag.Cap())
	}
	huge := NewBag(1 << 20)
	if huge.Cap() != 65535 {
		t.Fatalf("expected clamp to 65535, got %d", huge.Cap())
	}
}

func TestDedupReporterForwardsOnce(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	loc := Location{Side: SideOld, Identity: "a.A"}
	r.Report(TreeDuplicateIdentity, SevWarning, loc, "dup", nil)
	r.Report(TreeDuplicateIdentity, SevWarning, loc, "dup", nil)
	ReportWarning(r, TreeDuplicateIdentity, loc, "dup").WithNote(loc, "again").Emit()
	if bag.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", bag.Len())
	}
	if r.Dropped() != 2 {
		t.Fatalf("expected 2 dropped repeats, got %d", r.Dropped())
	}
}

func TestFormatShortDiagnosticsIsStable(t *testing.T) {
	diags := []Diagnostic{
		NewWarning(TreeDuplicateIdentity, Location{Side: SideNew, Identity: "p.B"}, "duplicate\nidentity"),
		NewWarning(CheckEnclosingUnresolved, Location{Side: SideNew, Identity: "p.A#m()"}, "no enclosing type").
			WithNote(Location{Side: SideNew, Identity: "p"}, "parent is a package"),
	}
	got := FormatShortDiagnostics(diags, true)
	want := "note CHK2001 new:p parent is a package\n" +
		"warning CHK2001 new:p.A#m() no enclosing type\n" +
		"warning TRE1001 new:p.B duplicate identity"
	if got != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestSeveritySpelling(t *testing.T) {
	if SevWarning.String() != "WARNING" || SevWarning.Label() != "warning" {
		t.Fatalf("unexpected warning spelling %q/%q", SevWarning.String(), SevWarning.Label())
	}
	if Severity(7).String() != "UNKNOWN" {
		t.Fatalf("expected UNKNOWN for out-of-range severity")
	}
	if SevInfo.Notable() || !SevWarning.Notable() {
		t.Fatalf("only warnings should be notable")
	}
}
