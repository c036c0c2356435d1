package diag

// Reporter: минимальный контракт получения диагностик.
// Реализации: BagReporter (кладёт в Bag), NopReporter, DedupReporter.
type Reporter interface {
	Report(code Code, sev Severity, loc Location, msg string, notes []Note)
}

// BagReporter: адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, loc Location, msg string, notes []Note) {
	if r.Bag != nil {
		r.Bag.Add(Diagnostic{Severity: sev, Code: code, Location: loc, Message: msg, Notes: notes})
	}
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Code, Severity, Location, string, []Note) {}

// DedupReporter forwards the first of identical diagnostics; notes do not
// take part in the comparison. Checks of both sides often report the same
// unresolved enclosing type for every member.
type DedupReporter struct {
	next    Reporter
	seen    map[reportKey]struct{}
	dropped int
}

// reportKey is a Diagnostic without its notes.
type reportKey struct {
	sev  Severity
	code Code
	loc  Location
	msg  string
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: map[reportKey]struct{}{}}
}

func (r *DedupReporter) Report(code Code, sev Severity, loc Location, msg string, notes []Note) {
	if r == nil {
		return
	}
	key := reportKey{sev: sev, code: code, loc: loc, msg: msg}
	if _, dup := r.seen[key]; dup {
		r.dropped++
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(code, sev, loc, msg, notes)
	}
}

// Dropped counts the repeats that were not forwarded.
func (r *DedupReporter) Dropped() int {
	if r == nil {
		return 0
	}
	return r.dropped
}
