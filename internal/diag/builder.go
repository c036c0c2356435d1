package diag

// New builds a diagnostic without notes.
func New(sev Severity, code Code, loc Location, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Location: loc, Message: msg}
}

func NewWarning(code Code, loc Location, msg string) Diagnostic {
	return New(SevWarning, code, loc, msg)
}

func (d Diagnostic) WithNote(loc Location, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Location: loc, Msg: msg})
	return d
}

// ReportBuilder собирает диагностику по частям и отдаёт её Reporter ровно
// один раз. Методы терпят nil-получателя.
type ReportBuilder struct {
	to   Reporter
	d    Diagnostic
	sent bool
}

func NewReportBuilder(r Reporter, sev Severity, code Code, loc Location, msg string) *ReportBuilder {
	return &ReportBuilder{to: r, d: New(sev, code, loc, msg)}
}

func ReportWarning(r Reporter, code Code, loc Location, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, code, loc, msg)
}

func ReportInfo(r Reporter, code Code, loc Location, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevInfo, code, loc, msg)
}

func (b *ReportBuilder) WithNote(loc Location, msg string) *ReportBuilder {
	if b != nil {
		b.d = b.d.WithNote(loc, msg)
	}
	return b
}

func (b *ReportBuilder) Emit() {
	if b == nil || b.sent {
		return
	}
	b.sent = true
	if b.to != nil {
		b.to.Report(b.d.Code, b.d.Severity, b.d.Location, b.d.Message, b.d.Notes)
	}
}

// Diagnostic returns what has been collected so far, sent or not.
func (b *ReportBuilder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.d
}
