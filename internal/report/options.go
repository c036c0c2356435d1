package report

import "golang.org/x/text/language"

// PrettyOpts configures pretty-printing of a result.
type PrettyOpts struct {
	Color          bool
	Locale         language.Tag
	Width          int // максимальная ширина колонки идентификатора, 0 - не ограничено
	Classification bool
	Diagnostics    bool
	Timings        bool
}

// JSONOpts configures JSON output of a result.
type JSONOpts struct {
	Locale      language.Tag
	Max         int // обрезка вывода проблем
	Diagnostics bool
	Stats       bool
}
