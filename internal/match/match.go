package match

import (
	"fmt"
	"iter"

	"apicompat/internal/diag"
	"apicompat/internal/element"
)

// EventKind distinguishes entering and leaving a pair's subtree.
type EventKind uint8

const (
	Enter EventKind = iota + 1
	Leave
)

func (k EventKind) String() string {
	switch k {
	case Enter:
		return "enter"
	case Leave:
		return "leave"
	default:
		return "unknown"
	}
}

// Event is one traversal step. Depth is 1 for the children of the roots.
type Event struct {
	Kind  EventKind
	Pair  Pair
	Depth int
}

// Options configures a match.
type Options struct {
	// Reporter receives InputTreeInconsistency diagnostics; nil drops them.
	Reporter diag.Reporter
}

// Stats counts what a stream produced so far.
type Stats struct {
	Matched int
	Removed int
	Added   int
}

// Total is the number of pairs.
func (s Stats) Total() int { return s.Matched + s.Removed + s.Added }

type level struct {
	pair     Pair
	depth    int
	children []Pair
	next     int
}

// Stream is a lazy, single-pass sequence of traversal events.
type Stream struct {
	stack    []*level
	reporter diag.Reporter
	stats    Stats
	done     bool
}

// Match starts pairing the children of oldRoot and newRoot. Either root may
// be nil, in which case every element of the other tree is one-sided.
func Match(oldRoot, newRoot *element.Element, opts Options) *Stream {
	s := &Stream{reporter: opts.Reporter}
	if s.reporter == nil {
		s.reporter = diag.NopReporter{}
	}
	root := &level{pair: Pair{Old: oldRoot, New: newRoot}}
	root.children = s.pairChildren(root.pair)
	s.stack = append(s.stack, root)
	return s
}

// Next returns the following event; ok is false once the traversal is over.
func (s *Stream) Next() (ev Event, ok bool) {
	if s.done {
		return Event{}, false
	}
	top := s.stack[len(s.stack)-1]
	if top.next < len(top.children) {
		p := top.children[top.next]
		top.next++
		child := &level{pair: p, depth: top.depth + 1}
		child.children = s.pairChildren(p)
		s.stack = append(s.stack, child)
		s.count(p)
		return Event{Kind: Enter, Pair: p, Depth: child.depth}, true
	}
	s.stack = s.stack[:len(s.stack)-1]
	if len(s.stack) == 0 {
		s.done = true
		return Event{}, false
	}
	return Event{Kind: Leave, Pair: top.pair, Depth: top.depth}, true
}

// Pairs yields the pair of every Enter event. It drains the stream: ranging
// a second time yields nothing.
func (s *Stream) Pairs() iter.Seq[Pair] {
	return func(yield func(Pair) bool) {
		for {
			ev, ok := s.Next()
			if !ok {
				return
			}
			if ev.Kind == Enter && !yield(ev.Pair) {
				return
			}
		}
	}
}

// Stats returns the counts produced so far.
func (s *Stream) Stats() Stats { return s.stats }

// Done reports whether the stream is exhausted.
func (s *Stream) Done() bool { return s.done }

func (s *Stream) count(p Pair) {
	switch p.Status() {
	case StatusMatched:
		s.stats.Matched++
	case StatusRemoved:
		s.stats.Removed++
	case StatusAdded:
		s.stats.Added++
	}
}

// pairChildren aligns the direct children of p.
func (s *Stream) pairChildren(p Pair) []Pair {
	var olds, news []*element.Element
	if p.Old != nil {
		olds = p.Old.Children()
	}
	if p.New != nil {
		news = p.New.Children()
	}
	if len(olds) == 0 && len(news) == 0 {
		return nil
	}
	s.reportDuplicates(olds, diag.SideOld)
	s.reportDuplicates(news, diag.SideNew)

	// очередь индексов по ключу: дубликаты сопоставляются в порядке объявления
	queue := make(map[string][]int, len(news))
	for j, n := range news {
		k := n.Key()
		queue[k] = append(queue[k], j)
	}
	taken := make([]bool, len(news))
	out := make([]Pair, 0, max(len(olds), len(news)))
	for _, o := range olds {
		k := o.Key()
		if q := queue[k]; len(q) > 0 {
			j := q[0]
			queue[k] = q[1:]
			taken[j] = true
			out = append(out, Pair{Old: o, New: news[j]})
			continue
		}
		out = append(out, Pair{Old: o})
	}
	for j, n := range news {
		if !taken[j] {
			out = append(out, Pair{New: n})
		}
	}
	return out
}

func (s *Stream) reportDuplicates(children []*element.Element, side diag.Side) {
	if len(children) < 2 {
		return
	}
	seen := make(map[string]int, len(children))
	for _, c := range children {
		k := c.Key()
		seen[k]++
		if seen[k] == 2 {
			diag.ReportWarning(s.reporter, diag.TreeDuplicateIdentity,
				diag.Location{Side: side, Identity: c.Display()},
				fmt.Sprintf("%s %s is declared more than once; pairing in declaration order", c.Kind(), c.Display())).Emit()
		}
	}
}
