package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"apicompat/internal/analysis"
	"apicompat/internal/diag"
	"apicompat/internal/element"
	"apicompat/internal/match"
	"apicompat/internal/problem"
)

// Current schema version - increment when Payload format changes
const cacheSchemaVersion uint16 = 1

// DiskCache хранит результаты анализа по ключу задания на диске.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// Payload is the cached form of an analysis result. Run IDs and timings
// belong to a run and are not cached.
type Payload struct {
	Schema      uint16              `msgpack:"schema"`
	API         string              `msgpack:"api"`
	OldVersion  string              `msgpack:"old_version"`
	NewVersion  string              `msgpack:"new_version"`
	Problems    []PayloadProblem    `msgpack:"problems"`
	Diagnostics []PayloadDiagnostic `msgpack:"diagnostics"`
	Pairs       match.Stats         `msgpack:"pairs"`
	Findings    int                 `msgpack:"findings"`
	Dropped     int                 `msgpack:"dropped"`
}

// PayloadProblem is one cached problem.
type PayloadProblem struct {
	Check          string              `msgpack:"check"`
	Old            string              `msgpack:"old"`
	New            string              `msgpack:"new"`
	Kind           uint8               `msgpack:"kind"`
	Status         uint8               `msgpack:"status"`
	Code           string              `msgpack:"code"`
	Classification []uint8             `msgpack:"classification"`
	Attachments    []PayloadAttachment `msgpack:"attachments,omitempty"`
}

// PayloadAttachment is one cached problem attachment.
type PayloadAttachment struct {
	Kind   uint8             `msgpack:"kind"`
	Key    string            `msgpack:"key"`
	Value  string            `msgpack:"value"`
	Type   string            `msgpack:"type,omitempty"`
	Values map[string]string `msgpack:"values,omitempty"`
}

// PayloadDiagnostic is one cached side-channel diagnostic.
type PayloadDiagnostic struct {
	Severity uint8  `msgpack:"severity"`
	Code     uint16 `msgpack:"code"`
	Side     uint8  `msgpack:"side"`
	Identity string `msgpack:"identity"`
	Message  string `msgpack:"message"`
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache uses dir as the cache root, creating it if needed.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key Digest) string {
	// Для удобства очистки записи лежат в подкаталоге "results".
	return filepath.Join(c.dir, "results", key.String()+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *Payload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache. Entries written
// by another schema version are reported as a miss.
func (c *DiskCache) Get(key Digest, out *Payload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("decode cache entry %s: %w", key, err)
	}
	if out.Schema != cacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// resultToPayload converts an analysis result for caching
func resultToPayload(res *analysis.Result) *Payload {
	payload := &Payload{
		Schema:     cacheSchemaVersion,
		API:        res.API,
		OldVersion: res.OldVersion,
		NewVersion: res.NewVersion,
		Problems:   make([]PayloadProblem, len(res.Problems)),
		Pairs:      res.Stats.Pairs,
		Findings:   res.Stats.Findings,
		Dropped:    res.Stats.Dropped,
	}
	for i, r := range res.Problems {
		c := r.Problem.Classification()
		pp := PayloadProblem{
			Check:          r.Check,
			Old:            r.Old,
			New:            r.New,
			Kind:           uint8(r.Kind),
			Status:         uint8(r.Status),
			Code:           string(r.Problem.Code()),
			Classification: make([]uint8, len(problem.Axes)),
		}
		for j, a := range problem.Axes {
			pp.Classification[j] = uint8(c.Get(a))
		}
		for _, a := range r.Problem.Attachments() {
			pp.Attachments = append(pp.Attachments, PayloadAttachment{
				Kind:   uint8(a.Kind),
				Key:    a.Key,
				Value:  a.Value,
				Type:   a.Annotation.Type,
				Values: a.Annotation.Values,
			})
		}
		payload.Problems[i] = pp
	}
	for _, d := range res.Diagnostics {
		payload.Diagnostics = append(payload.Diagnostics, PayloadDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Side:     uint8(d.Location.Side),
			Identity: d.Location.Identity,
			Message:  d.Message,
		})
	}
	return payload
}

// payloadToResult converts a payload back; the result gets a fresh run ID.
func payloadToResult(payload *Payload) *analysis.Result {
	res := &analysis.Result{
		RunID:      uuid.New(),
		API:        payload.API,
		OldVersion: payload.OldVersion,
		NewVersion: payload.NewVersion,
		Problems:   make([]analysis.Reported, len(payload.Problems)),
		Stats: analysis.Stats{
			Pairs:    payload.Pairs,
			Findings: payload.Findings,
			Dropped:  payload.Dropped,
		},
	}
	for i, pp := range payload.Problems {
		atts := make([]problem.Attachment, len(pp.Attachments))
		for j, pa := range pp.Attachments {
			atts[j] = problem.Attachment{
				Kind:  problem.AttachmentKind(pa.Kind),
				Key:   pa.Key,
				Value: pa.Value,
			}
			if pa.Type != "" {
				atts[j].Annotation = element.NewAnnotation(pa.Type, pa.Values)
			}
		}
		var c problem.Classification
		for j, a := range problem.Axes {
			if j < len(pp.Classification) {
				c = c.With(a, problem.Severity(pp.Classification[j]))
			}
		}
		res.Problems[i] = analysis.Reported{
			Check:   pp.Check,
			Old:     pp.Old,
			New:     pp.New,
			Kind:    element.Kind(pp.Kind),
			Status:  match.Status(pp.Status),
			Problem: problem.New(problem.Code(pp.Code), atts...).WithClassification(c),
		}
	}
	for _, pd := range payload.Diagnostics {
		res.Diagnostics = append(res.Diagnostics, diag.New(
			diag.Severity(pd.Severity),
			diag.Code(pd.Code),
			diag.Location{Side: diag.Side(pd.Side), Identity: pd.Identity},
			pd.Message,
		))
	}
	return res
}
