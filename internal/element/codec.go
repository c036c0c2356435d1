package element

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// snapshotSchema is bumped whenever Node changes incompatibly.
const snapshotSchema uint16 = 1

// Format selects the snapshot encoding.
type Format uint8

const (
	FormatMsgpack Format = iota + 1
	FormatYAML
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatMsgpack:
		return "msgpack"
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// FormatFromPath picks the format by file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp", ".msgpack":
		return FormatMsgpack, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("%s: unknown snapshot extension (expected .mp|.msgpack|.yaml|.yml|.json)", path)
	}
}

// Snapshot is the serialised form written by a front-end.
type Snapshot struct {
	Schema   uint16 `msgpack:"schema" json:"schema" yaml:"schema"`
	API      string `msgpack:"api" json:"api" yaml:"api"`
	Version  string `msgpack:"version" json:"version" yaml:"version"`
	Packages []Node `msgpack:"packages" json:"packages" yaml:"packages"`
}

// Node is one serialised element.
type Node struct {
	Kind        string           `msgpack:"kind" json:"kind" yaml:"kind"`
	ID          string           `msgpack:"id" json:"id" yaml:"id"`
	Name        string           `msgpack:"name,omitempty" json:"name,omitempty" yaml:"name,omitempty"`
	TypeKind    string           `msgpack:"type_kind,omitempty" json:"type_kind,omitempty" yaml:"type_kind,omitempty"`
	Params      []string         `msgpack:"params,omitempty" json:"params,omitempty" yaml:"params,omitempty"`
	Visibility  string           `msgpack:"visibility,omitempty" json:"visibility,omitempty" yaml:"visibility,omitempty"`
	Modifiers   []string         `msgpack:"modifiers,omitempty" json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	Annotations []AnnotationNode `msgpack:"annotations,omitempty" json:"annotations,omitempty" yaml:"annotations,omitempty"`
	Children    []Node           `msgpack:"children,omitempty" json:"children,omitempty" yaml:"children,omitempty"`
}

// AnnotationNode is a serialised annotation use.
type AnnotationNode struct {
	Type   string            `msgpack:"type" json:"type" yaml:"type"`
	Values map[string]string `msgpack:"values,omitempty" json:"values,omitempty" yaml:"values,omitempty"`
}

// Tree is a decoded snapshot.
type Tree struct {
	API     string
	Version string
	Root    *Element
}

// LoadFile reads a snapshot from disk, choosing the format by extension.
func LoadFile(path string) (*Tree, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()
	tree, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tree, nil
}

// Decode reads a snapshot and builds the element tree.
func Decode(r io.Reader, format Format) (*Tree, error) {
	var snap Snapshot
	var err error
	switch format {
	case FormatMsgpack:
		err = msgpack.NewDecoder(r).Decode(&snap)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&snap)
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&snap)
	default:
		return nil, fmt.Errorf("unsupported snapshot format %v", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s snapshot: %w", format, err)
	}
	if snap.Schema > snapshotSchema {
		return nil, fmt.Errorf("snapshot schema %d is newer than supported %d", snap.Schema, snapshotSchema)
	}
	return FromSnapshot(&snap)
}

// FromSnapshot converts a decoded snapshot into an element tree.
func FromSnapshot(snap *Snapshot) (*Tree, error) {
	pkgs := make([]*Element, 0, len(snap.Packages))
	for i := range snap.Packages {
		e, err := fromNode(&snap.Packages[i])
		if err != nil {
			return nil, err
		}
		pkgs = append(pkgs, e)
	}
	return &Tree{API: snap.API, Version: snap.Version, Root: NewRoot(pkgs...)}, nil
}

func fromNode(n *Node) (*Element, error) {
	vis, err := ParseVisibility(n.Visibility)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", n.ID, err)
	}
	mods := Modifiers{Visibility: vis}
	for _, m := range n.Modifiers {
		f, err := ParseFlag(m)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", n.ID, err)
		}
		mods.Flags |= f
	}
	spec := Spec{
		Kind:      ParseKind(n.Kind),
		Identity:  n.ID,
		Name:      n.Name,
		Signature: n.Params,
		Modifiers: mods,
	}
	if spec.Kind == KindType {
		tk := n.TypeKind
		if tk == "" {
			tk = n.Kind
		}
		spec.TypeKind = ParseTypeKind(tk)
	}
	for _, a := range n.Annotations {
		spec.Annotations = append(spec.Annotations, NewAnnotation(a.Type, a.Values))
	}
	for i := range n.Children {
		c, err := fromNode(&n.Children[i])
		if err != nil {
			return nil, err
		}
		spec.Children = append(spec.Children, c)
	}
	return New(spec)
}

// Encode writes t in the given format.
func Encode(w io.Writer, t *Tree, format Format) error {
	snap := ToSnapshot(t)
	switch format {
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(snap)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	default:
		return fmt.Errorf("unsupported snapshot format %v", format)
	}
}

// ToSnapshot converts a tree back into its serialised form.
func ToSnapshot(t *Tree) *Snapshot {
	snap := &Snapshot{Schema: snapshotSchema, API: t.API, Version: t.Version}
	if t.Root == nil {
		return snap
	}
	for _, c := range t.Root.children {
		snap.Packages = append(snap.Packages, toNode(c))
	}
	return snap
}

func toNode(e *Element) Node {
	n := Node{
		Kind:       e.kind.String(),
		ID:         e.identity,
		Visibility: e.modifiers.Visibility.String(),
		Modifiers:  e.modifiers.Names(),
	}
	if e.name != simpleName(e.identity) {
		n.Name = e.name
	}
	if e.kind == KindType {
		n.TypeKind = e.typeKind.String()
	}
	if e.kind == KindMethod {
		n.Params = e.Signature()
	}
	for _, a := range e.annotations {
		n.Annotations = append(n.Annotations, AnnotationNode{Type: a.Type, Values: a.Values})
	}
	for _, c := range e.children {
		n.Children = append(n.Children, toNode(c))
	}
	return n
}
