package issue

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Issue is a single validation finding, addressed by source file and a
// structural pointer inside that file's document. Issues are immutable once
// recorded.
type Issue struct {
	File    string
	Pointer string
	Message string
}

// Format renders an issue as "relpath[:pointer]: message". The file path is
// made relative to root when possible, absolute otherwise.
func (i Issue) Format(root string) string {
	loc := i.File
	if rel, err := filepath.Rel(root, i.File); err == nil && !strings.HasPrefix(rel, "..") {
		loc = rel
	}
	if i.Pointer != "" {
		loc += ":" + i.Pointer
	}
	return loc + ": " + i.Message
}

// Segment is one step of a structural address: either an object key or an
// array index.
type Segment struct {
	key     string
	index   int
	isIndex bool
}

// Key builds an object-key segment.
func Key(k string) Segment { return Segment{key: k} }

// Index builds an array-index segment.
func Index(i int) Segment { return Segment{index: i, isIndex: true} }

// Path is an ordered sequence of segments locating a value inside a parsed
// document. Extending a Path always copies, so a path handed to two sibling
// checks never aliases.
type Path []Segment

// Key returns a new Path with an object-key segment appended.
func (p Path) Key(k string) Path { return p.push(Key(k)) }

// Index returns a new Path with an array-index segment appended.
func (p Path) Index(i int) Path { return p.push(Index(i)) }

func (p Path) push(s Segment) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = s
	return out
}

// Pointer renders the path as a /-delimited pointer. Keys escape "~" as "~0"
// and "/" as "~1" so literal separators in keys cannot corrupt addressing.
// The empty path renders as the empty string.
func (p Path) Pointer() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for _, s := range p {
		b.WriteByte('/')
		if s.isIndex {
			b.WriteString(strconv.Itoa(s.index))
			continue
		}
		k := strings.ReplaceAll(s.key, "~", "~0")
		k = strings.ReplaceAll(k, "/", "~1")
		b.WriteString(k)
	}
	return b.String()
}

// Sink is an append-only collection of issues. It never deduplicates and
// never reorders: issues come back exactly as recorded.
type Sink struct {
	issues []Issue
}

// NewSink creates an empty sink.
func NewSink() *Sink { return &Sink{} }

// Record appends one issue.
func (s *Sink) Record(file string, at Path, message string) {
	s.issues = append(s.issues, Issue{File: file, Pointer: at.Pointer(), Message: message})
}

// Recordf appends one issue with a formatted message.
func (s *Sink) Recordf(file string, at Path, format string, args ...any) {
	s.Record(file, at, fmt.Sprintf(format, args...))
}

// Issues returns the recorded issues in insertion order.
func (s *Sink) Issues() []Issue { return s.issues }

// Len reports how many issues have been recorded so far.
func (s *Sink) Len() int { return len(s.issues) }
