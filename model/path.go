package model

import (
	"strconv"
	"strings"
)

// PathSegment is a single step of a response path: either a field name or
// a list index.
type PathSegment struct {
	Name    string
	Index   int
	isIndex bool
}

// FieldSegment returns a named path segment.
func FieldSegment(name string) PathSegment {
	return PathSegment{Name: name}
}

// IndexSegment returns a list index path segment.
func IndexSegment(index int) PathSegment {
	return PathSegment{Index: index, isIndex: true}
}

// IsIndex reports whether segment addresses a list element.
func (s PathSegment) IsIndex() bool {
	return s.isIndex
}

func (s PathSegment) String() string {
	if s.isIndex {
		return strconv.Itoa(s.Index)
	}
	return s.Name
}

// Path is an ordered response path, e.g. users.0.name
type Path []PathSegment

// NewPath builds a path from names (string) and indexes (int); other types are ignored.
func NewPath(segments ...interface{}) Path {
	path := make(Path, 0, len(segments))
	for _, segment := range segments {
		switch actual := segment.(type) {
		case string:
			path = append(path, FieldSegment(actual))
		case int:
			path = append(path, IndexSegment(actual))
		}
	}
	return path
}

// String renders the path with segments joined by '.'.
func (p Path) String() string {
	builder := strings.Builder{}
	for i, segment := range p {
		if i > 0 {
			builder.WriteByte('.')
		}
		builder.WriteString(segment.String())
	}
	return builder.String()
}

// Field returns the last named segment, or empty string.
func (p Path) Field() string {
	for i := len(p) - 1; i >= 0; i-- {
		if !p[i].isIndex {
			return p[i].Name
		}
	}
	return ""
}

// HasIndex reports whether any segment is a list index.
func (p Path) HasIndex() bool {
	for _, segment := range p {
		if segment.isIndex {
			return true
		}
	}
	return false
}

// Pattern renders the path with every index replaced by '*'.
func (p Path) Pattern() string {
	builder := strings.Builder{}
	for i, segment := range p {
		if i > 0 {
			builder.WriteByte('.')
		}
		if segment.isIndex {
			builder.WriteByte('*')
			continue
		}
		builder.WriteString(segment.Name)
	}
	return builder.String()
}

// ResolveInfo describes a single field resolution. The engine supplies it
// once per field; it must not be modified.
type ResolveInfo struct {
	Path               Path
	ParentType         string
	ReturnType         string
	IsForIntrospection bool
}

// QualifiedName returns ParentType.field
func (i *ResolveInfo) QualifiedName() string {
	return i.ParentType + "." + i.Path.Field()
}
