package filter

import (
	"github.com/viant/gqlotel/model"
	"github.com/viant/gqlotel/policy"
)

// Introspection excludes schema metadata fields.
func Introspection(info *model.ResolveInfo) bool {
	return info != nil && info.IsForIntrospection
}

// ListItems excludes every field resolved below a list index.
func ListItems(info *model.ResolveInfo) bool {
	return info != nil && info.Path.HasIndex()
}

// FromPolicy excludes fields the policy does not instrument. A nil or empty
// policy yields a nil predicate.
func FromPolicy(p *policy.Policy) Predicate {
	if p.IsEmpty() {
		return nil
	}
	return func(info *model.ResolveInfo) bool {
		return !p.IsInstrumented(info)
	}
}

// Any excludes a resolution when any of the predicates does.
func Any(predicates ...Predicate) Predicate {
	var active []Predicate
	for _, predicate := range predicates {
		if predicate != nil {
			active = append(active, predicate)
		}
	}
	if len(active) == 0 {
		return nil
	}
	return func(info *model.ResolveInfo) bool {
		for _, predicate := range active {
			if predicate(info) {
				return true
			}
		}
		return false
	}
}
