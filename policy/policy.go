package policy

import (
	"context"
	"strings"

	"github.com/viant/gqlotel/model"
)

// Policy represents field instrumentation settings for a schema.
//
//   - BlockList names fields that are never instrumented.
//   - AllowList, when not empty, restricts instrumentation to listed fields.
//   - SkipListItems excludes every field resolved under a list index.
//
// Entries match, case-insensitively, either the qualified field name
// "ParentType.field" or the path pattern with list indexes replaced by '*'
// (for example "users.*.name").
//
// A nil *Policy instruments everything.
type Policy struct {
	AllowList     []string
	BlockList     []string
	SkipListItems bool
}

// ---------------------------------------------------------------------------
// Config <-> Policy converters
// ---------------------------------------------------------------------------

// Config represents the declarative, serialisable form of a Policy.
type Config struct {
	AllowList     []string `json:"allow,omitempty" yaml:"allow,omitempty"`
	BlockList     []string `json:"block,omitempty" yaml:"block,omitempty"`
	SkipListItems bool     `json:"skipListItems,omitempty" yaml:"skipListItems,omitempty"`
}

// ToConfig converts a runtime Policy into a persistable Config.
func ToConfig(p *Policy) *Config {
	if p == nil {
		return nil
	}
	return &Config{
		AllowList:     append([]string(nil), p.AllowList...),
		BlockList:     append([]string(nil), p.BlockList...),
		SkipListItems: p.SkipListItems,
	}
}

// FromConfig converts a stored Config back to a runtime Policy.
func FromConfig(c *Config) *Policy {
	if c == nil {
		return nil
	}
	return &Policy{
		AllowList:     append([]string(nil), c.AllowList...),
		BlockList:     append([]string(nil), c.BlockList...),
		SkipListItems: c.SkipListItems,
	}
}

// IsEmpty reports whether the policy instruments every field.
func (p *Policy) IsEmpty() bool {
	return p == nil || (len(p.AllowList) == 0 && len(p.BlockList) == 0 && !p.SkipListItems)
}

// IsInstrumented evaluates SkipListItems, BlockList and AllowList, in that order.
func (p *Policy) IsInstrumented(info *model.ResolveInfo) bool {
	if p == nil || info == nil {
		return true
	}
	if p.SkipListItems && info.Path.HasIndex() {
		return false
	}

	qualified := strings.ToLower(info.QualifiedName())
	pattern := strings.ToLower(info.Path.Pattern())

	// BlockList has priority.
	for _, b := range p.BlockList {
		if matches(b, qualified, pattern) {
			return false
		}
	}

	if len(p.AllowList) == 0 {
		return true
	}

	for _, a := range p.AllowList {
		if matches(a, qualified, pattern) {
			return true
		}
	}

	return false
}

func matches(entry, qualified, pattern string) bool {
	normalized := strings.ToLower(strings.TrimSpace(entry))
	return normalized == qualified || normalized == pattern
}

// ---------------------------------------------------------------------------
// Context helpers
// ---------------------------------------------------------------------------

type ctxKeyT struct{}

var ctxKey ctxKeyT

// WithPolicy embeds policy in ctx.
func WithPolicy(ctx context.Context, p *Policy) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey, p)
}

// FromContext extracts the policy or nil.
func FromContext(ctx context.Context) *Policy {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxKey).(*Policy); ok {
		return v
	}
	return nil
}
