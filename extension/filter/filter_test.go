package filter

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/gqlotel/extension"
	"github.com/viant/gqlotel/extension/opentelemetry"
	"github.com/viant/gqlotel/model"
	"github.com/viant/gqlotel/policy"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func resolveAll(chain *extension.Chain, infos []*model.ResolveInfo, err error) {
	for _, info := range infos {
		_, _ = chain.Resolve(context.Background(), info, func(ctx context.Context, ectx *extension.Context, info *model.ResolveInfo) (model.Value, error) {
			return model.Null{}, err
		})
	}
}

func TestFilter_Resolve(t *testing.T) {
	infos := []*model.ResolveInfo{
		{Path: model.NewPath("users"), ParentType: "Query", ReturnType: "[User!]!"},
		{Path: model.NewPath("users", 0, "name"), ParentType: "User", ReturnType: "String"},
		{Path: model.NewPath("users", 1, "name"), ParentType: "User", ReturnType: "String"},
	}
	type testCase struct {
		name      string
		predicate Predicate
		expected  []string
	}
	testCases := []testCase{
		{name: "always true", predicate: func(*model.ResolveInfo) bool { return true }, expected: nil},
		{name: "always false", predicate: func(*model.ResolveInfo) bool { return false }, expected: []string{"users", "users.0.name", "users.1.name"}},
		{name: "nil predicate", predicate: nil, expected: []string{"users", "users.0.name", "users.1.name"}},
		{name: "list items", predicate: ListItems, expected: []string{"users"}},
		{name: "policy", predicate: FromPolicy(&policy.Policy{BlockList: []string{"Query.users"}}), expected: []string{"users.0.name", "users.1.name"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for _, resolveErr := range []error{nil, errors.New("boom")} {
				recorder := tracetest.NewSpanRecorder()
				tracer := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)).Tracer("graphql")
				chain := extension.NewChain(nil, New(opentelemetry.New(tracer), tc.predicate))
				resolveAll(chain, infos, resolveErr)

				var names []string
				for _, span := range recorder.Ended() {
					names = append(names, span.Name())
				}
				assert.Equal(t, tc.expected, names)
			}
		})
	}
}

func TestFilter_DelegatesOtherPhases(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tracer := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)).Tracer("graphql")
	chain := extension.NewChain(nil, New(opentelemetry.New(tracer), func(*model.ResolveInfo) bool { return true }))
	ctx := context.Background()

	chain.Request(ctx, func(ctx context.Context, ectx *extension.Context) *model.Response {
		_, _ = chain.ParseQuery(ctx, "{ a }", nil, func(ctx context.Context, ectx *extension.Context, query string, variables model.Variables) (model.Document, error) {
			return query, nil
		})
		_, _ = chain.Validation(ctx, func(ctx context.Context, ectx *extension.Context) (*model.ValidationResult, error) {
			return &model.ValidationResult{}, nil
		})
		return chain.Execute(ctx, "", func(ctx context.Context, ectx *extension.Context, operationName string) *model.Response {
			return &model.Response{}
		})
	})
	for range chain.Subscribe(ctx, func(yield func(*model.Response) bool) {}, func(ctx context.Context, ectx *extension.Context, stream extension.Stream) extension.Stream {
		return stream
	}) {
	}

	var names []string
	for _, span := range recorder.Ended() {
		names = append(names, span.Name())
	}
	assert.Equal(t, []string{"parse", "validation", "execute", "request", "subscribe"}, names)
}

func TestFilter_FreshInnerPerRequest(t *testing.T) {
	created := 0
	inner := extension.FactoryFunc(func() extension.Extension {
		created++
		return extension.Base{}
	})
	f := New(inner, Introspection)
	first := f.Create().(*Extension)
	second := f.Create().(*Extension)
	assert.Equal(t, 2, created)
	require.NotNil(t, first.exclude)
	assert.True(t, second.exclude(&model.ResolveInfo{IsForIntrospection: true}))

	assert.NotNil(t, New(nil, nil).Create())
}

func TestAny(t *testing.T) {
	assert.Nil(t, Any(nil, nil))
	assert.Nil(t, FromPolicy(nil))
	predicate := Any(Introspection, ListItems)
	assert.True(t, predicate(&model.ResolveInfo{IsForIntrospection: true}))
	assert.True(t, predicate(&model.ResolveInfo{Path: model.NewPath("a", 1)}))
	assert.False(t, predicate(&model.ResolveInfo{Path: model.NewPath("a")}))
}

func TestFilter_ContextPolicy(t *testing.T) {
	infos := []*model.ResolveInfo{
		{Path: model.NewPath("users"), ParentType: "Query", ReturnType: "[User!]!"},
		{Path: model.NewPath("users", 0, "name"), ParentType: "User", ReturnType: "String"},
		{Path: model.NewPath("health"), ParentType: "Query", ReturnType: "Boolean"},
	}
	type testCase struct {
		name      string
		predicate Predicate
		policy    *policy.Policy
		expected  []string
	}
	testCases := []testCase{
		{name: "no policy", expected: []string{"users", "users.0.name", "health"}},
		{name: "empty policy", policy: &policy.Policy{}, expected: []string{"users", "users.0.name", "health"}},
		{name: "block list", policy: &policy.Policy{BlockList: []string{"Query.health"}}, expected: []string{"users", "users.0.name"}},
		{name: "skip list items", policy: &policy.Policy{SkipListItems: true}, expected: []string{"users", "health"}},
		{name: "combined with predicate", predicate: ListItems, policy: &policy.Policy{AllowList: []string{"Query.users"}}, expected: []string{"users"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := tracetest.NewSpanRecorder()
			tracer := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)).Tracer("graphql")
			chain := extension.NewChain(nil, New(opentelemetry.New(tracer), tc.predicate))
			ctx := policy.WithPolicy(context.Background(), tc.policy)
			for _, info := range infos {
				_, err := chain.Resolve(ctx, info, func(ctx context.Context, ectx *extension.Context, info *model.ResolveInfo) (model.Value, error) {
					return model.Null{}, nil
				})
				require.NoError(t, err)
			}
			var names []string
			for _, span := range recorder.Ended() {
				names = append(names, span.Name())
			}
			assert.Equal(t, tc.expected, names)
		})
	}
}
