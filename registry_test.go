package catastrophic

import (
	"bytes"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type tstKey string

const (
	tepidTrepidations  tstKey = "tepid_trepidations"
	tooBoringToCompute tstKey = "too_boring_to_compute"
)

var tstCategory = CategorySpec{
	UniqueCode:  "TST",
	Description: "Testing category",
}

var tstKinds = Kinds[tstKey]{
	{tepidTrepidations, ErrorSpec{
		UniqueNumber: 0,
		HTTPCode:     500,
		Description:  "the function couldn't do it due to excessive worry",
	}},
	{tooBoringToCompute, ErrorSpec{
		UniqueNumber: 1,
		HTTPCode:     400,
		Description:  "user supplied very boring data",
	}},
}

// newTestRegistry returns a fresh registry with the TST category registered.
func newTestRegistry(t *testing.T) (*Registry, Factories[tstKey]) {
	t.Helper()

	r, err := New()
	require.NoError(t, err)

	ohno, err := RegisterCategory(r, tstCategory, tstKinds)
	require.NoError(t, err)
	return r, ohno
}

// requireInternal asserts that err is the internal error kind key of r.
func requireInternal(t *testing.T, r *Registry, err error, key InternalKey) *Catastrophe {
	t.Helper()

	require.Error(t, err)
	require.True(t, r.IsInternal(err, key), "expected %s, got %v", key, err)

	var c *Catastrophe
	require.ErrorAs(t, err, &c)
	return c
}

func TestNew_Defaults(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	require.Equal(t, DefaultInternalCode, r.InternalCode())
	require.Equal(t, DefaultSeparator, r.Separator())
	require.NotNil(t, r.Logger())

	specs := r.Categories()
	require.Len(t, specs, 1)
	require.Equal(t, "CATASTROPHIC", specs[0].UniqueCode)
}

func TestNew_Options(t *testing.T) {
	r, err := New(WithInternalCode("META"), WithSeparator("-"))
	require.NoError(t, err)

	require.Equal(t, "META", r.InternalCode())
	require.Equal(t, "-", r.Separator())

	_, err = RegisterCategory(r, CategorySpec{UniqueCode: "META"}, Kinds[string]{})
	c := requireInternal(t, r, err, TriedToUseReservedCategoryCode)
	require.Equal(t, "META-0", c.Identity())
}

func TestNew_InvalidConfiguration(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"internal code contains separator", []Option{WithInternalCode("MY_CODE")}},
		{"custom separator inside default code", []Option{WithSeparator("A")}},
		{"empty separator", []Option{WithSeparator("")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.opts...)
			require.Nil(t, r)
			require.Error(t, err)

			var c *Catastrophe
			require.ErrorAs(t, err, &c)
			require.Equal(t, 2, c.Kind().UniqueNumber)
		})
	}
}

func TestMustNew_Panics(t *testing.T) {
	require.Panics(t, func() {
		MustNew(WithInternalCode("BAD_CODE"))
	})
	require.NotPanics(t, func() {
		MustNew()
	})
}

func TestRegisterCategory_DistinctCodes(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	for _, code := range []string{"A", "B", "TST", "tst", "LONG-CODE", ""} {
		_, err := RegisterCategory(r, CategorySpec{UniqueCode: code}, tstKinds)
		require.NoError(t, err, "code %q", code)
	}
	require.Len(t, r.Categories(), 7)
}

func TestRegisterCategory_Violations(t *testing.T) {
	tests := []struct {
		name  string
		spec  CategorySpec
		kinds Kinds[tstKey]
		want  InternalKey
	}{
		{
			name:  "duplicate code",
			spec:  CategorySpec{UniqueCode: "TST"},
			kinds: tstKinds,
			want:  NonUniqueCategoryCode,
		},
		{
			name:  "reserved code",
			spec:  CategorySpec{UniqueCode: DefaultInternalCode},
			kinds: tstKinds,
			want:  TriedToUseReservedCategoryCode,
		},
		{
			name:  "code contains separator",
			spec:  CategorySpec{UniqueCode: "T_ST"},
			kinds: tstKinds,
			want:  CategoryCodeContainsSeparator,
		},
		{
			name: "separator checked before error numbers",
			spec: CategorySpec{UniqueCode: "BAD_"},
			kinds: Kinds[tstKey]{
				{tepidTrepidations, ErrorSpec{UniqueNumber: 7}},
				{tooBoringToCompute, ErrorSpec{UniqueNumber: 7}},
			},
			want: CategoryCodeContainsSeparator,
		},
		{
			name: "duplicate error number",
			spec: CategorySpec{UniqueCode: "DUP"},
			kinds: Kinds[tstKey]{
				{tepidTrepidations, ErrorSpec{UniqueNumber: 3}},
				{tooBoringToCompute, ErrorSpec{UniqueNumber: 3}},
			},
			want: NonUniqueErrorNumber,
		},
		{
			name: "duplicate error key",
			spec: CategorySpec{UniqueCode: "DUP"},
			kinds: Kinds[tstKey]{
				{tepidTrepidations, ErrorSpec{UniqueNumber: 0}},
				{tepidTrepidations, ErrorSpec{UniqueNumber: 1}},
			},
			want: NonUniqueErrorKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRegistry(t)
			before := r.Categories()

			factories, err := RegisterCategory(r, tt.spec, tt.kinds)
			require.Nil(t, factories)

			c := requireInternal(t, r, err, tt.want)
			require.Equal(t, DefaultInternalCode, c.Category().UniqueCode)
			require.Equal(t, 500, c.Kind().HTTPCode)
			require.Equal(t, before, r.Categories())
		})
	}
}

func TestRegisterCategory_Annotations(t *testing.T) {
	r, _ := newTestRegistry(t)

	_, err := RegisterCategory(r, tstCategory, tstKinds)
	c := requireInternal(t, r, err, NonUniqueCategoryCode)
	require.Equal(t, tstCategory, c.Annotation())

	_, err = RegisterCategory(r, CategorySpec{UniqueCode: "NUM"}, Kinds[tstKey]{
		{tepidTrepidations, ErrorSpec{UniqueNumber: 9}},
		{tooBoringToCompute, ErrorSpec{UniqueNumber: 9}},
	})
	c = requireInternal(t, r, err, NonUniqueErrorNumber)
	require.Equal(t, KindConflict{
		Category: CategorySpec{UniqueCode: "NUM"},
		Key:      tooBoringToCompute,
		Number:   9,
	}, c.Annotation())
}

func TestRegisterCategory_FailedCategoryKeepsCodeFree(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	_, err = RegisterCategory(r, CategorySpec{UniqueCode: "RETRY"}, Kinds[tstKey]{
		{tepidTrepidations, ErrorSpec{UniqueNumber: 1}},
		{tooBoringToCompute, ErrorSpec{UniqueNumber: 1}},
	})
	requireInternal(t, r, err, NonUniqueErrorNumber)

	_, ok := r.Category("RETRY")
	require.False(t, ok)

	_, err = RegisterCategory(r, CategorySpec{UniqueCode: "RETRY"}, tstKinds)
	require.NoError(t, err)
}

func TestRegisterCategory_Factories(t *testing.T) {
	_, ohno := newTestRegistry(t)

	require.Len(t, ohno, len(tstKinds))
	for _, kind := range tstKinds {
		factory, ok := ohno[kind.Key]
		require.True(t, ok, "missing factory for %s", kind.Key)

		c := factory(nil)
		require.Equal(t, kind.Spec, c.Kind())
		require.Equal(t, tstCategory, c.Category())
	}
}

func TestRegisterCategory_EmptyKinds(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	ohno, err := RegisterCategory(r, CategorySpec{UniqueCode: "EMPTY"}, Kinds[string]{})
	require.NoError(t, err)
	require.Empty(t, ohno)
}

func TestRegisterCategory_InputNotRetained(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	spec := CategorySpec{UniqueCode: "MUT", Description: "before"}
	kinds := Kinds[string]{{"a", ErrorSpec{UniqueNumber: 1, Description: "before"}}}

	ohno, err := RegisterCategory(r, spec, kinds)
	require.NoError(t, err)

	spec.Description = "after"
	kinds[0].Spec.Description = "after"

	c := ohno["a"](nil)
	require.Equal(t, "before", c.Category().Description)
	require.Equal(t, "before", c.Kind().Description)
}

func TestMustRegisterCategory(t *testing.T) {
	r, _ := newTestRegistry(t)

	require.NotPanics(t, func() {
		MustRegisterCategory(r, CategorySpec{UniqueCode: "OK"}, tstKinds)
	})

	defer func() {
		rec := recover()
		require.NotNil(t, rec)

		err, ok := rec.(error)
		require.True(t, ok)
		require.True(t, r.IsInternal(err, NonUniqueCategoryCode))
	}()
	MustRegisterCategory(r, tstCategory, tstKinds)
}

func TestRegistry_IndependentInstances(t *testing.T) {
	r1, err := New()
	require.NoError(t, err)
	r2, err := New(WithSeparator("."))
	require.NoError(t, err)

	ohno1, err := RegisterCategory(r1, tstCategory, tstKinds)
	require.NoError(t, err)
	ohno2, err := RegisterCategory(r2, tstCategory, tstKinds)
	require.NoError(t, err)

	require.Equal(t, "TST_1", ohno1[tooBoringToCompute](nil).Identity())
	require.Equal(t, "TST.1", ohno2[tooBoringToCompute](nil).Identity())
}

func TestRegistry_Category(t *testing.T) {
	r, _ := newTestRegistry(t)

	c, ok := r.Category("TST")
	require.True(t, ok)
	require.Equal(t, tstCategory, c.Spec())
	require.Len(t, c.Kinds(), 2)

	_, ok = r.Category("NOPE")
	require.False(t, ok)
}

func TestRegistry_Lookup(t *testing.T) {
	r, _ := newTestRegistry(t)

	tests := []struct {
		name       string
		identity   string
		wantOK     bool
		wantNumber int
	}{
		{"declared kind", "TST_1", true, 1},
		{"internal kind", "CATASTROPHIC_4", true, 4},
		{"unknown number", "TST_9", false, 0},
		{"unknown category", "NOPE_1", false, 0},
		{"no separator", "TST1", false, 0},
		{"not a number", "TST_x", false, 0},
		{"empty", "", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, kind, ok := r.Lookup(tt.identity)
			require.Equal(t, tt.wantOK, ok)
			require.Equal(t, tt.wantNumber, kind.UniqueNumber)
		})
	}
}

func TestRegistry_Internal(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	c := r.Internal(CatalogInvalid)("catalog.yaml")
	require.Equal(t, "CATASTROPHIC_6", c.Identity())
	require.True(t, r.IsInternal(c, CatalogInvalid))
	require.False(t, r.IsInternal(c, CatalogUnreadable))
	require.False(t, r.IsInternal(nil, CatalogInvalid))
	require.False(t, r.IsInternal(c, InternalKey("unknown")))

	require.PanicsWithValue(t, `catastrophic: unknown internal error key "unknown"`, func() {
		r.Internal(InternalKey("unknown"))
	})
}

func TestRegistry_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	r, err := New(WithLogger(logger))
	require.NoError(t, err)

	_, err = RegisterCategory(r, tstCategory, tstKinds)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "registered error category")
	require.Contains(t, buf.String(), "code=TST")

	_, err = RegisterCategory(r, tstCategory, tstKinds)
	require.Error(t, err)
	require.Contains(t, buf.String(), "rejected error category")
	require.Contains(t, buf.String(), "CATASTROPHIC_1")
}

func TestRegistry_ConcurrentRegistration(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	const workers = 50
	var wg sync.WaitGroup
	errs := make(chan error, workers*2)

	for i := 0; i < workers; i++ {
		wg.Add(2)
		code := fmt.Sprintf("C%d", i)
		for j := 0; j < 2; j++ {
			go func() {
				defer wg.Done()
				_, err := RegisterCategory(r, CategorySpec{UniqueCode: code}, tstKinds)
				errs <- err
			}()
		}
	}
	wg.Wait()
	close(errs)

	var failures int
	for err := range errs {
		if err != nil {
			require.True(t, r.IsInternal(err, NonUniqueCategoryCode))
			failures++
		}
	}
	require.Equal(t, workers, failures)
	require.Len(t, r.Categories(), workers+1)
}
