package keymap

import (
	"testing"

	"github.com/dshills/keychord/internal/input/key"
)

func TestTableLookupAndPrefix(t *testing.T) {
	table, err := Load([]Record{
		{Key: "ctrl+k ctrl+c", Command: "ToggleComment"},
		{Key: "ctrl+k ctrl+u", Command: "Upcase"},
		{Key: "ctrl+s", Command: "SaveFile"},
	}, nil, LoadOptions{Platform: key.PlatformLinux})
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}

	if table.Len() != 3 {
		t.Errorf("Len() = %d, want 3", table.Len())
	}

	got := table.Lookup(key.MustParseSequence("ctrl+k ctrl+u", key.PlatformLinux))
	if len(got) != 1 || got[0].Command != "Upcase" {
		t.Errorf("Lookup(ctrl+k ctrl+u) = %v", got)
	}
	if got := table.Lookup(key.MustParseSequence("ctrl+k", key.PlatformLinux)); len(got) != 0 {
		t.Errorf("Lookup(ctrl+k) should be empty, got %v", got)
	}

	if !table.HasPrefix(key.MustParseSequence("ctrl+k", key.PlatformLinux)) {
		t.Error("ctrl+k should be a chord prefix")
	}
	if table.HasPrefix(key.MustParseSequence("ctrl+s", key.PlatformLinux)) {
		t.Error("ctrl+s is not a chord prefix")
	}
}

func TestTableBindingsIsCopy(t *testing.T) {
	table, err := Load([]Record{
		{Key: "ctrl+k ctrl+c", Command: "ToggleComment", When: []string{"has-selection"}},
	}, nil, LoadOptions{Platform: key.PlatformLinux})
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	chord := key.MustParseSequence("ctrl+k ctrl+c", key.PlatformLinux)
	other := key.MustParse("ctrl+x", key.PlatformLinux)

	mutate := func(b *Binding) {
		b.Command = "Mutated"
		b.Pattern[1] = other
		b.When[0] = CondNoSelection
	}

	bs := table.Bindings()
	mutate(&bs[0])
	looked := table.Lookup(chord)
	if len(looked) != 1 {
		t.Fatalf("Lookup(ctrl+k ctrl+c) = %v", looked)
	}
	mutate(&looked[0])
	found, ok := table.BindingFor("ToggleComment", key.PlatformLinux)
	if !ok {
		t.Fatal("BindingFor(ToggleComment) not found")
	}
	mutate(&found)

	r := NewResolver(table, ResolverConfig{Platform: key.PlatformLinux})
	ctx := Context{HasSelection: true}
	_, state := r.Resolve(chord[0], ctx, Idle())
	res, _ := r.Resolve(chord[1], ctx, state)
	if res.Kind != Matched {
		t.Fatalf("resolve after mutating copies = %v, want Matched", res)
	}
	mutate(&res.Binding)

	got := table.Bindings()[0]
	if got.String() != "ctrl+k ctrl+c -> ToggleComment [has-selection] (default#0)" {
		t.Errorf("table binding changed through a copy: %v", got)
	}
	if res, _ := r.Resolve(chord[0], ctx, Idle()); res.Kind != AwaitMore {
		t.Errorf("resolve(ctrl+k) = %v, want AwaitMore", res)
	}
}

func TestNewTableCanonicalizes(t *testing.T) {
	pattern := key.Sequence{key.Char('a', key.ModNone)}
	table := NewTable([]Binding{{
		Pattern: pattern,
		Command: "A",
		When:    []Condition{CondModalInactive, CondHasSelection, CondHasSelection},
	}}, key.PlatformLinux)

	pattern[0] = key.Char('z', key.ModNone)
	b := table.Bindings()[0]
	if b.Pattern[0].Rune != 'a' {
		t.Error("NewTable should copy patterns")
	}
	if len(b.When) != 2 || b.When[0] != CondHasSelection {
		t.Errorf("When = %v, want sorted and de-duplicated", b.When)
	}
}

func TestTableBindingForAndDisplay(t *testing.T) {
	table, err := Load(BuiltinRecords(), []Record{{Key: "f2", Command: "SaveFile"}}, LoadOptions{Platform: key.PlatformMacOS})
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}

	b, ok := table.BindingFor("SaveFile", key.PlatformMacOS)
	if !ok {
		t.Fatal("SaveFile should be bound")
	}
	if b.Source != SourceUser {
		t.Errorf("BindingFor should prefer the user binding, got %v", b)
	}

	if got := table.DisplayFor("Undo", key.PlatformMacOS); got != "⌘Z" {
		t.Errorf("DisplayFor(Undo) = %q, want %q", got, "⌘Z")
	}
	if got := table.DisplayFor("Redo", key.PlatformMacOS); got != "⇧⌘Z" {
		t.Errorf("DisplayFor(Redo) = %q, want %q", got, "⇧⌘Z")
	}
	if got := table.DisplayFor("InsertTab", key.PlatformMacOS); got != "Tab" {
		t.Errorf("DisplayFor(InsertTab) = %q, want %q", got, "Tab")
	}
	if got := table.DisplayFor("NoSuchCommand", key.PlatformMacOS); got != "" {
		t.Errorf("DisplayFor(unbound) = %q, want empty", got)
	}

	linux, err := Load(BuiltinRecords(), nil, LoadOptions{Platform: key.PlatformLinux})
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if got := linux.DisplayFor("RevealInSidebar", key.PlatformLinux); got != "Ctrl+K Ctrl+R" {
		t.Errorf("DisplayFor(RevealInSidebar) = %q", got)
	}
	// macOS-only bindings are skipped on Linux.
	if b, _ := linux.BindingFor("MoveCursorLineStart", key.PlatformLinux); b.Platform != key.PlatformAny {
		t.Errorf("BindingFor returned platform-restricted binding %v", b)
	}
}

func TestNilTable(t *testing.T) {
	var table *Table
	if table.Len() != 0 || table.Bindings() != nil || table.HasPrefix(nil) {
		t.Error("nil table should behave as empty")
	}
	if _, ok := table.BindingFor("SaveFile", key.PlatformLinux); ok {
		t.Error("nil table has no bindings")
	}
}

func TestBindingRecordRoundTrip(t *testing.T) {
	opts := LoadOptions{Platform: key.PlatformLinux}
	first, err := Load(BuiltinRecords(), nil, opts)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}

	var records []Record
	for _, b := range first.Bindings() {
		records = append(records, b.Record())
	}
	second, err := Load(records, nil, opts)
	if err != nil {
		t.Fatalf("reloading exported records: %v", err)
	}

	a, b := first.Bindings(), second.Bindings()
	if len(a) != len(b) {
		t.Fatalf("reloaded %d bindings, want %d", len(b), len(a))
	}
	for i := range a {
		if !a[i].Pattern.Equals(b[i].Pattern) || a[i].Command != b[i].Command ||
			a[i].Platform != b[i].Platform || joinConditions(a[i].When) != joinConditions(b[i].When) {
			t.Errorf("binding %d: %v != %v", i, a[i], b[i])
		}
	}
}
