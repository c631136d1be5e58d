// Package resolver settles a product configuration to a consistent state:
// it classifies option groups, establishes defaults, and prunes or
// re-defaults choices whose dependencies are no longer met.
package resolver

import (
	"github.com/fretforge/fretforge/engine/canon"
	"github.com/fretforge/fretforge/engine/catalog"
)

// settleIterationCap bounds the fixed-point loop. Each productive pass
// settles at least one more dependency hop, so group count plus one passes
// always suffice.
const settleIterationCap = 32

// Engine owns one catalog and one mutable selection for the lifetime of a
// page view. Construct one per view; its operations are synchronous and
// self-healing, never returning errors.
type Engine struct {
	cat       *catalog.Catalog
	selection *Selection
	// dependent is the fixed provider/dependent classification per group,
	// derived once from the option sets at construction.
	dependent map[string]bool
}

// New builds an engine over the catalog and settles the initial selection.
func New(cat *catalog.Catalog) *Engine {
	e := &Engine{
		cat:       cat,
		selection: NewSelection(),
		dependent: classify(cat),
	}
	e.EstablishProviderDefaults()
	e.Settle()
	return e
}

// classify marks a group dependent iff at least one of its options carries a
// dependency. Computed once; never re-evaluated per option.
func classify(cat *catalog.Catalog) map[string]bool {
	dependent := make(map[string]bool, len(cat.Groups))
	for key, opts := range cat.Groups {
		dep := false
		for i := range opts {
			if opts[i].HasDependency() {
				dep = true
				break
			}
		}
		dependent[key] = dep
	}
	return dependent
}

// IsDependent reports the fixed classification for a group.
func (e *Engine) IsDependent(groupKey string) bool {
	return e.dependent[groupKey]
}

// Selection returns the live selection. Callers must not mutate it while an
// engine operation runs; use Snapshot for a stable copy.
func (e *Engine) Selection() *Selection {
	return e.selection
}

// Catalog returns the engine's catalog.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.cat
}

// Select records a user choice for a group (raw display names accepted for
// the group) and re-settles the whole selection, repairing any providers or
// dependents the change invalidated.
func (e *Engine) Select(group, option string) {
	key := canon.Key(group)
	if key == "" {
		return
	}
	e.selection.Set(key, option)
	e.EstablishProviderDefaults()
	e.Settle()
}

// EstablishProviderDefaults assigns a choice to every provider group: keep
// the current choice when it is still visible, else the flagged default,
// else the first visible option. A group with no visible options becomes
// inert and loses its entry.
func (e *Engine) EstablishProviderDefaults() {
	for _, key := range e.cat.GroupOrder {
		if e.dependent[key] {
			continue
		}
		visible := filterOptions(e.cat.Options(key), func(o *catalog.Option) bool {
			return o.Visible
		})
		if len(visible) == 0 {
			e.selection.Delete(key)
			continue
		}
		current, _ := e.selection.Get(key)
		e.selection.Set(key, chooseDefault(current, visible))
	}
}

// PruneInvalidDependents deletes the entry of every dependent group whose
// valid option subset is empty under the current selection.
func (e *Engine) PruneInvalidDependents() {
	for _, key := range e.cat.GroupOrder {
		if !e.dependent[key] {
			continue
		}
		if len(e.validDependentOptions(key)) == 0 {
			e.selection.Delete(key)
		}
	}
}

// NormalizeDependents re-defaults every dependent group against its valid
// subset, removing stale entries when nothing remains choosable.
func (e *Engine) NormalizeDependents() {
	for _, key := range e.cat.GroupOrder {
		if !e.dependent[key] {
			continue
		}
		valid := e.validDependentOptions(key)
		if len(valid) == 0 {
			e.selection.Delete(key)
			continue
		}
		current, _ := e.selection.Get(key)
		e.selection.Set(key, chooseDefault(current, valid))
	}
}

// Settle runs prune-then-normalize to a fixed point, so dependency chains
// deeper than one hop still converge within a single invocation. Idempotent
// on an already-consistent selection.
func (e *Engine) Settle() {
	for range settleIterationCap {
		before := e.selection.Snapshot()
		e.PruneInvalidDependents()
		e.NormalizeDependents()
		if e.selection.Equal(before) {
			return
		}
	}
}

// VisibleOptions returns, in sort order, the options a renderer may offer
// for the group right now: visible and dependency-satisfied.
func (e *Engine) VisibleOptions(groupKey string) []catalog.Option {
	return filterOptions(e.cat.Options(groupKey), func(o *catalog.Option) bool {
		return o.Visible && e.dependencySatisfied(o)
	})
}

func (e *Engine) validDependentOptions(groupKey string) []catalog.Option {
	return filterOptions(e.cat.Options(groupKey), func(o *catalog.Option) bool {
		return o.Visible && e.dependencySatisfied(o)
	})
}

func (e *Engine) dependencySatisfied(o *catalog.Option) bool {
	if !o.HasDependency() {
		return true
	}
	selected, ok := e.selection.Get(o.DependsOn.GroupKey)
	if !ok {
		return false
	}
	return o.DependsOn.Matches(selected)
}

// chooseDefault picks from a non-empty valid subset: the current choice when
// it survives, else the flagged default, else the first in sort order.
func chooseDefault(current string, valid []catalog.Option) string {
	if current != "" {
		for i := range valid {
			if valid[i].Name == current {
				return current
			}
		}
	}
	for i := range valid {
		if valid[i].IsDefault {
			return valid[i].Name
		}
	}
	return valid[0].Name
}

func filterOptions(opts []catalog.Option, keep func(*catalog.Option) bool) []catalog.Option {
	var out []catalog.Option
	for i := range opts {
		if keep(&opts[i]) {
			out = append(out, opts[i])
		}
	}
	return out
}
