// Package listview keeps the niveau list screen's sort state in step with the
// remote collection and the navigational location.
package listview

import (
	"context"
	"fmt"
	"sync"

	"isimm-manager/models"
)

// ListView is the list screen's controller. Build it with New, call Mount
// once, then feed it header clicks through Sort.
type ListView struct {
	store Dispatcher
	nav   Navigator

	mu      sync.Mutex
	sort    models.SortSpec
	mounted bool
}

// New reads the initial sort state from the navigator's current location
func New(store Dispatcher, nav Navigator) *ListView {
	return &ListView{
		store: store,
		nav:   nav,
		sort:  InitialSortState(nav.Location().Search),
	}
}

// Mount runs the first synchronization. Later calls do nothing.
func (v *ListView) Mount(ctx context.Context) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.mounted {
		return
	}
	v.mounted = true
	v.sortEntities(ctx)
}

// Sort handles a click on field's header. A field that is not sortable leaves
// the state untouched: no fetch, no navigation.
func (v *ListView) Sort(ctx context.Context, field string) error {
	if !models.IsSortableField(field) {
		return fmt.Errorf("%w: %q", ErrUnsortableField, field)
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.setSortState(ctx, Toggle(v.sort, field))
	return nil
}

// SyncList is the refresh action
func (v *ListView) SyncList(ctx context.Context) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sortEntities(ctx)
}

// SortState returns the current sort specification
func (v *ListView) SortState() models.SortSpec {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sort
}

// View renders the current store snapshot
func (v *ListView) View() ViewState {
	spec := v.SortState()
	snap := v.store.View()
	return BuildView(snap.Entities, snap.Loading, spec)
}

// setSortState stores next and resynchronizes only if field or direction
// changed. Before Mount the state is just recorded.
func (v *ListView) setSortState(ctx context.Context, next models.SortSpec) {
	if next == v.sort {
		return
	}
	v.sort = next
	if v.mounted {
		v.sortEntities(ctx)
	}
}

func (v *ListView) refresh(ctx context.Context) {
	v.store.GetEntities(ctx, FetchRequest{Sort: v.sort.String()})
}

// sortEntities fetches, then rewrites the location when it does not already
// carry the canonical sort query.
func (v *ListView) sortEntities(ctx context.Context) {
	v.refresh(ctx)
	loc := v.nav.Location()
	if want := CanonicalSearch(v.sort); loc.Search != want {
		v.nav.Navigate(loc.Path + want)
	}
}
