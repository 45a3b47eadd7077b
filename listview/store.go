package listview

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"isimm-manager/models"
)

// Fetcher loads the niveau collection for a canonical sort string
type Fetcher interface {
	FetchNiveaus(ctx context.Context, sort string) ([]models.Niveau, error)
}

// FetchRequest is the action dispatched to the store
type FetchRequest struct {
	Sort string
}

// CollectionView is a snapshot of the store
type CollectionView struct {
	Entities []models.Niveau
	Loading  bool
	Err      error // Last fetch failure, cleared by the next success
}

// Dispatcher is the part of the store the list view depends on
type Dispatcher interface {
	GetEntities(ctx context.Context, req FetchRequest) uint64
	View() CollectionView
}

// Store owns the niveau collection and runs fetches in the background. Every
// request gets a sequence number and only the latest one is applied; older
// responses that arrive late are dropped.
type Store struct {
	fetcher Fetcher
	log     *zap.Logger

	mu     sync.RWMutex
	seq    uint64
	view   CollectionView
	subs   map[int]chan struct{}
	nextID int

	inflight sync.WaitGroup
}

// NewStore creates an empty store backed by fetcher. A nil logger discards
// output.
func NewStore(fetcher Fetcher, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		fetcher: fetcher,
		log:     logger,
		view:    CollectionView{Entities: []models.Niveau{}},
		subs:    make(map[int]chan struct{}),
	}
}

// GetEntities starts a fetch and returns its sequence number without waiting
// for it to finish.
func (s *Store) GetEntities(ctx context.Context, req FetchRequest) uint64 {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.view.Loading = true
	s.mu.Unlock()
	s.notify()

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		entities, err := s.fetcher.FetchNiveaus(ctx, req.Sort)
		s.resolve(seq, req, entities, err)
	}()
	return seq
}

func (s *Store) resolve(seq uint64, req FetchRequest, entities []models.Niveau, err error) {
	s.mu.Lock()
	if seq != s.seq {
		s.mu.Unlock()
		s.log.Debug("Dropping stale niveau response", zap.Uint64("seq", seq), zap.String("sort", req.Sort))
		return
	}
	s.view.Loading = false
	if err != nil {
		// Keep the previous collection on screen
		s.view.Err = err
	} else {
		if entities == nil {
			entities = []models.Niveau{}
		}
		s.view.Entities = entities
		s.view.Err = nil
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Warn("Failed to fetch niveaus", zap.String("sort", req.Sort), zap.Error(err))
	} else {
		s.log.Debug("Fetched niveaus", zap.String("sort", req.Sort), zap.Int("count", len(entities)))
	}
	s.notify()
}

// View returns the current snapshot
func (s *Store) View() CollectionView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v := s.view
	v.Entities = append([]models.Niveau(nil), s.view.Entities...)
	return v
}

// Subscribe returns a channel that receives a signal after every change, and
// a function that cancels the subscription. Signals are coalesced when the
// subscriber is slow.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store) notify() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Wait blocks until every fetch started so far has resolved
func (s *Store) Wait() {
	s.inflight.Wait()
}
