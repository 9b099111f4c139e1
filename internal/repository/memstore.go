package repository

import (
	"sync"

	"festival-app/internal/domain/festivals"
	"festival-app/internal/domain/performances"
	"festival-app/internal/domain/users"
)

// MemStore is an in-memory Store used by the workflow tests. A single
// mutex serializes Atomically blocks, giving the same
// one-writer-at-a-time guarantee the gorm store gets from row locks.
// Lookups return copies; mutations only become visible through Save.
type MemStore struct {
	mu sync.Mutex

	nextUserID        uint
	nextFestivalID    uint
	nextPerformanceID uint

	Users        map[uint]*users.User
	Festivals    map[uint]*festivals.Festival
	Performances map[uint]*performances.Performance
}

var _ Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{
		Users:        make(map[uint]*users.User),
		Festivals:    make(map[uint]*festivals.Festival),
		Performances: make(map[uint]*performances.Performance),
	}
}

func (s *MemStore) Atomically(fn func(Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&memTx{s})
}

// memTx is the view handed to an Atomically block. The mutex is already
// held, so nested Atomically calls run inline.
type memTx struct {
	*MemStore
}

func (t *memTx) Atomically(fn func(Store) error) error {
	return fn(t)
}

func copyUser(u *users.User) *users.User {
	c := *u
	return &c
}

func copyFestival(f *festivals.Festival) *festivals.Festival {
	c := *f
	c.Organizers = append([]users.User(nil), f.Organizers...)
	return &c
}

func copyPerformance(p *performances.Performance) *performances.Performance {
	c := *p
	c.Setlist = append([]string(nil), p.Setlist...)
	c.RehearsalSlots = append([]string(nil), p.RehearsalSlots...)
	c.PerformanceSlots = append([]string(nil), p.PerformanceSlots...)
	c.BandMembers = append([]users.User(nil), p.BandMembers...)
	return &c
}

func (s *MemStore) UserByID(id uint) (*users.User, error) {
	u, ok := s.Users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyUser(u), nil
}

func (s *MemStore) UserByUsername(username string) (*users.User, error) {
	for _, u := range s.Users {
		if u.Username == username {
			return copyUser(u), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) SaveUser(u *users.User) error {
	if u.ID == 0 {
		s.nextUserID++
		u.ID = s.nextUserID
	} else if u.ID > s.nextUserID {
		s.nextUserID = u.ID
	}
	s.Users[u.ID] = copyUser(u)
	return nil
}

func (s *MemStore) FestivalByID(id uint) (*festivals.Festival, error) {
	f, ok := s.Festivals[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyFestival(f), nil
}

func (s *MemStore) FestivalByName(name string) (*festivals.Festival, error) {
	for _, f := range s.Festivals {
		if f.Name == name {
			return copyFestival(f), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) CreateFestival(f *festivals.Festival) error {
	s.nextFestivalID++
	f.ID = s.nextFestivalID
	s.Festivals[f.ID] = copyFestival(f)
	return nil
}

func (s *MemStore) SaveFestival(f *festivals.Festival) error {
	stored, ok := s.Festivals[f.ID]
	if !ok {
		return ErrNotFound
	}
	c := copyFestival(f)
	c.Organizers = stored.Organizers
	s.Festivals[f.ID] = c
	return nil
}

func (s *MemStore) AddOrganizer(f *festivals.Festival, u *users.User) error {
	stored, ok := s.Festivals[f.ID]
	if !ok {
		return ErrNotFound
	}
	stored.Organizers = append(stored.Organizers, *copyUser(u))
	f.Organizers = append(f.Organizers, *copyUser(u))
	return nil
}

func (s *MemStore) PerformanceByID(id uint) (*performances.Performance, error) {
	p, ok := s.Performances[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyPerformance(p), nil
}

func (s *MemStore) PerformanceByName(festivalID uint, name string) (*performances.Performance, error) {
	for _, p := range s.Performances {
		if p.FestivalID == festivalID && p.Name == name {
			return copyPerformance(p), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) PerformancesByFestival(festivalID uint) ([]performances.Performance, error) {
	var list []performances.Performance
	for _, p := range s.Performances {
		if p.FestivalID == festivalID {
			list = append(list, *copyPerformance(p))
		}
	}
	return list, nil
}

func (s *MemStore) CreatePerformance(p *performances.Performance) error {
	s.nextPerformanceID++
	p.ID = s.nextPerformanceID
	s.Performances[p.ID] = copyPerformance(p)
	return nil
}

func (s *MemStore) SavePerformance(p *performances.Performance) error {
	stored, ok := s.Performances[p.ID]
	if !ok {
		return ErrNotFound
	}
	c := copyPerformance(p)
	c.BandMembers = stored.BandMembers
	s.Performances[p.ID] = c
	return nil
}

func (s *MemStore) DeletePerformance(p *performances.Performance) error {
	delete(s.Performances, p.ID)
	return nil
}

func (s *MemStore) AddBandMember(p *performances.Performance, u *users.User) error {
	stored, ok := s.Performances[p.ID]
	if !ok {
		return ErrNotFound
	}
	stored.BandMembers = append(stored.BandMembers, *copyUser(u))
	p.BandMembers = append(p.BandMembers, *copyUser(u))
	return nil
}
