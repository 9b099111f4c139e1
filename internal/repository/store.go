package repository

import (
	"errors"

	"festival-app/internal/domain/festivals"
	"festival-app/internal/domain/performances"
	"festival-app/internal/domain/users"
)

// ErrNotFound is returned by every lookup whose target does not exist,
// regardless of the backing store.
var ErrNotFound = errors.New("record not found")

// Store is the persistence boundary of the workflow engine. Atomically
// runs fn against a store whose reads and writes are serialized with
// respect to any other concurrent Atomically block touching the same
// rows, so a precondition check and its resulting write can never be
// interleaved with another writer.
type Store interface {
	Atomically(fn func(Store) error) error

	UserByID(id uint) (*users.User, error)
	UserByUsername(username string) (*users.User, error)
	SaveUser(u *users.User) error

	FestivalByID(id uint) (*festivals.Festival, error)
	FestivalByName(name string) (*festivals.Festival, error)
	CreateFestival(f *festivals.Festival) error
	SaveFestival(f *festivals.Festival) error
	AddOrganizer(f *festivals.Festival, u *users.User) error

	PerformanceByID(id uint) (*performances.Performance, error)
	PerformanceByName(festivalID uint, name string) (*performances.Performance, error)
	PerformancesByFestival(festivalID uint) ([]performances.Performance, error)
	CreatePerformance(p *performances.Performance) error
	SavePerformance(p *performances.Performance) error
	DeletePerformance(p *performances.Performance) error
	AddBandMember(p *performances.Performance, u *users.User) error
}
