package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"festival-app/internal/domain/festivals"
	"festival-app/internal/domain/performances"
	"festival-app/internal/domain/users"
)

type gormStore struct {
	db *gorm.DB

	// inTx is set on the store handed to an Atomically block; reads then
	// take SELECT ... FOR UPDATE row locks so concurrent transitions on
	// the same entity serialize at the database.
	inTx bool
}

var _ Store = (*gormStore)(nil)

func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Atomically(fn func(Store) error) error {
	if s.inTx {
		return fn(s)
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx, inTx: true})
	})
}

func (s *gormStore) reader() *gorm.DB {
	if s.inTx {
		return s.db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return s.db
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *gormStore) UserByID(id uint) (*users.User, error) {
	var u users.User
	if err := s.reader().First(&u, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *gormStore) UserByUsername(username string) (*users.User, error) {
	var u users.User
	if err := s.reader().Where("username = ?", username).First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *gormStore) SaveUser(u *users.User) error {
	return s.db.Save(u).Error
}

func (s *gormStore) FestivalByID(id uint) (*festivals.Festival, error) {
	var f festivals.Festival
	if err := s.reader().Preload("Organizers").First(&f, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &f, nil
}

func (s *gormStore) FestivalByName(name string) (*festivals.Festival, error) {
	var f festivals.Festival
	if err := s.reader().Where("name = ?", name).First(&f).Error; err != nil {
		return nil, notFound(err)
	}
	return &f, nil
}

func (s *gormStore) CreateFestival(f *festivals.Festival) error {
	return s.db.Create(f).Error
}

func (s *gormStore) SaveFestival(f *festivals.Festival) error {
	return s.db.Omit("Organizers").Save(f).Error
}

func (s *gormStore) AddOrganizer(f *festivals.Festival, u *users.User) error {
	return s.db.Model(f).Association("Organizers").Append(u)
}

func (s *gormStore) PerformanceByID(id uint) (*performances.Performance, error) {
	var p performances.Performance
	if err := s.reader().Preload("BandMembers").First(&p, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (s *gormStore) PerformanceByName(festivalID uint, name string) (*performances.Performance, error) {
	var p performances.Performance
	err := s.reader().
		Where("festival_id = ? AND name = ?", festivalID, name).
		First(&p).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (s *gormStore) PerformancesByFestival(festivalID uint) ([]performances.Performance, error) {
	var list []performances.Performance
	err := s.reader().
		Where("festival_id = ?", festivalID).
		Order("name ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (s *gormStore) CreatePerformance(p *performances.Performance) error {
	return s.db.Create(p).Error
}

func (s *gormStore) SavePerformance(p *performances.Performance) error {
	return s.db.Omit("BandMembers", "Festival").Save(p).Error
}

func (s *gormStore) DeletePerformance(p *performances.Performance) error {
	return s.db.Select(clause.Associations).Delete(p).Error
}

func (s *gormStore) AddBandMember(p *performances.Performance, u *users.User) error {
	return s.db.Model(p).Association("BandMembers").Append(u)
}
