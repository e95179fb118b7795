package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/ports"
	petstore "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/adapters/persistence/gormstore"
	petdomain "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/domain"
	petports "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/ports"
	"github.com/Apurer/go-gin-adoption-api/internal/platform/database"
)

var _ ports.Store = (*Store)(nil)

// Store persists adoptions through GORM.
type Store struct {
	db *gorm.DB
}

// NewStore wires a GORM-backed adoption store. The caller owns the DB lifecycle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// AdoptionRecord maps an adoption to the adoptions table.
type AdoptionRecord struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;column:id"`
	PetID        int64     `gorm:"column:pet_id"`
	AdopterName  string    `gorm:"column:adopter_name"`
	Email        string    `gorm:"column:email"`
	Phone        string    `gorm:"column:phone"`
	Address      string    `gorm:"column:address"`
	AdoptionDate time.Time `gorm:"column:adoption_date"`
}

func (AdoptionRecord) TableName() string { return "adoptions" }

// WithinTransaction runs fn on one transaction. GORM commits when fn returns nil
// and rolls back on error or panic.
func (s *Store) WithinTransaction(ctx context.Context, fn func(tx ports.Tx) error) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&txScope{db: tx})
	})
}

type txScope struct {
	db *gorm.DB
}

func (t *txScope) PetStatus(ctx context.Context, petID int64) (petdomain.Status, error) {
	query := t.db.WithContext(ctx).Model(&petstore.PetRecord{}).Where("id = ?", petID)
	if database.Dialect(t.db) == database.DialectPostgres {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var statuses []string
	if err := query.Limit(1).Pluck("status", &statuses).Error; err != nil {
		return "", err
	}
	if len(statuses) == 0 {
		return "", petports.ErrNotFound
	}
	return petdomain.ParseStatus(statuses[0])
}

func (t *txScope) InsertAdoption(ctx context.Context, adoption *domain.Adoption) (int64, error) {
	if adoption == nil {
		return 0, errors.New("cannot insert nil adoption")
	}
	record := AdoptionRecord{
		PetID:        adoption.PetID,
		AdopterName:  adoption.Contact.AdopterName,
		Email:        adoption.Contact.Email,
		Phone:        adoption.Contact.Phone,
		Address:      adoption.Contact.Address,
		AdoptionDate: adoption.AdoptionDate.UTC(),
	}
	if err := t.db.WithContext(ctx).Create(&record).Error; err != nil {
		if database.IsForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: %w", petports.ErrNotFound, err)
		}
		return 0, err
	}
	return record.ID, nil
}

func (t *txScope) SetPetStatus(ctx context.Context, petID int64, status petdomain.Status) error {
	return petstore.SetStatus(t.db.WithContext(ctx), petID, status)
}

type adoptedRow struct {
	AdoptionID   int64
	PetID        int64
	PetName      string
	Breed        string
	Age          int
	Description  *string
	ImageURL     *string
	AdopterName  string
	Email        string
	Phone        string
	Address      string
	AdoptionDate time.Time
}

// ListAdopted joins adoptions with their pets, most recent adoption first.
// Equal dates fall back to the newer adoption id.
func (s *Store) ListAdopted(ctx context.Context) ([]*domain.AdoptedPet, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var rows []adoptedRow
	err := s.db.WithContext(ctx).
		Table("adoptions AS a").
		Select(`a.id AS adoption_id, p.id AS pet_id, p.name AS pet_name, p.breed AS breed, p.age AS age,
			p.description AS description, p.image_url AS image_url, a.adopter_name AS adopter_name,
			a.email AS email, a.phone AS phone, a.address AS address, a.adoption_date AS adoption_date`).
		Joins("JOIN pets AS p ON p.id = a.pet_id").
		Order("a.adoption_date DESC").
		Order("a.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domain.AdoptedPet, 0, len(rows))
	for _, r := range rows {
		out = append(out, &domain.AdoptedPet{
			AdoptionID:  r.AdoptionID,
			PetID:       r.PetID,
			PetName:     r.PetName,
			Breed:       r.Breed,
			Age:         r.Age,
			Description: r.Description,
			ImageURL:    r.ImageURL,
			Contact: domain.Contact{
				AdopterName: r.AdopterName,
				Email:       r.Email,
				Phone:       r.Phone,
				Address:     r.Address,
			},
			AdoptionDate: r.AdoptionDate.UTC(),
		})
	}
	return out, nil
}

func (s *Store) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("adoption store not configured")
	}
	return nil
}
