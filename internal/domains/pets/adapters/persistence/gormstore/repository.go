package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/go-gin-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/pets/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists pets through GORM. It works against PostgreSQL and SQLite;
// the schema is owned by the migrations package.
type Repository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewRepository wires a GORM-backed repository. The caller owns the DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// PetRecord maps the pet aggregate to the pets table.
type PetRecord struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Name        string    `gorm:"column:name"`
	Breed       string    `gorm:"column:breed"`
	Age         int       `gorm:"column:age"`
	Description *string   `gorm:"column:description"`
	ImageURL    *string   `gorm:"column:image_url"`
	Status      string    `gorm:"column:status"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (PetRecord) TableName() string { return "pets" }

func newPetRecord(p *domain.Pet) PetRecord {
	return PetRecord{
		Name:        p.Name,
		Breed:       p.Breed,
		Age:         p.Age,
		Description: cloneString(p.Description),
		ImageURL:    cloneString(p.ImageURL),
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
	}
}

// Insert stores a new pet and returns the generated identifier.
func (r *Repository) Insert(ctx context.Context, pet *domain.Pet) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	if pet == nil {
		return 0, errors.New("cannot insert nil pet")
	}
	record := newPetRecord(pet)
	if record.Status == "" {
		record.Status = string(domain.StatusAvailable)
	}
	record.CreatedAt = r.now().UTC()
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return 0, err
	}
	return record.ID, nil
}

// GetByID fetches a pet by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Pet, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record PetRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// ListAvailable returns pets with the available status ordered by id.
func (r *Repository) ListAvailable(ctx context.Context) ([]*domain.Pet, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []PetRecord
	if err := r.db.WithContext(ctx).
		Where("status = ?", string(domain.StatusAvailable)).
		Order("id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	pets := make([]*domain.Pet, 0, len(records))
	for i := range records {
		pets = append(pets, records[i].toDomain())
	}
	return pets, nil
}

// SetStatus updates the lifecycle status of an existing pet.
func (r *Repository) SetStatus(ctx context.Context, id int64, status domain.Status) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return SetStatus(r.db.WithContext(ctx), id, status)
}

// SetStatus runs the status update on db, which may be a transaction handle.
// An adopted pet is never moved back to available; that returns domain.ErrStatusTransition.
func SetStatus(db *gorm.DB, id int64, status domain.Status) error {
	status, err := domain.ParseStatus(string(status))
	if err != nil {
		return err
	}
	query := db.Model(&PetRecord{}).Where("id = ?", id)
	if status == domain.StatusAvailable {
		query = query.Where("status <> ?", string(domain.StatusAdopted))
	}
	result := query.Update("status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}
	if status != domain.StatusAvailable {
		return ports.ErrNotFound
	}
	return explainSkippedUpdate(db, id, status)
}

// explainSkippedUpdate tells a missing pet apart from one the status guard refused.
func explainSkippedUpdate(db *gorm.DB, id int64, status domain.Status) error {
	var current []string
	if err := db.Model(&PetRecord{}).Where("id = ?", id).Limit(1).Pluck("status", &current).Error; err != nil {
		return err
	}
	if len(current) == 0 {
		return ports.ErrNotFound
	}
	if err := domain.CanTransition(domain.Status(current[0]), status); err != nil {
		return fmt.Errorf("pet %d: %w", id, err)
	}
	return nil
}

// Delete removes a pet by identifier. Adoptions cascade through the foreign key.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&PetRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("pet repository not configured")
	}
	return nil
}

func (r *PetRecord) toDomain() *domain.Pet {
	if r == nil {
		return nil
	}
	return &domain.Pet{
		ID:          r.ID,
		Name:        r.Name,
		Breed:       r.Breed,
		Age:         r.Age,
		Description: cloneString(r.Description),
		ImageURL:    cloneString(r.ImageURL),
		Status:      domain.Status(r.Status),
		CreatedAt:   r.CreatedAt,
	}
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	value := *v
	return &value
}
