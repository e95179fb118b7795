package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Pet schema mirrors the pets persistence adapter.
type petRecord struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Name        string    `gorm:"column:name;type:text;not null"`
	Breed       string    `gorm:"column:breed;type:text;not null"`
	Age         int       `gorm:"column:age;not null"`
	Description *string   `gorm:"column:description;type:text"`
	ImageURL    *string   `gorm:"column:image_url;type:text"`
	Status      string    `gorm:"column:status;type:varchar(16);not null;default:available;index"`
	CreatedAt   time.Time `gorm:"column:created_at;not null"`
}

func (petRecord) TableName() string { return "pets" }

// Adoption schema mirrors the adoptions persistence adapter.
type adoptionRecord struct {
	ID           int64      `gorm:"primaryKey;autoIncrement;column:id"`
	PetID        int64      `gorm:"column:pet_id;not null;index"`
	Pet          *petRecord `gorm:"foreignKey:PetID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	AdopterName  string     `gorm:"column:adopter_name;type:text;not null"`
	Email        string     `gorm:"column:email;type:text;not null"`
	Phone        string     `gorm:"column:phone;type:text;not null"`
	Address      string     `gorm:"column:address;type:text;not null"`
	AdoptionDate time.Time  `gorm:"column:adoption_date;not null;index"`
}

func (adoptionRecord) TableName() string { return "adoptions" }

func createPets(tx *gorm.DB) error {
	return tx.AutoMigrate(&petRecord{})
}

func createAdoptions(tx *gorm.DB) error {
	return tx.AutoMigrate(&adoptionRecord{})
}

// widenPetsImageURL lifts the legacy varchar bound on image_url. Databases created
// by create_pets already have TEXT, so the statement is a no-op there. SQLite does
// not enforce declared lengths.
func widenPetsImageURL(tx *gorm.DB) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	return tx.Exec("ALTER TABLE pets ALTER COLUMN image_url TYPE TEXT").Error
}
