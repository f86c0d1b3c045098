package diagnosis

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cropsaarthi/backend/internal/model"
)

// Uploader ships one diagnosis to the remote collector.
type Uploader interface {
	Upload(d model.Diagnosis) error
}

// Store keeps diagnoses in the local sqlite database so they survive going
// offline; Synced marks which records still need uploading.
type Store struct {
	db         *gorm.DB
	identifier Identifier
	uploader   Uploader
	now        func() time.Time
}

func NewStore(db *gorm.DB, identifier Identifier) (*Store, error) {
	if err := db.AutoMigrate(&model.Diagnosis{}); err != nil {
		return nil, err
	}
	if identifier == nil {
		identifier = StubIdentifier{}
	}
	return &Store{db: db, identifier: identifier, now: time.Now}, nil
}

// SetUploader installs the remote collector. Without one, SyncAll only flips
// the local flags.
func (s *Store) SetUploader(u Uploader) {
	s.uploader = u
}

// Diagnose identifies the image and stores the result unsynced.
func (s *Store) Diagnose(image []byte, location string) (model.Diagnosis, error) {
	ident, err := s.identifier.Identify(image)
	if err != nil {
		return model.Diagnosis{}, err
	}
	d := model.Diagnosis{
		ID:              uuid.NewString(),
		Disease:         ident.Disease,
		Confidence:      ident.Confidence,
		Treatment:       ident.Treatment,
		OrganicSolution: ident.OrganicSolution,
		Location:        location,
		TakenAt:         s.now(),
		Synced:          false,
	}
	if err := s.db.Create(&d).Error; err != nil {
		return model.Diagnosis{}, err
	}
	return d, nil
}

// All returns every stored diagnosis, oldest first.
func (s *Store) All() ([]model.Diagnosis, error) {
	var out []model.Diagnosis
	if err := s.db.Order("taken_at").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns one diagnosis by ID.
func (s *Store) Get(id string) (model.Diagnosis, bool, error) {
	var d model.Diagnosis
	err := s.db.First(&d, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Diagnosis{}, false, nil
	}
	if err != nil {
		return model.Diagnosis{}, false, err
	}
	return d, true, nil
}

// Unsynced returns the diagnoses not yet uploaded.
func (s *Store) Unsynced() ([]model.Diagnosis, error) {
	var out []model.Diagnosis
	if err := s.db.Where("synced = ?", false).Order("taken_at").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// MarkSynced flips the synced flag for id.
func (s *Store) MarkSynced(id string) error {
	return s.db.Model(&model.Diagnosis{}).Where("id = ?", id).Update("synced", true).Error
}

// Delete removes a diagnosis.
func (s *Store) Delete(id string) error {
	return s.db.Delete(&model.Diagnosis{}, "id = ?", id).Error
}

// SyncAll uploads every unsynced diagnosis and marks it synced, returning
// how many were drained. Called when connectivity returns. A record whose
// upload fails stays unsynced and is retried on the next reconnect.
func (s *Store) SyncAll() (int, error) {
	pending, err := s.Unsynced()
	if err != nil {
		return 0, err
	}
	synced := 0
	for _, d := range pending {
		if s.uploader != nil {
			if err := s.uploader.Upload(d); err != nil {
				log.Printf("diagnosis: upload %s: %v", d.ID, err)
				continue
			}
		}
		if err := s.MarkSynced(d.ID); err != nil {
			return synced, err
		}
		synced++
	}
	if synced > 0 {
		log.Printf("diagnosis: synced %d pending records", synced)
	}
	return synced, nil
}
