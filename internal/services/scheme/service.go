// Package scheme implements the government scheme browser: a locally cached
// scheme list with state/category filters, bookmarks, and new-scheme
// notifications over MQTT.
package scheme

import (
	"encoding/json"
	"log"
	"slices"

	"gorm.io/gorm"

	"github.com/cropsaarthi/backend/internal/model"
	"github.com/cropsaarthi/backend/pkg/kvstore"
)

const (
	bookmarksKey = "schemes/bookmarks"
	topicsKey    = "schemes/notification-topics"

	// Wildcard values that make a scheme match every filter.
	allStates     = "All India"
	allCategories = "All"
)

// Service serves schemes from the local sqlite cache so the browser keeps
// working offline.
type Service struct {
	db *gorm.DB
	kv *kvstore.Store
}

func NewService(db *gorm.DB, kv *kvstore.Store) (*Service, error) {
	if err := db.AutoMigrate(&model.Scheme{}); err != nil {
		return nil, err
	}
	return &Service{db: db, kv: kv}, nil
}

// ReplaceAll swaps the cached scheme list for a freshly fetched one.
func (s *Service) ReplaceAll(schemes []model.Scheme) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.Scheme{}).Error; err != nil {
			return err
		}
		if len(schemes) == 0 {
			return nil
		}
		return tx.Create(&schemes).Error
	})
}

// Upsert stores or updates a single scheme.
func (s *Service) Upsert(scheme model.Scheme) error {
	return s.db.Save(&scheme).Error
}

// All returns every cached scheme.
func (s *Service) All() ([]model.Scheme, error) {
	var out []model.Scheme
	if err := s.db.Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ByState returns schemes applicable in the given state, including
// nation-wide schemes.
func (s *Service) ByState(state string) ([]model.Scheme, error) {
	return s.filtered(func(sc model.Scheme) bool {
		return slices.Contains(sc.States, state) || slices.Contains(sc.States, allStates)
	})
}

// ByFarmerCategory returns schemes open to the given farmer category,
// including schemes open to all.
func (s *Service) ByFarmerCategory(category string) ([]model.Scheme, error) {
	return s.filtered(func(sc model.Scheme) bool {
		return slices.Contains(sc.FarmerCategories, category) || slices.Contains(sc.FarmerCategories, allCategories)
	})
}

func (s *Service) filtered(keep func(model.Scheme) bool) ([]model.Scheme, error) {
	all, err := s.All()
	if err != nil {
		return nil, err
	}
	out := make([]model.Scheme, 0, len(all))
	for _, sc := range all {
		if keep(sc) {
			out = append(out, sc)
		}
	}
	return out, nil
}

// Bookmarks returns the bookmarked scheme IDs. Corrupt stored bookmarks are
// logged and treated as empty.
func (s *Service) Bookmarks() []string {
	raw, ok, err := s.kv.Get(bookmarksKey)
	if err != nil || !ok {
		if err != nil {
			log.Printf("scheme: read bookmarks: %v", err)
		}
		return nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		log.Printf("scheme: corrupt bookmarks: %v", err)
		return nil
	}
	return ids
}

// SetBookmark adds or removes a bookmark and returns the updated list.
func (s *Service) SetBookmark(schemeID string, bookmarked bool) ([]string, error) {
	ids := s.Bookmarks()
	if bookmarked {
		if !slices.Contains(ids, schemeID) {
			ids = append(ids, schemeID)
		}
	} else {
		ids = slices.DeleteFunc(ids, func(id string) bool { return id == schemeID })
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return nil, err
	}
	if err := s.kv.Set(bookmarksKey, string(b)); err != nil {
		return nil, err
	}
	return ids, nil
}

// SubscribeTopics stores the notification topics the farmer opted into.
func (s *Service) SubscribeTopics(topics []string) error {
	b, err := json.Marshal(topics)
	if err != nil {
		return err
	}
	return s.kv.Set(topicsKey, string(b))
}

// NotificationsEnabled reports whether any topic subscription is stored.
func (s *Service) NotificationsEnabled() bool {
	_, ok, err := s.kv.Get(topicsKey)
	return err == nil && ok
}
