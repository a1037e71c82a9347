package datastore

import (
	"encoding/json"
	"fmt"

	"github.com/color-palette/api/models"
)

// FavoritesKey is the key the favorites list is stored under
const FavoritesKey = "colorPaletteFavorites"

type FavoritesRepository interface {
	Load() ([]models.FavoritePalette, error)
	Save(favorites []models.FavoritePalette) error
}

// FavoritesStore keeps the whole favorites list as one JSON document
type FavoritesStore struct {
	kv KeyValueRepository
}

func NewFavoritesStore(kv KeyValueRepository) FavoritesStore {
	return FavoritesStore{kv: kv}
}

// Load returns the saved favorites. A missing key is an empty list.
func (fs FavoritesStore) Load() ([]models.FavoritePalette, error) {
	raw, err := fs.kv.Get(FavoritesKey)
	if IsNotFound(err) {
		return []models.FavoritePalette{}, nil
	}
	if err != nil {
		return nil, err
	}

	favorites := []models.FavoritePalette{}
	if err := json.Unmarshal([]byte(raw), &favorites); err != nil {
		return nil, fmt.Errorf("failed to decode favorites: %v", err)
	}
	return favorites, nil
}

func (fs FavoritesStore) Save(favorites []models.FavoritePalette) error {
	if favorites == nil {
		favorites = []models.FavoritePalette{}
	}
	raw, err := json.Marshal(favorites)
	if err != nil {
		return err
	}
	return fs.kv.Set(FavoritesKey, string(raw))
}
