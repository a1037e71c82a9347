// Package studio holds the palette generator's UI state. The state is only
// changed through Store.Dispatch; subscribers are told about every change.
package studio

import (
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/color-palette/api/models"
	"github.com/color-palette/api/palette"
)

type ActionType string

const (
	ActionGenerate       ActionType = "generate"
	ActionCycleStyle     ActionType = "cycle_style"
	ActionCycleHarmony   ActionType = "cycle_harmony"
	ActionToggleFavorite ActionType = "toggle_favorite"
	ActionRemoveFavorite ActionType = "remove_favorite"
	ActionLoadFavorites  ActionType = "load_favorites"
	ActionShowToast      ActionType = "show_toast"
	ActionDismissToast   ActionType = "dismiss_toast"
)

type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

type Toast struct {
	ID      string    `json:"id"`
	Message string    `json:"message"`
	Kind    ToastKind `json:"type"`
}

// Action is a request to change the state. Only the fields relevant to Type
// are read.
type Action struct {
	Type      ActionType               `json:"type"`
	ID        string                   `json:"id,omitempty"`
	Message   string                   `json:"message,omitempty"`
	Kind      ToastKind                `json:"kind,omitempty"`
	Favorites []models.FavoritePalette `json:"favorites,omitempty"`
	// Palette overrides the current palette for ToggleFavorite
	Palette *models.Palette `json:"palette,omitempty"`
}

type State struct {
	Palette   models.Palette           `json:"palette"`
	Favorites []models.FavoritePalette `json:"favorites"`
	Toast     *Toast                   `json:"toast,omitempty"`
	// InFavorites reports whether the current palette is saved
	InFavorites bool `json:"inFavorites"`

	// version increases with every committed dispatch
	version uint64
}

func (s State) clone() State {
	out := s
	out.Palette.Colors = slices.Clone(s.Palette.Colors)
	out.Favorites = slices.Clone(s.Favorites)
	if s.Toast != nil {
		t := *s.Toast
		out.Toast = &t
	}
	return out
}

func (s State) favoriteIndex() int {
	return indexOf(s.Favorites, s.Palette)
}

// ContainsFavorite reports whether p is saved in favorites.
func ContainsFavorite(favorites []models.FavoritePalette, p models.Palette) bool {
	return indexOf(favorites, p) >= 0
}

func indexOf(favorites []models.FavoritePalette, p models.Palette) int {
	return slices.IndexFunc(favorites, func(f models.FavoritePalette) bool {
		return f.Palette.SameAs(p)
	})
}

// Listener receives the state after a dispatch along with the previous one.
type Listener func(prev, next State)

type Store struct {
	mu        sync.Mutex
	engine    *palette.Engine
	state     State
	listeners map[int]Listener
	nextID    int
}

// NewStore starts with the retro style, random harmony and a fresh palette.
func NewStore(engine *palette.Engine) *Store {
	s := &Store{
		engine:    engine,
		listeners: make(map[int]Listener),
	}
	s.state.Palette = engine.Generate(models.HarmonyRandom, models.StyleRetro)
	s.state.Favorites = []models.FavoritePalette{}
	return s
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Dispatch applies a to the state and notifies subscribers in registration
// order. Dispatches are serialized.
func (s *Store) Dispatch(a Action) (State, error) {
	s.mu.Lock()
	prev := s.state.clone()
	next, err := s.reduce(prev.clone(), a)
	if err != nil {
		s.mu.Unlock()
		return prev, err
	}
	next.InFavorites = next.favoriteIndex() >= 0
	next.version = prev.version + 1
	s.state = next

	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	listeners := make([]Listener, 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, s.listeners[id])
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(prev, next.clone())
	}
	return next.clone(), nil
}

func (s *Store) reduce(st State, a Action) (State, error) {
	p := st.Palette
	switch a.Type {
	case ActionGenerate:
		st.Palette = s.engine.Generate(p.Harmony, p.Style)

	case ActionCycleStyle:
		next := p.Style.Next()
		st.Palette = models.Palette{
			Colors:  palette.ApplyStyleFilter(p.Colors, next),
			Style:   next,
			Harmony: p.Harmony,
		}

	case ActionCycleHarmony:
		st.Palette = s.engine.Generate(p.Harmony.Next(), p.Style)

	case ActionToggleFavorite:
		target := p
		if a.Palette != nil {
			target = *a.Palette
		}
		if i := indexOf(st.Favorites, target); i >= 0 {
			st.Favorites = slices.Delete(st.Favorites, i, i+1)
		} else {
			st.Favorites = append(st.Favorites, models.NewFavoritePalette(target))
		}

	case ActionRemoveFavorite:
		i := slices.IndexFunc(st.Favorites, func(f models.FavoritePalette) bool { return f.ID == a.ID })
		if i < 0 {
			return st, fmt.Errorf("favorite %q not found", a.ID)
		}
		st.Favorites = slices.Delete(st.Favorites, i, i+1)

	case ActionLoadFavorites:
		st.Favorites = slices.Clone(a.Favorites)
		if st.Favorites == nil {
			st.Favorites = []models.FavoritePalette{}
		}

	case ActionShowToast:
		kind := a.Kind
		if kind == "" {
			kind = ToastSuccess
		}
		st.Toast = &Toast{ID: uuid.New().String(), Message: a.Message, Kind: kind}

	case ActionDismissToast:
		if a.ID == "" || (st.Toast != nil && st.Toast.ID == a.ID) {
			st.Toast = nil
		}

	default:
		return st, fmt.Errorf("unknown action %q", a.Type)
	}
	return st, nil
}

// ToastDuration is how long a toast stays visible.
const ToastDuration = 2 * time.Second

// AutoDismissToasts subscribes a listener that clears each new toast after d.
func AutoDismissToasts(s *Store, d time.Duration) func() {
	return s.Subscribe(func(prev, next State) {
		if next.Toast == nil || (prev.Toast != nil && prev.Toast.ID == next.Toast.ID) {
			return
		}
		id := next.Toast.ID
		time.AfterFunc(d, func() {
			s.Dispatch(Action{Type: ActionDismissToast, ID: id})
		})
	})
}

// FavoritesSaver persists the favorites list.
type FavoritesSaver interface {
	Save(favorites []models.FavoritePalette) error
}

// PersistFavorites subscribes a listener that saves the favorites whenever
// they change. Saves are serialized and a snapshot older than the last one
// saved is dropped, so concurrent dispatches cannot leave a stale list
// behind. Save errors are logged.
func PersistFavorites(s *Store, saver FavoritesSaver) func() {
	var (
		mu    sync.Mutex
		saved uint64
	)
	return s.Subscribe(func(prev, next State) {
		if sameFavorites(prev.Favorites, next.Favorites) {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		if next.version <= saved {
			return
		}
		saved = next.version
		if err := saver.Save(next.Favorites); err != nil {
			log.Printf("failed to save favorites: %v", err)
		}
	})
}

func sameFavorites(a, b []models.FavoritePalette) bool {
	return slices.EqualFunc(a, b, func(x, y models.FavoritePalette) bool { return x.ID == y.ID })
}
