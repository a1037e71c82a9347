package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/color-palette/api/datastore"
	"github.com/color-palette/api/models"
	"github.com/color-palette/api/naming"
	"github.com/color-palette/api/palette"
)

// Scheduler creates the palette of the day at every local midnight
type Scheduler struct {
	DailyPaletteRepo datastore.DailyPaletteRepository
	Engine           *palette.Engine
	Namer            *naming.Namer

	now      func() time.Time
	mu       sync.Mutex
	timer    *time.Timer
	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
}

func NewScheduler(repo datastore.DailyPaletteRepository, engine *palette.Engine, namer *naming.Namer) *Scheduler {
	return &Scheduler{
		DailyPaletteRepo: repo,
		Engine:           engine,
		Namer:            namer,
		now:              time.Now,
		done:             make(chan struct{}),
	}
}

// Start begins the scheduler to run at midnight every day
func (s *Scheduler) Start() {
	now := s.now()
	nextMidnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	durationUntilMidnight := nextMidnight.Sub(now)

	log.Printf("Scheduler started. Next daily palette generation in %v", durationUntilMidnight)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.timer = time.AfterFunc(durationUntilMidnight, func() {
		s.run()

		s.mu.Lock()
		select {
		case <-s.done:
			s.mu.Unlock()
			return
		default:
		}
		s.ticker = time.NewTicker(24 * time.Hour)
		ticks := s.ticker.C
		s.mu.Unlock()

		go func() {
			for {
				select {
				case <-ticks:
					s.run()
				case <-s.done:
					return
				}
			}
		}()
	})
}

// Stop stops the scheduler. It is safe to call more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		if s.timer != nil {
			s.timer.Stop()
		}
		if s.ticker != nil {
			s.ticker.Stop()
		}
		close(s.done)
		s.mu.Unlock()
		log.Println("Scheduler stopped")
	})
}

func (s *Scheduler) run() {
	if _, err := s.GenerateDailyPalette(context.Background(), false); err != nil {
		log.Printf("Error generating daily palette: %v", err)
	}
}

// GenerateDailyPalette creates today's palette with a random harmony and
// style. An existing palette for today is returned as is unless force is set.
func (s *Scheduler) GenerateDailyPalette(ctx context.Context, force bool) (models.DailyPalette, error) {
	log.Println("Generating daily palette...")

	today := s.now()

	if !force {
		existing, err := s.DailyPaletteRepo.GetByDate(today)
		if err == nil {
			log.Printf("Daily palette already exists for %s: %s", existing.Date, existing.Name)
			return existing, nil
		}
		if !datastore.IsNotFound(err) {
			return models.DailyPalette{}, err
		}
	}

	harmony := models.Harmonies[s.Engine.Intn(len(models.Harmonies))]
	style := models.Styles[s.Engine.Intn(len(models.Styles))]
	p := s.Engine.Generate(harmony, style)

	daily := models.DailyPalette{
		Date:      datastore.DateKey(today),
		Name:      s.Namer.GeneratePaletteName(ctx, p.Colors),
		Palette:   p,
		CreatedAt: s.now(),
	}

	saved, err := s.DailyPaletteRepo.Create(daily)
	if err != nil {
		log.Printf("Error saving daily palette to database: %v", err)
		return models.DailyPalette{}, err
	}

	log.Printf("Successfully generated daily palette: %s (%s, %s) for %s",
		saved.Name, saved.Harmony, saved.Style, saved.Date)

	return saved, nil
}
