package api

import (
	"context"

	"github.com/color-palette/api/datastore"
	"github.com/color-palette/api/models"
	"github.com/color-palette/api/naming"
	"github.com/color-palette/api/palette"
	"github.com/color-palette/api/studio"
)

type Config struct {
	HTTPPort          string
	DatabaseType      string
	DatabaseUser      string
	DatabasePassword  string
	DatabaseName      string
	SSLMode           string
	SQLitePath        string
	JwtSecret         string
	JwtAccessDuration int // seconds
	JwtDomain         string
	AdminPasswordHash string // bcrypt
	AllowedOrigins    []string
	DevMode           bool

	NamingAPIURL    string
	NamingAPIKey    string
	NamingModel     string
	NamingStrategy  string
	NamingTimeoutMs int

	SchedulerEnabled bool
}

// DailyGenerator creates the palette of the day
type DailyGenerator interface {
	GenerateDailyPalette(ctx context.Context, force bool) (models.DailyPalette, error)
}

type Application struct {
	Config           Config
	Engine           *palette.Engine
	Namer            *naming.Namer
	Studio           *studio.Store
	FavoritesRepo    datastore.FavoritesRepository
	DailyPaletteRepo datastore.DailyPaletteRepository
	DailyGenerator   DailyGenerator
}
