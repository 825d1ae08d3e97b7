package app

import (
	"hydropoints/internal/cache"
	"hydropoints/internal/repository"
)

// App bundles the persistence dependencies shared across services
type App struct {
	LogRepo     repository.LogRepo
	ScanRepo    repository.ScanRepo
	ProfileRepo repository.ProfileRepo
	ScoreRepo   repository.ScoreRepo
	SweepRepo   repository.SweepRepo
	ScoreCache  cache.ScoreCache
}
