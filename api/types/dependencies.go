package types

import (
	"github.com/bakerbass/guitarchops/internal/database"
	"github.com/bakerbass/guitarchops/internal/services/analyzer"
	"github.com/bakerbass/guitarchops/internal/services/exports"
	"github.com/bakerbass/guitarchops/internal/services/library"
	"github.com/bakerbass/guitarchops/internal/services/tasks"
	"github.com/bakerbass/guitarchops/internal/services/workers"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB            *database.DB
	TrackService  library.TrackService
	Analyzer      *analyzer.Service
	ExportService exports.ExportService
	TaskStore     *tasks.Store
	WorkerPool    *workers.Pool
	UploadDir     string
}
