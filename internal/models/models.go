package models

import "gorm.io/gorm"

// AllModels returns every model that needs a table, in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&Track{},
		&AnalysisCache{},
		&Export{},
	}
}

// AutoMigrate runs GORM auto-migration for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
