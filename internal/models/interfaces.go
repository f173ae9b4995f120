package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

// Model is implemented by all resources that are part of an export.
type Model interface {
	Export(db *gorm.DB) (json.RawMessage, error) // All instances of this model for export.
}

// The "Registry" is a slice of all models available
//
// It is maintained so that operations that affect all models do not need to explicitly iterate over every single model,
// increasing the risk of forgetting something when adding a new model
var Registry = []Model{
	Project{},
	Category{},
	Expense{},
}
