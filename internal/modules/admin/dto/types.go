package dto

import "learnobs/internal/modules/admin/domain"

type (
	Stats       = domain.Stats
	StatsView   = domain.StatsView
	User        = domain.User
	Mapping     = domain.Mapping
	ActivityLog = domain.ActivityLog
	BulkKind    = domain.BulkKind
)

const (
	BulkChildren         = domain.BulkChildren
	BulkParents          = domain.BulkParents
	BulkRelationships    = domain.BulkRelationships
	BulkObserverMappings = domain.BulkObserverMappings
)

// BulkResult is the outcome of one CSV import.
type BulkResult struct {
	Kind    BulkKind
	Count   int
	Message string
}
