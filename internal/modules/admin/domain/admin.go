package domain

import (
	"fmt"
	"strings"

	apperrors "learnobs/internal/platform/errors"
)

type Stats struct {
	TotalUsers      string
	TotalChildren   string
	TotalReports    string
	ActiveObservers string
}

// StatsView distinguishes "not loaded" from real figures; there are no
// placeholder numbers.
type StatsView struct {
	Loaded bool
	Stats  Stats
}

type User struct {
	ID        string
	Name      string
	Email     string
	Role      string
	CreatedAt string
}

type Mapping struct {
	ID           string
	ObserverID   string
	ObserverName string
	ChildID      string
	ChildName    string
}

type ActivityLog struct {
	Action    string
	Timestamp string
	UserName  string
	Details   string
}

func NewMapping(observerID, childID string) (Mapping, error) {
	observerID, childID = strings.TrimSpace(observerID), strings.TrimSpace(childID)
	if observerID == "" || childID == "" {
		return Mapping{}, apperrors.Validation("Please select both observer and child")
	}
	return Mapping{ObserverID: observerID, ChildID: childID}, nil
}

// BulkKind is one of the CSV import targets.
type BulkKind string

const (
	BulkChildren         BulkKind = "children"
	BulkParents          BulkKind = "parents"
	BulkRelationships    BulkKind = "relationships"
	BulkObserverMappings BulkKind = "observer-mappings"
)

func ParseBulkKind(s string) (BulkKind, error) {
	switch k := BulkKind(strings.ToLower(strings.TrimSpace(s))); k {
	case BulkChildren, BulkParents, BulkRelationships, BulkObserverMappings:
		return k, nil
	default:
		return "", fmt.Errorf("%w: unknown bulk upload %q", apperrors.ErrInvalidInput, s)
	}
}

// Success is the confirmation shown after an import.
func (k BulkKind) Success(count int) string {
	switch k {
	case BulkChildren:
		return fmt.Sprintf("Successfully uploaded %d children", count)
	case BulkParents:
		return fmt.Sprintf("Successfully uploaded %d parents", count)
	case BulkRelationships:
		return fmt.Sprintf("Successfully created %d relationships", count)
	default:
		return fmt.Sprintf("Successfully created %d mappings", count)
	}
}

// CSV is a file picked for upload.
type CSV struct {
	Name string
	Data []byte
}

func (c CSV) Validate() error {
	if c.Name == "" || len(c.Data) == 0 {
		return apperrors.Validation("Please select a CSV file")
	}
	return nil
}
