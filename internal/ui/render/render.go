// Package render maps fetched data to display structures. Nothing here
// draws; views decide how an Item or a Summary looks on screen.
package render

import (
	"strings"
	"time"
	"unicode/utf8"
)

// PreviewLimit is how many characters of observation text a preview shows.
const PreviewLimit = 150

const (
	NoGoals    = "No goals set yet."
	NoMessages = "No messages yet. Start a conversation!"
	NoReports  = "No reports available yet."
	NoUsers    = "No users found."
	NoMappings = "No observer-child mappings found."
	NoLogs     = "No activity logs found."
	NoChildren = "No children assigned yet."
	NoParents  = "No parents found."
	NotLoaded  = "unknown"
	notSet     = "N/A"
)

// Item is one selectable row.
type Item struct {
	ID       string
	Title    string
	Meta     string
	Body     string
	Progress *Progress
}

type Progress struct {
	Percent int
	Label   string
}

// List is a rendered collection. Placeholder is set exactly when Items is
// empty.
type List struct {
	Items       []Item
	Placeholder string
}

func (l List) Empty() bool { return len(l.Items) == 0 }

func list(items []Item, placeholder string) List {
	if len(items) == 0 {
		return List{Placeholder: placeholder}
	}
	return List{Items: items}
}

// Truncate shortens s to limit runes and marks the cut with "...".
func Truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + "..."
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Date formats a service date as M/D/YYYY, leaving unparseable input as is.
func Date(s string) string {
	t, ok := parseTime(s)
	if !ok {
		return s
	}
	return t.Format("1/2/2006")
}

// DateTime formats a service timestamp as M/D/YYYY, h:mm PM.
func DateTime(s string) string {
	t, ok := parseTime(s)
	if !ok {
		return s
	}
	return t.Format("1/2/2006, 3:04 PM")
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return notSet
	}
	return s
}
