package render

import (
	"fmt"
	"strings"

	admindto "learnobs/internal/modules/admin/dto"
	directorydto "learnobs/internal/modules/directory/dto"
	goalsdto "learnobs/internal/modules/goals/dto"
	messagesdto "learnobs/internal/modules/messages/dto"
	reportsdto "learnobs/internal/modules/reports/dto"
)

type Audience int

const (
	AudienceObserver Audience = iota
	AudienceParent
)

// Goals renders goals for the observer (with child names) or the parent
// (with status and progress).
func Goals(goals []goalsdto.Goal, audience Audience) List {
	items := make([]Item, 0, len(goals))
	for _, g := range goals {
		item := Item{ID: g.ID, Body: g.Description}
		target := "Target: " + Date(g.TargetDate)
		if audience == AudienceParent {
			item.Title = target
			item.Meta = orNA(g.Status)
			pct := g.Percent()
			item.Progress = &Progress{Percent: pct, Label: fmt.Sprintf("%d%% Complete", pct)}
		} else {
			item.Title = g.ChildName
			item.Meta = target
			if g.Status != "" {
				item.Meta += " | " + g.Status
			}
		}
		items = append(items, item)
	}
	return list(items, NoGoals)
}

// ReportPreviews renders the parent's report list.
func ReportPreviews(reports []reportsdto.Preview) List {
	items := make([]Item, 0, len(reports))
	for _, r := range reports {
		items = append(items, Item{
			ID:    r.ID,
			Title: Date(r.Date),
			Meta:  "Observer: " + orNA(r.ObserverName),
			Body:  Truncate(r.Observations, PreviewLimit),
		})
	}
	return list(items, NoReports)
}

func Users(users []admindto.User) List {
	items := make([]Item, 0, len(users))
	for _, u := range users {
		items = append(items, Item{
			ID:    u.ID,
			Title: u.Name,
			Meta:  fmt.Sprintf("%s | %s | Joined: %s", u.Email, u.Role, Date(u.CreatedAt)),
		})
	}
	return list(items, NoUsers)
}

func ObserverMappings(mappings []admindto.Mapping) List {
	items := make([]Item, 0, len(mappings))
	for _, m := range mappings {
		items = append(items, Item{ID: m.ID, Title: m.ObserverName + " → " + m.ChildName})
	}
	return list(items, NoMappings)
}

func ActivityLogs(logs []admindto.ActivityLog) List {
	items := make([]Item, 0, len(logs))
	for _, l := range logs {
		items = append(items, Item{
			Title: l.Action,
			Meta:  DateTime(l.Timestamp),
			Body:  fmt.Sprintf("User: %s | %s", l.UserName, l.Details),
		})
	}
	return list(items, NoLogs)
}

// Children renders a child selector.
func Children(children []directorydto.Child) List {
	items := make([]Item, 0, len(children))
	for _, c := range children {
		item := Item{ID: c.ID, Title: c.Name}
		var meta []string
		if c.Age != "" {
			meta = append(meta, "Age "+c.Age)
		}
		if c.Grade != "" {
			meta = append(meta, "Grade "+c.Grade)
		}
		item.Meta = strings.Join(meta, " | ")
		items = append(items, item)
	}
	return list(items, NoChildren)
}

// People renders parents or observers for selection.
func People(ids, names, details []string) List {
	items := make([]Item, 0, len(ids))
	for i := range ids {
		item := Item{ID: ids[i], Title: names[i]}
		if i < len(details) {
			item.Meta = details[i]
		}
		items = append(items, item)
	}
	return list(items, NoParents)
}

func Parents(parents []directorydto.Parent) List {
	ids := make([]string, len(parents))
	names := make([]string, len(parents))
	details := make([]string, len(parents))
	for i, p := range parents {
		ids[i], names[i] = p.ID, p.Name
		if p.ChildName != "" {
			details[i] = "Parent of " + p.ChildName
		}
	}
	return People(ids, names, details)
}

func Observers(observers []directorydto.Observer) List {
	ids := make([]string, len(observers))
	names := make([]string, len(observers))
	for i, o := range observers {
		ids[i], names[i] = o.ID, o.Name
	}
	l := People(ids, names, nil)
	if l.Empty() {
		l.Placeholder = "No observers found."
	}
	return l
}

// ChildHeader is the parent dashboard header.
type ChildHeader struct {
	Title    string
	Age      string
	Grade    string
	Observer string
}

func Child(c directorydto.Child) ChildHeader {
	return ChildHeader{
		Title:    c.Name + "'s Progress",
		Age:      orNA(c.Age),
		Grade:    orNA(c.Grade),
		Observer: orNA(c.ObserverName),
	}
}

// Bubble is one message placed relative to the viewer.
type Bubble struct {
	Sender   string
	Content  string
	Time     string
	Outgoing bool
}

type ThreadView struct {
	Header      string
	Bubbles     []Bubble
	Placeholder string
	// ScrollToLatest asks the view to show the newest message.
	ScrollToLatest bool
}

// Thread keeps the service order, which is chronological.
func Thread(msgs []messagesdto.Message, selfID, counterpart string) ThreadView {
	v := ThreadView{Header: counterpart}
	if len(msgs) == 0 {
		v.Placeholder = NoMessages
		return v
	}
	v.Bubbles = make([]Bubble, 0, len(msgs))
	for _, m := range msgs {
		v.Bubbles = append(v.Bubbles, Bubble{
			Sender:   m.SenderName,
			Content:  m.Content,
			Time:     DateTime(m.Timestamp),
			Outgoing: selfID != "" && m.SenderID == selfID,
		})
	}
	v.ScrollToLatest = true
	return v
}

// Stat is a labelled figure.
type Stat struct {
	Label string
	Value string
}

// Stats renders the admin figures; an unloaded view shows NotLoaded rather
// than numbers.
func Stats(view admindto.StatsView) []Stat {
	value := func(s string) string {
		if !view.Loaded {
			return NotLoaded
		}
		return orNA(s)
	}
	return []Stat{
		{Label: "Total Users", Value: value(view.Stats.TotalUsers)},
		{Label: "Total Children", Value: value(view.Stats.TotalChildren)},
		{Label: "Total Reports", Value: value(view.Stats.TotalReports)},
		{Label: "Active Observers", Value: value(view.Stats.ActiveObservers)},
	}
}
