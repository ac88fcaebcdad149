package dto

// Preview is a list entry of a stored observation report.
type Preview struct {
	ID           string
	Date         string
	ObserverName string
	Observations string
}

// Document is a report ready for display, export or email.
type Document struct {
	ID           string
	Date         string
	StudentName  string
	ObserverName string
	Text         string
	Transcript   string
}

type ExportInput struct {
	Document Document
	Dir      string
}

type EmailInput struct {
	To      string
	Subject string
	Content string
}
