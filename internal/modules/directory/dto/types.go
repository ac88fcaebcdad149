package dto

type Child struct {
	ID           string
	Name         string
	Age          string
	Grade        string
	ObserverName string
}

type Parent struct {
	ID        string
	Name      string
	ChildName string
}

type Observer struct {
	ID   string
	Name string
}
