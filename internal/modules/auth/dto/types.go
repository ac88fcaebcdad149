package dto

type LoginInput struct {
	Email    string
	Password string
}

type RegisterInput struct {
	Name     string
	Email    string
	Role     string
	Password string
	Confirm  string
	ChildID  string
}
