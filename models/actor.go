package models

// Actor is the verified identity performing an operation, as resolved by the auth layer.
type Actor struct {
	ID   uint
	Role string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func (a Actor) IsWorker() bool {
	return a.Role == RoleWorker
}
