package entity

// Note is the persisted note. Id is assigned by the store and never changes.
type Note struct {
	Id      int
	Title   string
	Content string
}
