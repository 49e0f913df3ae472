package model

// Task is the domain model for one to-do entry.
// ID is assigned by the store and never changes afterwards.
type Task struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}
