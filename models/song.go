package models

// Song represents a row of the songs table.
type Song struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ListenCount int64  `json:"count"`
}
