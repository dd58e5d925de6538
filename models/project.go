package models

// Project is a named collection of stored files. Files holds stored
// filenames in upload order.
type Project struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Files       []string `json:"files"`
}

// ModelEntry maps a generated model identifier to its stored filename.
type ModelEntry struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
}
