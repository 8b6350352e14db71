package model

// Image is an uploaded file together with its description. The description
// doubles as the image's tag list: tags are separated by commas or dashes,
// e.g. "cat,outdoor" or "cat-outdoor".
type Image struct {
	ID          int64  `json:"id"`
	FilePath    string `json:"file_path"`
	Description string `json:"description"`
}

// FillerWord is a word removed from search queries before matching.
type FillerWord struct {
	ID   int64  `json:"id"`
	Word string `json:"word"`
}
