package models

// Line is one recognized line. Confidence stays on the engine's 0-1 scale,
// unlike OCRResponse.Confidence which is a 0-100 percentage.
type Line struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// OCRResponse is the success body of POST /ocr
type OCRResponse struct {
	Success    bool    `json:"success"`
	Filename   string  `json:"filename"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"` // 0-100, two decimals
	LineCount  int     `json:"line_count"`
	Lines      []Line  `json:"lines"`
}

// FailureResponse is the failure body of POST /ocr
type FailureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
