package request

// DetectJobs carries the raw spreadsheet text for the review step.
type DetectJobs struct {
	Content string `json:"content" validate:"required"`
}

// UploadCsv commits a reviewed detection to the job store.
type UploadCsv struct {
	Filename string `json:"filename" validate:"required"`
	Content  string `json:"content" validate:"required"`
}
