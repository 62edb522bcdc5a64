package dtos

// DefaultIngestPages is how many pages a fetch requests when the caller does not say.
const DefaultIngestPages = 25

// IngestRequestDTO triggers a fetch-and-insert run for one classification.
type IngestRequestDTO struct {
	Classification string `json:"classification" binding:"required"`
	Pages          int    `json:"pages" binding:"omitempty,min=1,max=500"`
}

// ReportQueryDTO carries the optional parameters of parameterized reports.
type ReportQueryDTO struct {
	ArtifactID string `form:"artifactId"`
	Department string `form:"department"`
}

// TableQueryDTO selects the classification shown by the table browser.
type TableQueryDTO struct {
	Classification string `form:"classification" binding:"required"`
}
