package dto

// AcademyInfoEntry is one key/value academy setting
type AcademyInfoEntry struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value"`
}

// UpdateAcademyInfoRequest upserts a batch of academy settings
type UpdateAcademyInfoRequest struct {
	Entries []AcademyInfoEntry `json:"entries" binding:"required,min=1,dive"`
}
