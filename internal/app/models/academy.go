package models

// AcademyInfo is a key/value academy setting. Keys follow the INFO_<NAME>
// convention; values are cleartext and publicly readable.
type AcademyInfo struct {
	ID    int64  `json:"id" db:"id"`
	Key   string `json:"key" db:"key"`
	Value string `json:"value" db:"value"`
}
