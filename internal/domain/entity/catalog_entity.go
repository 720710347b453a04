package entity

// Composer as reported by the external catalog.
type Composer struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	CompleteName string `json:"complete_name"`
	Birth        string `json:"birth,omitempty"`
	Death        string `json:"death,omitempty"`
	Epoch        string `json:"epoch"`
	Portrait     string `json:"portrait,omitempty"`
}

// Work as reported by the external catalog.
type Work struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle,omitempty"`
	Genre       string `json:"genre"`
	Popular     bool   `json:"popular"`
	Recommended bool   `json:"recommended"`
}

// WorkDetail pairs a work with the composer that wrote it.
type WorkDetail struct {
	Composer Composer `json:"composer"`
	Work     Work     `json:"work"`
}
