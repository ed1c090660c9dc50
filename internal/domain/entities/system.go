package entities

// PublicSummary is the unauthenticated kiosk summary.
type PublicSummary struct {
	Date            string      `json:"date"`
	Today           LevelCounts `json:"today"`
	TodayTotal      int64       `json:"todayTotal"`
	Total           int64       `json:"total"`
	LastID          *int64      `json:"lastId"`
	MirrorAvailable bool        `json:"mirrorAvailable"`
}

// MirrorStatus describes the secondary store.
type MirrorStatus struct {
	Backend   string `json:"backend"`
	Available bool   `json:"available"`
}

// DatabaseStatus describes the record store.
type DatabaseStatus struct {
	OK        bool    `json:"ok"`
	Driver    string  `json:"driver"`
	Path      string  `json:"path,omitempty"`
	SizeBytes *int64  `json:"sizeBytes,omitempty"`
	Error     *string `json:"error"`
}

// HealthReport is returned by the public health probe.
type HealthReport struct {
	OK        bool           `json:"ok"`
	Time      string         `json:"time"`
	GoVersion string         `json:"goVersion"`
	Database  DatabaseStatus `json:"database"`
	Mirror    MirrorStatus   `json:"mirror"`
}

// SystemInfo is the admin dashboard system panel.
type SystemInfo struct {
	Time      string         `json:"time"`
	GoVersion string         `json:"goVersion"`
	Total     int64          `json:"total"`
	LastID    *int64         `json:"lastId"`
	Database  DatabaseStatus `json:"db"`
	Mirror    MirrorStatus   `json:"mirror"`
	Admin     AdminInfo      `json:"admin"`
}

// AdminInfo identifies the caller on the system panel.
type AdminInfo struct {
	Email string `json:"email"`
}
