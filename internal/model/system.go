package model

// VersionInfo contains version and feature information for the application.
type VersionInfo struct {
	AppVersion   string          `json:"app_version"`
	Features     map[string]bool `json:"features"`
	CacheBackend string          `json:"cache_backend"`
}

// HealthStatus reports the state of the dependencies the service relies on.
type HealthStatus struct {
	Holdings     int    `json:"holdings"`
	HoldingsPath string `json:"holdings_path,omitempty"`
	Cache        string `json:"cache"`
}
