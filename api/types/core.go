package types

// Genre is a genre as listed by the API
type Genre struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	PodcastCount int    `json:"podcastCount"`
}

// BuildInfo identifies the running binary
type BuildInfo struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit,omitempty"`
	BuildTime string `json:"buildTime,omitempty"`
}
