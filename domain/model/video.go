package model

// VideoRecord is a search result normalized away from the provider's raw shape.
// Every field is always present; absent upstream values become zero values.
type VideoRecord struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Region          string      `json:"region"`
	CoverURL        string      `json:"coverUrl"`
	PlayURL         string      `json:"playUrl"`
	DurationSeconds int64       `json:"durationSeconds"`
	Stats           VideoStats  `json:"stats"`
	Author          VideoAuthor `json:"author"`
	Music           VideoMusic  `json:"music"`
	CreatedAtMillis int64       `json:"createdAtMillis"`
}

// VideoStats holds engagement counters, all non-negative
type VideoStats struct {
	Plays    int64 `json:"plays"`
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
	Shares   int64 `json:"shares"`
}

// VideoAuthor identifies the account that published the video
type VideoAuthor struct {
	ID          string `json:"id"`
	Handle      string `json:"handle"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl"`
}

// VideoMusic describes the soundtrack
type VideoMusic struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

// Mention returns the handle used when referring to the author, falling back
// to the display name for accounts without a handle.
func (a VideoAuthor) Mention() string {
	if a.Handle != "" {
		return a.Handle
	}
	return a.DisplayName
}
