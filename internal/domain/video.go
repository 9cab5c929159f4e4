package domain

import "time"

// Video is a demonstration video found for an exercise.
type Video struct {
	VideoID     string    `json:"videoId"`
	Title       string    `json:"title"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	Channel     string    `json:"channel,omitempty"`
	PublishedAt time.Time `json:"publishedAt,omitempty"`
	URL         string    `json:"url"`
	Fallback    bool      `json:"fallback,omitempty"`
}

// YouTubeWatchURL returns the canonical watch URL for a video ID.
func YouTubeWatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
