package video

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"alcyxob/exercise-discovery/internal/domain"
)

var ErrMissingAPIKey = errors.New("youtube api key is required")

// apiError exposes the HTTP status of a googleapi.Error to retry classification.
type apiError struct {
	code int
	err  error
}

func (e *apiError) Error() string       { return e.err.Error() }
func (e *apiError) Unwrap() error       { return e.err }
func (e *apiError) HTTPStatusCode() int { return e.code }

type youTubeSearcher struct {
	svc *youtube.Service
}

// NewYouTubeSearcher builds a Searcher backed by the YouTube Data API v3.
func NewYouTubeSearcher(ctx context.Context, apiKey string, opts ...option.ClientOption) (Searcher, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating youtube service: %w", err)
	}
	return &youTubeSearcher{svc: svc}, nil
}

func (y *youTubeSearcher) Search(ctx context.Context, query string, maxResults int64) ([]domain.Video, error) {
	resp, err := y.svc.Search.List([]string{"snippet"}).
		Q(query + " exercise technique").
		Type("video").
		SafeSearch("strict").
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) {
			return nil, &apiError{code: gerr.Code, err: err}
		}
		return nil, err
	}
	return videosFromSearch(resp), nil
}

func videosFromSearch(resp *youtube.SearchListResponse) []domain.Video {
	if resp == nil {
		return nil
	}
	out := make([]domain.Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item == nil || item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		v := domain.Video{
			VideoID: item.Id.VideoId,
			URL:     domain.YouTubeWatchURL(item.Id.VideoId),
		}
		if sn := item.Snippet; sn != nil {
			v.Title = sn.Title
			v.Channel = sn.ChannelTitle
			if t, err := time.Parse(time.RFC3339, sn.PublishedAt); err == nil {
				v.PublishedAt = t
			}
			if sn.Thumbnails != nil && sn.Thumbnails.Medium != nil {
				v.Thumbnail = sn.Thumbnails.Medium.Url
			}
		}
		out = append(out, v)
	}
	return out
}
