package tikwm

import (
	"tiktok-planner/domain/dto"
	"tiktok-planner/domain/model"
)

// normalizePage flattens a decoded data payload. Absent videos become an
// empty slice, absent has_more is false and an absent cursor is null.
func normalizePage(data searchData) *dto.SearchPage {
	videos := make([]model.VideoRecord, 0, len(data.Videos))
	for _, raw := range data.Videos {
		videos = append(videos, normalizeVideo(raw))
	}
	return &dto.SearchPage{
		Videos:     videos,
		HasMore:    data.HasMore,
		NextCursor: dto.NewCursor(data.Cursor),
	}
}

// normalizeVideo maps a provider video to a VideoRecord. Missing author and
// music_info objects yield empty strings, counters are clamped at zero and
// create_time (epoch seconds) is converted to milliseconds.
func normalizeVideo(raw rawVideo) model.VideoRecord {
	v := model.VideoRecord{
		ID:              raw.VideoID,
		Title:           raw.Title,
		Region:          raw.Region,
		CoverURL:        raw.Cover,
		PlayURL:         raw.Play,
		DurationSeconds: nonNegative(raw.Duration),
		Stats: model.VideoStats{
			Plays:    nonNegative(raw.PlayCount),
			Likes:    nonNegative(raw.DiggCount),
			Comments: nonNegative(raw.CommentCount),
			Shares:   nonNegative(raw.ShareCount),
		},
		CreatedAtMillis: int64(raw.CreateTime) * 1000,
	}
	if raw.Author != nil {
		v.Author = model.VideoAuthor{
			ID:          raw.Author.ID,
			Handle:      raw.Author.UniqueID,
			DisplayName: raw.Author.Nickname,
			AvatarURL:   raw.Author.Avatar,
		}
	}
	if raw.MusicInfo != nil {
		v.Music = model.VideoMusic{
			Title:  raw.MusicInfo.Title,
			Artist: raw.MusicInfo.Author,
		}
	}
	return v
}

func nonNegative(n flexInt) int64 {
	if n < 0 {
		return 0
	}
	return int64(n)
}
