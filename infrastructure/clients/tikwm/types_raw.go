package tikwm

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Feed search API response. Field names match the provider exactly and must
// not leak past this package.

type searchResponse struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

type searchData struct {
	Cursor  json.RawMessage `json:"cursor"`
	HasMore bool            `json:"has_more"`
	Videos  []rawVideo      `json:"videos"`
}

type rawVideo struct {
	VideoID      string        `json:"video_id"`
	Title        string        `json:"title"`
	Region       string        `json:"region"`
	Cover        string        `json:"cover"`
	Play         string        `json:"play"`
	Duration     flexInt       `json:"duration"`
	PlayCount    flexInt       `json:"play_count"`
	DiggCount    flexInt       `json:"digg_count"`
	CommentCount flexInt       `json:"comment_count"`
	ShareCount   flexInt       `json:"share_count"`
	CreateTime   flexInt       `json:"create_time"`
	Author       *rawAuthor    `json:"author"`
	MusicInfo    *rawMusicInfo `json:"music_info"`
}

type rawAuthor struct {
	ID       string `json:"id"`
	UniqueID string `json:"unique_id"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
}

type rawMusicInfo struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

// flexInt accepts a JSON number, a numeric string or null. The provider is not
// consistent about counter types, so anything unparseable decodes to 0.
type flexInt int64

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*f = 0
			return nil
		}
		data = []byte(s)
	}
	if n, err := strconv.ParseInt(string(data), 10, 64); err == nil {
		*f = flexInt(n)
		return nil
	}
	if v, err := strconv.ParseFloat(string(data), 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		*f = flexInt(int64(v))
		return nil
	}
	*f = 0
	return nil
}
