package tikwm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tiktok-planner/domain/dto"
	"tiktok-planner/domain/model"
)

func searchQuery(keyword, count, cursor string) dto.UpstreamSearchQuery {
	return dto.UpstreamSearchQuery{Keyword: keyword, Count: count, Cursor: cursor}
}

func decodeVideo(t *testing.T, body string) model.VideoRecord {
	t.Helper()
	var raw rawVideo
	require.NoError(t, json.Unmarshal([]byte(body), &raw))
	return normalizeVideo(raw)
}

func TestNormalizeVideo_MissingAuthorAndMusic(t *testing.T) {
	for name, body := range map[string]string{
		"absent": `{"video_id":"1","title":"t","create_time":10}`,
		"null":   `{"video_id":"1","title":"t","create_time":10,"author":null,"music_info":null}`,
		"empty":  `{"video_id":"1","title":"t","create_time":10,"author":{},"music_info":{}}`,
	} {
		t.Run(name, func(t *testing.T) {
			v := decodeVideo(t, body)
			assert.Equal(t, model.VideoAuthor{}, v.Author)
			assert.Equal(t, model.VideoMusic{}, v.Music)

			out, err := json.Marshal(v)
			require.NoError(t, err)
			assert.JSONEq(t, `{
				"id":"1","title":"t","region":"","coverUrl":"","playUrl":"","durationSeconds":0,
				"stats":{"plays":0,"likes":0,"comments":0,"shares":0},
				"author":{"id":"","handle":"","displayName":"","avatarUrl":""},
				"music":{"title":"","artist":""},
				"createdAtMillis":10000
			}`, string(out))
		})
	}
}

func TestNormalizeVideo_CreatedAtMillis(t *testing.T) {
	for _, seconds := range []int64{0, 1, 1706000000, 4102444800} {
		body, _ := json.Marshal(map[string]any{"video_id": "x", "create_time": seconds})
		v := decodeVideo(t, string(body))
		assert.Equal(t, seconds*1000, v.CreatedAtMillis)
	}
}

func TestNormalizeVideo_CountersDefaultAndClamp(t *testing.T) {
	v := decodeVideo(t, `{
		"video_id":"1",
		"duration":-3,
		"play_count":"1500",
		"digg_count":null,
		"comment_count":-7,
		"share_count":2.0
	}`)
	assert.Equal(t, int64(0), v.DurationSeconds)
	assert.Equal(t, int64(1500), v.Stats.Plays)
	assert.Equal(t, int64(0), v.Stats.Likes)
	assert.Equal(t, int64(0), v.Stats.Comments)
	assert.Equal(t, int64(2), v.Stats.Shares)
}

func TestNormalizePage_Defaults(t *testing.T) {
	page := normalizePage(searchData{})
	assert.NotNil(t, page.Videos)
	assert.Empty(t, page.Videos)
	assert.False(t, page.HasMore)
	assert.True(t, page.NextCursor.IsNull())
}

func TestNormalizePage_PreservesOrder(t *testing.T) {
	var data searchData
	require.NoError(t, json.Unmarshal([]byte(`{"cursor":12,"has_more":true,"videos":[{"video_id":"b"},{"video_id":"a"},{"video_id":"c"}]}`), &data))
	page := normalizePage(data)

	ids := make([]string, 0, len(page.Videos))
	for _, v := range page.Videos {
		ids = append(ids, v.ID)
	}
	assert.Equal(t, []string{"b", "a", "c"}, ids)
	assert.Equal(t, "12", page.NextCursor.QueryValue())
}
