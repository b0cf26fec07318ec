package usecase

import (
	"strings"

	"tiktok-planner/domain/model"
)

const (
	DefaultCommentDetails = "قهوتك اليوم؟ شاركهم تجربتك وادعُهم لزيارة حسابك لمزيد من الوصفات."
	DefaultRepostDetails  = "أعد نشر المقطع مع تعليق صوتي أو ترجمة عربية تشد عشاق القهوة."
	DefaultFollowDetails  = "تابع الحساب إذا تكرر محتواه المميز حول القهوة."

	captionPrefix    = "☕️ "
	captionSignature = "تابعوني لمزيد من أفكار ومراجعات القهوة يوميًا."
)

// defaultInteractions returns a fresh plan: like, comment and repost on,
// follow off.
func defaultInteractions() []model.InteractionPlanEntry {
	return []model.InteractionPlanEntry{
		{Action: model.ActionLike, Enabled: true},
		{Action: model.ActionComment, Enabled: true, Details: DefaultCommentDetails},
		{Action: model.ActionRepost, Enabled: true, Details: DefaultRepostDetails},
		{Action: model.ActionFollow, Enabled: false, Details: DefaultFollowDetails},
	}
}

// DefaultCaption seeds a caption from the video title.
func DefaultCaption(title string) string {
	return captionPrefix + strings.TrimSpace(title) + "\n\n" + captionSignature
}

// SuggestedCaption credits the original author.
func SuggestedCaption(author model.VideoAuthor) string {
	return strings.Join([]string{
		"☕️ لمحبي القهوة المميزة!",
		"يلهمني هذا المقطع من @" + author.Mention() + " لإعداد وصفة جديدة.",
		"ما رأيكم أن نجربها مع تعديل بسيط ونشارك النتيجة؟",
		"تابعني لجولات قادمة في عالم المقاهي والمشروبات.",
	}, " ")
}

func newQueueItem(video model.VideoRecord) model.QueueItem {
	return model.QueueItem{
		VideoRecord:  video,
		Caption:      DefaultCaption(video.Title),
		Interactions: defaultInteractions(),
	}
}

// repairInteractions makes sure a loaded item carries one entry per action.
// Missing entries get their default.
func repairInteractions(item *model.QueueItem) {
	if item.Interactions == nil {
		item.Interactions = []model.InteractionPlanEntry{}
	}
	for _, def := range defaultInteractions() {
		if item.Interaction(def.Action) == nil {
			item.Interactions = append(item.Interactions, def)
		}
	}
}
