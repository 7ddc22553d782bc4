package diagnosis

// Question kinds. Multi-choice questions are answered through Toggle,
// everything else through Set.
const (
	KindChoice      = "choice"
	KindMultiChoice = "multi-choice"
	KindNumber      = "number"
)

// Question ids, in the order the detailed course walks them.
const (
	QuestionCarrier      = "carrier"
	QuestionWifi         = "wifi"
	QuestionPrice        = "price"
	QuestionDataUsage    = "dataUsage"
	QuestionMembers      = "members"
	QuestionSatisfaction = "satisfaction"
	QuestionCallTime     = "callTime"
	QuestionLocation     = "location"
	QuestionApps         = "apps"
	QuestionContract     = "contract"
	QuestionPayment      = "payment"

	// Auxiliary multi-choice shown alongside the satisfaction screen.
	QuestionNeeds = "needs"
)

// ChoiceNone is the "nothing applies" sentinel for multi-choice questions.
// Selecting it clears every other selection and vice versa.
const ChoiceNone = "特になし"

type Question struct {
	ID          string   `json:"id"`
	Prompt      string   `json:"prompt"`
	Kind        string   `json:"kind"`
	Choices     []string `json:"choices,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	MinValue    int      `json:"min_value,omitempty"`
	MaxValue    int      `json:"max_value,omitempty"`
}

var questions = map[string]Question{
	QuestionCarrier: {
		ID:      QuestionCarrier,
		Prompt:  "現在のキャリアを教えてください",
		Kind:    KindChoice,
		Choices: []string{"ドコモ", "au", "ソフトバンク", "ワイモバイル"},
	},
	QuestionWifi: {
		ID:      QuestionWifi,
		Prompt:  "ネット回線をお持ちですか？",
		Kind:    KindChoice,
		Choices: []string{"光回線", "ケーブルテレビ", "その他", "なし"},
	},
	QuestionPrice: {
		ID:          QuestionPrice,
		Prompt:      "現在の料金プランを教えてください",
		Kind:        KindNumber,
		Placeholder: "月額料金（円）",
		MinValue:    1,
		MaxValue:    100000,
	},
	QuestionDataUsage: {
		ID:      QuestionDataUsage,
		Prompt:  "月間の使用データ量を教えてください",
		Kind:    KindChoice,
		Choices: []string{"0～1GB", "1～4GB", "4～10GB", "10～30GB", "30～50GB", "50GB以上"},
	},
	QuestionMembers: {
		ID:          QuestionMembers,
		Prompt:      "家族の人数を教えてください",
		Kind:        KindNumber,
		Placeholder: "家族人数（1～10人）",
		MinValue:    1,
		MaxValue:    10,
	},
	QuestionSatisfaction: {
		ID:      QuestionSatisfaction,
		Prompt:  "現在の料金プランに満足していますか？",
		Kind:    KindChoice,
		Choices: []string{"とても満足", "満足", "普通", "不満", "とても不満"},
	},
	QuestionCallTime: {
		ID:      QuestionCallTime,
		Prompt:  "1日の平均通話時間を教えてください",
		Kind:    KindChoice,
		Choices: []string{"ほとんどなし", "5分未満", "5～15分", "15～30分", "30分以上"},
	},
	QuestionLocation: {
		ID:      QuestionLocation,
		Prompt:  "主な利用場所を教えてください",
		Kind:    KindChoice,
		Choices: []string{"自宅", "会社・学校", "外出先", "その他"},
	},
	QuestionApps: {
		ID:      QuestionApps,
		Prompt:  "よく使うアプリを教えてください",
		Kind:    KindMultiChoice,
		Choices: []string{"LINE", "Twitter", "Instagram", "Facebook", "YouTube", "TikTok", "オンラインゲーム", "地図アプリ", ChoiceNone},
	},
	QuestionContract: {
		ID:      QuestionContract,
		Prompt:  "契約期間を教えてください",
		Kind:    KindChoice,
		Choices: []string{"1年未満", "1～2年", "2～3年", "3年以上"},
	},
	QuestionPayment: {
		ID:      QuestionPayment,
		Prompt:  "端末の支払い方法を教えてください",
		Kind:    KindChoice,
		Choices: []string{"一括払い", "分割払い", "端末代なし"},
	},
	QuestionNeeds: {
		ID:      QuestionNeeds,
		Prompt:  "その他のご要望を教えてください",
		Kind:    KindMultiChoice,
		Choices: []string{"料金を安くしたい", "データ容量を増やしたい", "通話オプションが欲しい", "サポートを重視したい", ChoiceNone},
	},
}

var detailedOrder = []string{
	QuestionCarrier,
	QuestionWifi,
	QuestionPrice,
	QuestionDataUsage,
	QuestionMembers,
	QuestionSatisfaction,
	QuestionCallTime,
	QuestionLocation,
	QuestionApps,
	QuestionContract,
	QuestionPayment,
}

// GetQuestion looks up a question by id. Unknown ids are a wiring bug, not a
// runtime condition; the boolean is there for the edge layer to reject bad input.
func GetQuestion(id string) (Question, bool) {
	q, ok := questions[id]
	return q, ok
}

// OrderedIDs returns the question sequence for a mode. The quick course is a
// strict prefix of the detailed one.
func OrderedIDs(mode Mode) []string {
	ids := make([]string, StepCount(mode))
	copy(ids, detailedOrder)
	return ids
}

// QuestionAt returns the question shown at a 1-based step.
func QuestionAt(mode Mode, step int) (Question, bool) {
	if step < 1 || step > StepCount(mode) {
		return Question{}, false
	}
	return questions[detailedOrder[step-1]], true
}
