package diagnosis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shindan/pkg/utils"
)

func TestAnswerSetNumericBounds(t *testing.T) {
	tests := []struct {
		name       string
		questionID string
		raw        interface{}
		wantErr    error
	}{
		{"price lower edge", QuestionPrice, 1, nil},
		{"price upper edge", QuestionPrice, 100000, nil},
		{"price typical", QuestionPrice, 8000, nil},
		{"price zero", QuestionPrice, 0, utils.ErrPriceOutOfRange},
		{"price negative", QuestionPrice, -500, utils.ErrPriceOutOfRange},
		{"price too high", QuestionPrice, 100001, utils.ErrPriceOutOfRange},
		{"price as string", QuestionPrice, "4980", nil},
		{"price as json number", QuestionPrice, float64(4980), nil},
		{"price fractional", QuestionPrice, 49.8, utils.ErrInvalidNumber},
		{"price garbage", QuestionPrice, "abc", utils.ErrInvalidNumber},
		{"members lower edge", QuestionMembers, 1, nil},
		{"members upper edge", QuestionMembers, 10, nil},
		{"members zero", QuestionMembers, 0, utils.ErrMembersOutOfRange},
		{"members eleven", QuestionMembers, 11, utils.ErrMembersOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answers := NewAnswerSet()
			before := answers.Snapshot()
			err := answers.Set(tt.questionID, tt.raw)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, before, answers.Snapshot(), "failed set must not mutate the answer set")
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestAnswerSetChoiceValidation(t *testing.T) {
	answers := NewAnswerSet()

	require.NoError(t, answers.Set(QuestionCarrier, "ドコモ"))
	assert.Equal(t, "ドコモ", answers.Carrier)

	err := answers.Set(QuestionCarrier, "楽天モバイル")
	require.ErrorIs(t, err, utils.ErrInvalidChoice)
	assert.Equal(t, "ドコモ", answers.Carrier, "rejected choice must not overwrite")

	err = answers.Set("favoriteColor", "blue")
	require.ErrorIs(t, err, utils.ErrUnknownQuestion)

	// Multi-choice questions are not settable directly.
	err = answers.Set(QuestionApps, "LINE")
	require.ErrorIs(t, err, utils.ErrInvalidChoice)
}

// The sentinel invariant: 特になし is present iff nothing else is.
func TestToggleNoneSentinelExclusivity(t *testing.T) {
	answers := NewAnswerSet()

	selected, err := answers.Toggle(QuestionApps, "YouTube")
	require.NoError(t, err)
	assert.Equal(t, []string{"YouTube"}, selected)

	selected, err = answers.Toggle(QuestionApps, "LINE")
	require.NoError(t, err)
	assert.Equal(t, []string{"YouTube", "LINE"}, selected, "insertion order is preserved")

	// Picking the sentinel clears everything else.
	selected, err = answers.Toggle(QuestionApps, ChoiceNone)
	require.NoError(t, err)
	assert.Equal(t, []string{ChoiceNone}, selected)

	// Picking anything else removes the sentinel.
	selected, err = answers.Toggle(QuestionApps, "TikTok")
	require.NoError(t, err)
	assert.Equal(t, []string{"TikTok"}, selected)

	// Toggling an already-selected choice removes it.
	selected, err = answers.Toggle(QuestionApps, "TikTok")
	require.NoError(t, err)
	assert.Empty(t, selected)

	// Sentinel toggles off again too.
	selected, err = answers.Toggle(QuestionApps, ChoiceNone)
	require.NoError(t, err)
	assert.Equal(t, []string{ChoiceNone}, selected)
	selected, err = answers.Toggle(QuestionApps, ChoiceNone)
	require.NoError(t, err)
	assert.Empty(t, selected)
}

func TestToggleSentinelInvariantUnderRandomishSequences(t *testing.T) {
	sequences := [][]string{
		{"LINE", ChoiceNone, "YouTube", "YouTube", ChoiceNone},
		{ChoiceNone, ChoiceNone, "LINE", "Twitter", ChoiceNone, "TikTok"},
		{"YouTube", "TikTok", "LINE", ChoiceNone},
		{"地図アプリ", "Facebook", "地図アプリ", "Facebook"},
	}

	for _, seq := range sequences {
		answers := NewAnswerSet()
		for _, choice := range seq {
			_, err := answers.Toggle(QuestionApps, choice)
			require.NoError(t, err)

			hasNone := false
			others := 0
			for _, v := range answers.Apps {
				if v == ChoiceNone {
					hasNone = true
				} else {
					others++
				}
			}
			if hasNone {
				assert.Zero(t, others, "sentinel must be alone: %v", answers.Apps)
			}
		}
	}
}

func TestToggleRejectsBadInput(t *testing.T) {
	answers := NewAnswerSet()

	_, err := answers.Toggle(QuestionApps, "Netflix")
	require.ErrorIs(t, err, utils.ErrInvalidChoice)

	_, err = answers.Toggle(QuestionCarrier, "ドコモ")
	require.ErrorIs(t, err, utils.ErrInvalidChoice, "single-choice questions cannot be toggled")

	_, err = answers.Toggle("nope", "x")
	require.ErrorIs(t, err, utils.ErrUnknownQuestion)
}

func TestSnapshotIsIndependent(t *testing.T) {
	answers := NewAnswerSet()
	require.NoError(t, answers.Set(QuestionCarrier, "au"))
	_, err := answers.Toggle(QuestionApps, "LINE")
	require.NoError(t, err)

	snap := answers.Snapshot()
	_, err = answers.Toggle(QuestionApps, "YouTube")
	require.NoError(t, err)

	assert.Equal(t, []string{"LINE"}, snap.Apps, "snapshot must not see later mutations")
	assert.Equal(t, "au", snap.Carrier)
}

func TestForModeRestrictsToModeQuestions(t *testing.T) {
	full := AnswerSet{
		Carrier:      "ドコモ",
		Wifi:         "光回線",
		Price:        7000,
		DataUsage:    "30～50GB",
		Members:      2,
		Satisfaction: "不満",
		CallTime:     "30分以上",
		Location:     "自宅",
		Apps:         []string{"YouTube"},
		Contract:     "3年以上",
		Payment:      "一括払い",
		Needs:        []string{"料金を安くしたい"},
	}

	quick := full.ForMode(ModeQuick)
	assert.Equal(t, "ドコモ", quick.Carrier)
	assert.Equal(t, 7000, quick.Price)
	assert.Equal(t, "不満", quick.Satisfaction)
	assert.Empty(t, quick.CallTime)
	assert.Empty(t, quick.Location)
	assert.Empty(t, quick.Apps)
	assert.Empty(t, quick.Contract)
	assert.Empty(t, quick.Payment)
	assert.Equal(t, []string{"料金を安くしたい"}, quick.Needs, "needs rides along in both modes")

	detailed := full.ForMode(ModeDetailed)
	assert.Equal(t, full.Snapshot(), detailed)
}
