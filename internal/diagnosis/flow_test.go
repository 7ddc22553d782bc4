package diagnosis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shindan/pkg/utils"
)

func answerQuickThroughMembers(t *testing.T, s *Session) {
	t.Helper()
	require.NoError(t, s.Submit(QuestionCarrier, "ドコモ"))
	require.NoError(t, s.Submit(QuestionWifi, "光回線"))
	require.NoError(t, s.Submit(QuestionPrice, 8000))
	require.NoError(t, s.Submit(QuestionDataUsage, "10～30GB"))
	require.NoError(t, s.Submit(QuestionMembers, 3))
}

func TestNewSession(t *testing.T) {
	s, err := NewSession("s1", ModeQuick)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Step)
	assert.Equal(t, StatusInProgress, s.Status)
	assert.Equal(t, QuestionCarrier, s.CurrentQuestion().ID)

	_, err = NewSession("s2", Mode("instant"))
	require.ErrorIs(t, err, utils.ErrInvalidMode)
}

func TestQuickFlowTerminatesAtStepSix(t *testing.T) {
	s, err := NewSession("s1", ModeQuick)
	require.NoError(t, err)

	answerQuickThroughMembers(t, s)
	assert.Equal(t, 6, s.Step)
	assert.Equal(t, StatusInProgress, s.Status)

	// The satisfaction answer is terminal in quick mode: no auto-advance,
	// the result action is exposed instead.
	require.NoError(t, s.Submit(QuestionSatisfaction, "不満"))
	assert.Equal(t, 6, s.Step)
	assert.Equal(t, StatusAwaitingConfirmation, s.Status)

	result, err := s.Finalize()
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, s.Status)
	assert.Equal(t, 5822, result.MonthlySavings)
	require.NotNil(t, s.Result)
}

func TestDetailedFlowAdvancesPastStepSix(t *testing.T) {
	s, err := NewSession("s1", ModeDetailed)
	require.NoError(t, err)

	answerQuickThroughMembers(t, s)
	require.NoError(t, s.Submit(QuestionSatisfaction, "不満"))
	assert.Equal(t, 7, s.Step, "detailed mode continues to the call-time question")
	assert.Equal(t, StatusInProgress, s.Status)
}

func TestDetailedFinalStepRequiresPayment(t *testing.T) {
	s, err := NewSession("s1", ModeDetailed)
	require.NoError(t, err)

	answerQuickThroughMembers(t, s)
	require.NoError(t, s.Submit(QuestionSatisfaction, "不満"))
	require.NoError(t, s.Submit(QuestionCallTime, "30分以上"))
	require.NoError(t, s.Submit(QuestionLocation, "自宅"))

	// Step 9 is multi-choice: toggles record but never advance.
	assert.Equal(t, 9, s.Step)
	_, err = s.ToggleChoice(QuestionApps, "YouTube")
	require.NoError(t, err)
	assert.Equal(t, 9, s.Step)
	require.NoError(t, s.Continue())
	assert.Equal(t, 10, s.Step)

	// Entering step 11 exposes the final confirmation.
	require.NoError(t, s.Submit(QuestionContract, "3年以上"))
	assert.Equal(t, 11, s.Step)
	assert.Equal(t, StatusAwaitingConfirmation, s.Status)

	// Viewing the result without a payment answer is refused and must not
	// move the session.
	_, err = s.Finalize()
	require.ErrorIs(t, err, utils.ErrIncompleteAnswers)
	assert.Equal(t, StatusAwaitingConfirmation, s.Status)
	assert.Equal(t, 11, s.Step)
	assert.Nil(t, s.Result)

	// Answering the final question does not auto-complete either.
	require.NoError(t, s.Submit(QuestionPayment, "分割払い"))
	assert.Equal(t, 11, s.Step)
	assert.Equal(t, StatusAwaitingConfirmation, s.Status)

	result, err := s.Finalize()
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, s.Status)
	assert.Equal(t, []string{advisoryCallOption, advisoryLargePlan, advisoryLoyalty}, result.Advisories)
}

func TestSubmitRejectsWrongQuestion(t *testing.T) {
	s, err := NewSession("s1", ModeQuick)
	require.NoError(t, err)

	err = s.Submit(QuestionWifi, "光回線")
	require.ErrorIs(t, err, utils.ErrWrongQuestion)
	assert.Equal(t, 1, s.Step)
}

func TestSubmitValidationFailureKeepsState(t *testing.T) {
	s, err := NewSession("s1", ModeQuick)
	require.NoError(t, err)
	answerQuickThroughMembers(t, s)

	// Back to the price step, then feed it garbage.
	require.NoError(t, s.Back(3))
	err = s.Submit(QuestionPrice, 0)
	require.ErrorIs(t, err, utils.ErrPriceOutOfRange)
	assert.Equal(t, 3, s.Step)
	assert.Equal(t, 8000, s.Answers.Price, "previous answer survives a failed submit")
}

func TestBackReentersStepSixPolicy(t *testing.T) {
	s, err := NewSession("s1", ModeQuick)
	require.NoError(t, err)
	answerQuickThroughMembers(t, s)
	require.NoError(t, s.Submit(QuestionSatisfaction, "普通"))
	require.Equal(t, StatusAwaitingConfirmation, s.Status)

	require.NoError(t, s.Back(2))
	assert.Equal(t, 2, s.Step)
	assert.Equal(t, StatusInProgress, s.Status)

	// Re-answering from step 2 walks forward again; landing on step 6 with
	// the satisfaction answer already present re-exposes the result action.
	require.NoError(t, s.Submit(QuestionWifi, "なし"))
	require.NoError(t, s.Submit(QuestionPrice, 6000))
	require.NoError(t, s.Submit(QuestionDataUsage, "4～10GB"))
	require.NoError(t, s.Submit(QuestionMembers, 2))
	assert.Equal(t, 6, s.Step)
	assert.Equal(t, StatusAwaitingConfirmation, s.Status)
}

func TestBackBounds(t *testing.T) {
	s, err := NewSession("s1", ModeQuick)
	require.NoError(t, err)
	answerQuickThroughMembers(t, s)

	require.ErrorIs(t, s.Back(0), utils.ErrInvalidStep)
	require.ErrorIs(t, s.Back(9), utils.ErrInvalidStep, "cannot go forward via back")
	require.NoError(t, s.Back(s.Step))
}

func TestBackIntoDetailedFinalStep(t *testing.T) {
	s, err := NewSession("s1", ModeDetailed)
	require.NoError(t, err)
	answerQuickThroughMembers(t, s)
	require.NoError(t, s.Submit(QuestionSatisfaction, "普通"))
	require.NoError(t, s.Submit(QuestionCallTime, "ほとんどなし"))
	require.NoError(t, s.Submit(QuestionLocation, "自宅"))
	require.NoError(t, s.Continue())
	require.NoError(t, s.Submit(QuestionContract, "1年未満"))
	require.Equal(t, StatusAwaitingConfirmation, s.Status)

	require.NoError(t, s.Back(10))
	assert.Equal(t, StatusInProgress, s.Status)

	require.NoError(t, s.Submit(QuestionContract, "1～2年"))
	assert.Equal(t, 11, s.Step)
	assert.Equal(t, StatusAwaitingConfirmation, s.Status, "re-entering step 11 re-applies its policy")
}

func TestNeedsToggleAvailableThroughoutSession(t *testing.T) {
	s, err := NewSession("s1", ModeQuick)
	require.NoError(t, err)

	selected, err := s.ToggleChoice(QuestionNeeds, "料金を安くしたい")
	require.NoError(t, err)
	assert.Equal(t, []string{"料金を安くしたい"}, selected)

	// Other multi-choice questions are bound to their own step.
	_, err = s.ToggleChoice(QuestionApps, "LINE")
	require.ErrorIs(t, err, utils.ErrWrongQuestion)
}

func TestSubmitRejectedOnMultiChoiceStep(t *testing.T) {
	s, err := NewSession("s1", ModeDetailed)
	require.NoError(t, err)
	answerQuickThroughMembers(t, s)
	require.NoError(t, s.Submit(QuestionSatisfaction, "普通"))
	require.NoError(t, s.Submit(QuestionCallTime, "ほとんどなし"))
	require.NoError(t, s.Submit(QuestionLocation, "自宅"))
	require.Equal(t, 9, s.Step)

	err = s.Submit(QuestionApps, []string{"LINE"})
	require.ErrorIs(t, err, utils.ErrInvalidChoice)
	assert.Equal(t, 9, s.Step, "the apps screen takes toggles and continue, not submit")
	assert.Empty(t, s.Answers.Apps)
}

func TestContinueGuards(t *testing.T) {
	s, err := NewSession("s1", ModeQuick)
	require.NoError(t, err)

	require.ErrorIs(t, s.Continue(), utils.ErrInvalidTransition, "no continue past a single-choice screen")

	answerQuickThroughMembers(t, s)
	require.ErrorIs(t, s.Continue(), utils.ErrInvalidTransition, "the satisfaction screen advances through submit")

	require.NoError(t, s.Submit(QuestionSatisfaction, "満足"))
	require.ErrorIs(t, s.Continue(), utils.ErrInvalidTransition, "no continue out of final confirmation")
}

func TestCompletedSessionRefusesMutation(t *testing.T) {
	s, err := NewSession("s1", ModeQuick)
	require.NoError(t, err)
	answerQuickThroughMembers(t, s)
	require.NoError(t, s.Submit(QuestionSatisfaction, "満足"))
	_, err = s.Finalize()
	require.NoError(t, err)

	require.ErrorIs(t, s.Submit(QuestionSatisfaction, "不満"), utils.ErrInvalidTransition)
	require.ErrorIs(t, s.Back(1), utils.ErrInvalidTransition)
	_, err = s.ToggleChoice(QuestionNeeds, "料金を安くしたい")
	require.ErrorIs(t, err, utils.ErrInvalidTransition)
	_, err = s.Finalize()
	require.ErrorIs(t, err, utils.ErrInvalidTransition)
}

func TestOrderedIDs(t *testing.T) {
	quick := OrderedIDs(ModeQuick)
	detailed := OrderedIDs(ModeDetailed)
	require.Len(t, quick, 6)
	require.Len(t, detailed, 11)
	assert.Equal(t, detailed[:6], quick, "quick is a strict prefix of detailed")
	assert.Equal(t, QuestionSatisfaction, quick[5])
	assert.Equal(t, QuestionPayment, detailed[10])
}
