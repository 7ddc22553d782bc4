package diagnosis

import (
	"fmt"
	"strconv"
	"strings"

	"shindan/pkg/utils"
)

// AnswerSet accumulates one session's answers. Field names in the JSON form
// are kept compatible with the payloads the storage layer already holds, so
// snapshots round-trip across versions.
type AnswerSet struct {
	Carrier      string   `json:"carrier,omitempty"`
	Wifi         string   `json:"wifi,omitempty"`
	Price        int      `json:"price,omitempty"`
	DataUsage    string   `json:"dataUsage,omitempty"`
	Members      int      `json:"members,omitempty"`
	Satisfaction string   `json:"satisfaction,omitempty"`
	CallTime     string   `json:"callTime,omitempty"`
	Location     string   `json:"location,omitempty"`
	Apps         []string `json:"apps,omitempty"`
	Contract     string   `json:"contract,omitempty"`
	Payment      string   `json:"payment,omitempty"`
	Needs        []string `json:"needs,omitempty"`
}

func NewAnswerSet() *AnswerSet {
	return &AnswerSet{Apps: []string{}, Needs: []string{}}
}

// Set validates raw against the question's kind and bounds and stores it.
// On failure the set is left untouched. Multi-choice questions are not
// settable here; they go through Toggle.
func (a *AnswerSet) Set(questionID string, raw interface{}) error {
	q, ok := GetQuestion(questionID)
	if !ok {
		return utils.ErrUnknownQuestion
	}

	switch q.Kind {
	case KindChoice:
		value, ok := raw.(string)
		if !ok || !containsChoice(q.Choices, value) {
			return utils.ErrInvalidChoice
		}
		a.setChoice(questionID, value)
		return nil

	case KindNumber:
		n, err := coerceInt(raw)
		if err != nil {
			return utils.ErrInvalidNumber
		}
		if n < q.MinValue || n > q.MaxValue {
			if questionID == QuestionPrice {
				return utils.ErrPriceOutOfRange
			}
			return utils.ErrMembersOutOfRange
		}
		a.setNumber(questionID, n)
		return nil

	case KindMultiChoice:
		return utils.ErrInvalidChoice

	default:
		return fmt.Errorf("question %s: unhandled kind %q", questionID, q.Kind)
	}
}

// Toggle flips one choice of a multi-choice question and returns the updated
// selection. The 特になし sentinel is mutually exclusive with everything else:
// picking it clears the rest, picking anything else removes it. Toggling is
// idempotent in the sense that toggling the same choice twice restores the
// previous selection; it never fails on a valid choice.
func (a *AnswerSet) Toggle(questionID, choice string) ([]string, error) {
	q, ok := GetQuestion(questionID)
	if !ok {
		return nil, utils.ErrUnknownQuestion
	}
	if q.Kind != KindMultiChoice {
		return nil, utils.ErrInvalidChoice
	}
	if !containsChoice(q.Choices, choice) {
		return nil, utils.ErrInvalidChoice
	}

	current := a.multi(questionID)
	var next []string
	switch {
	case choice == ChoiceNone:
		if containsChoice(current, ChoiceNone) {
			next = []string{}
		} else {
			next = []string{ChoiceNone}
		}
	case containsChoice(current, choice):
		next = removeChoice(current, choice)
	default:
		next = append(removeChoice(current, ChoiceNone), choice)
	}

	a.setMulti(questionID, next)
	return next, nil
}

// Snapshot returns an independent copy safe to hand to persistence or the
// recommendation engine.
func (a *AnswerSet) Snapshot() AnswerSet {
	out := *a
	out.Apps = append([]string(nil), a.Apps...)
	out.Needs = append([]string(nil), a.Needs...)
	return out
}

// ForMode returns a copy holding only the answers the given mode collects,
// plus the mode-independent needs selection. Restoring a snapshot written by
// one mode into a session of the other goes through here.
func (a *AnswerSet) ForMode(mode Mode) AnswerSet {
	out := AnswerSet{Apps: []string{}, Needs: append([]string(nil), a.Needs...)}
	for _, id := range OrderedIDs(mode) {
		switch id {
		case QuestionCarrier:
			out.Carrier = a.Carrier
		case QuestionWifi:
			out.Wifi = a.Wifi
		case QuestionPrice:
			out.Price = a.Price
		case QuestionDataUsage:
			out.DataUsage = a.DataUsage
		case QuestionMembers:
			out.Members = a.Members
		case QuestionSatisfaction:
			out.Satisfaction = a.Satisfaction
		case QuestionCallTime:
			out.CallTime = a.CallTime
		case QuestionLocation:
			out.Location = a.Location
		case QuestionApps:
			out.Apps = append([]string(nil), a.Apps...)
		case QuestionContract:
			out.Contract = a.Contract
		case QuestionPayment:
			out.Payment = a.Payment
		}
	}
	return out
}

// Has reports whether the question already carries an answer. Multi-choice
// questions always count as answered: an empty selection is legitimate.
func (a *AnswerSet) Has(questionID string) bool {
	switch questionID {
	case QuestionCarrier:
		return a.Carrier != ""
	case QuestionWifi:
		return a.Wifi != ""
	case QuestionPrice:
		return a.Price > 0
	case QuestionDataUsage:
		return a.DataUsage != ""
	case QuestionMembers:
		return a.Members > 0
	case QuestionSatisfaction:
		return a.Satisfaction != ""
	case QuestionCallTime:
		return a.CallTime != ""
	case QuestionLocation:
		return a.Location != ""
	case QuestionApps, QuestionNeeds:
		return true
	case QuestionContract:
		return a.Contract != ""
	case QuestionPayment:
		return a.Payment != ""
	}
	return false
}

func (a *AnswerSet) setChoice(questionID, value string) {
	switch questionID {
	case QuestionCarrier:
		a.Carrier = value
	case QuestionWifi:
		a.Wifi = value
	case QuestionDataUsage:
		a.DataUsage = value
	case QuestionSatisfaction:
		a.Satisfaction = value
	case QuestionCallTime:
		a.CallTime = value
	case QuestionLocation:
		a.Location = value
	case QuestionContract:
		a.Contract = value
	case QuestionPayment:
		a.Payment = value
	}
}

func (a *AnswerSet) setNumber(questionID string, n int) {
	switch questionID {
	case QuestionPrice:
		a.Price = n
	case QuestionMembers:
		a.Members = n
	}
}

func (a *AnswerSet) multi(questionID string) []string {
	if questionID == QuestionNeeds {
		return a.Needs
	}
	return a.Apps
}

func (a *AnswerSet) setMulti(questionID string, values []string) {
	if questionID == QuestionNeeds {
		a.Needs = values
		return
	}
	a.Apps = values
}

func coerceInt(raw interface{}) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, utils.ErrInvalidNumber
		}
		return int(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, utils.ErrInvalidNumber
		}
		return n, nil
	default:
		return 0, utils.ErrInvalidNumber
	}
}

func containsChoice(set []string, value string) bool {
	for _, c := range set {
		if c == value {
			return true
		}
	}
	return false
}

func removeChoice(set []string, value string) []string {
	out := make([]string, 0, len(set))
	for _, c := range set {
		if c != value {
			out = append(out, c)
		}
	}
	return out
}
