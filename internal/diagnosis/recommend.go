package diagnosis

import (
	"fmt"
	"sort"
	"strings"
)

// PlanOption is one recommended price plan. Labels carry the catalog's
// locale; MinPrice is the lower bound in yen used for savings math.
type PlanOption struct {
	Data     string `json:"data"`
	Price    string `json:"price"`
	MinPrice int    `json:"minPrice"`
}

// Result is the outcome of one completed diagnosis. Produced once, never
// mutated afterwards.
type Result struct {
	Plans            []PlanOption `json:"plans"`
	MonthlySavings   int          `json:"monthlySavings"`
	AnnualSavings    int          `json:"annualSavings"`
	CashbackEligible bool         `json:"cashbackEligible"`
	Advisories       []string     `json:"advisories"`
	// Emphasized marks results whose annual savings clear the copy threshold.
	Emphasized bool `json:"emphasized"`
}

var (
	plan4GB       = PlanOption{Data: "4GB/月", Price: "1,078～2,365円/月", MinPrice: 1078}
	plan30GB      = PlanOption{Data: "30GB/月", Price: "2,178～4,015円/月", MinPrice: 2178}
	plan35GB      = PlanOption{Data: "35GB/月", Price: "3,278～5,115円/月", MinPrice: 3278}
	planUnlimited = PlanOption{Data: "ギガ無制限", Price: "4,928～7,425円/月", MinPrice: 4928}
)

// bucketPlans maps each data-usage bucket to its candidate plans.
var bucketPlans = map[string][]PlanOption{
	"0～1GB":   {plan4GB},
	"1～4GB":   {plan4GB},
	"4～10GB":  {plan30GB},
	"10～30GB": {plan35GB, plan30GB},
	"30～50GB": {planUnlimited},
	"50GB以上":  {planUnlimited},
}

var cashbackExcluded = map[string]bool{
	"ソフトバンク": true,
	"ワイモバイル": true,
}

const (
	advisoryCallOption = "通話オプションの追加がおすすめです"
	advisoryLargePlan  = "動画・ゲーム使用が多いため、大容量プランをおすすめします"
	advisoryLoyalty    = "長期契約特典が適用される可能性があります"
)

const emphasisThreshold = 10000

// Recommend maps a completed answer set to a recommendation. It is pure and
// deterministic: no I/O, no clock, no randomness. An unknown data-usage
// bucket yields an empty plan list and zero savings; callers suppress the
// savings display in that case.
func Recommend(answers AnswerSet) Result {
	source := bucketPlans[answers.DataUsage]
	plans := make([]PlanOption, len(source))
	copy(plans, source)

	// Ascending by minimum price; stable so equal prices keep table order.
	sort.SliceStable(plans, func(i, j int) bool {
		return plans[i].MinPrice < plans[j].MinPrice
	})

	result := Result{
		Plans:            plans,
		CashbackEligible: !cashbackExcluded[answers.Carrier],
		Advisories:       advisories(answers),
	}

	if len(plans) > 0 {
		lowest := plans[0].MinPrice
		if monthly := answers.Price - lowest; monthly > 0 {
			result.MonthlySavings = monthly
			result.AnnualSavings = monthly * 12
		}
	}
	result.Emphasized = result.AnnualSavings > emphasisThreshold
	return result
}

// advisories derives the supplementary notes from the detailed-course
// answers. Quick sessions never set these fields, so nothing fires for them.
// Evaluation order is fixed: call time, app mix, contract length.
func advisories(answers AnswerSet) []string {
	out := []string{}
	if answers.CallTime == "30分以上" || answers.CallTime == "15～30分" {
		out = append(out, advisoryCallOption)
	}
	for _, app := range answers.Apps {
		if app == "YouTube" || app == "TikTok" || app == "オンラインゲーム" {
			out = append(out, advisoryLargePlan)
			break
		}
	}
	if answers.Contract == "3年以上" || answers.Contract == "2～3年" {
		out = append(out, advisoryLoyalty)
	}
	return out
}

// Summary renders the plain-text plan summary stored in history entries,
// mirroring what the result screen shows.
func (r Result) Summary() string {
	if len(r.Plans) == 0 {
		return "おすすめプランなし"
	}
	var b strings.Builder
	for i, plan := range r.Plans {
		if i > 0 {
			b.WriteString(" / ")
		}
		if len(r.Plans) > 1 {
			fmt.Fprintf(&b, "おすすめプラン%d: ", i+1)
		}
		fmt.Fprintf(&b, "データ容量: %s、月額料金: %s", plan.Data, plan.Price)
	}
	return b.String()
}
