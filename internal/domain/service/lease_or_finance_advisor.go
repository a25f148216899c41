package service

// ---------------------------------------------------------------------------
// LeaseOrFinanceAdvisor – questionnaire scoring
// ---------------------------------------------------------------------------

// AdvisorOption is one answer and the points it awards.
type AdvisorOption struct {
	Value         string
	Label         string
	LeasePoints   int
	FinancePoints int
}

// AdvisorQuestion is one question of the questionnaire.
type AdvisorQuestion struct {
	ID       int
	Question string
	Options  []AdvisorOption
}

// AdvisorResult totals the points and names the recommended plan type.
type AdvisorResult struct {
	Recommendation string
	LeaseScore     int
	FinanceScore   int
}

// LeaseOrFinanceAdvisor recommends a plan type from questionnaire answers.
type LeaseOrFinanceAdvisor struct {
	questions []AdvisorQuestion
}

// NewLeaseOrFinanceAdvisor returns an advisor over the standard six questions.
func NewLeaseOrFinanceAdvisor() *LeaseOrFinanceAdvisor {
	return &LeaseOrFinanceAdvisor{questions: advisorQuestions}
}

// Questions returns the questionnaire in display order.
func (a *LeaseOrFinanceAdvisor) Questions() []AdvisorQuestion {
	out := make([]AdvisorQuestion, len(a.questions))
	copy(out, a.questions)
	return out
}

// Recommend sums the points of each answered question. Lease is recommended
// only when its score is strictly greater; ties go to finance. Unknown
// question ids and answer values are ignored.
func (a *LeaseOrFinanceAdvisor) Recommend(answers map[int]string) AdvisorResult {
	var res AdvisorResult
	for _, q := range a.questions {
		answer, ok := answers[q.ID]
		if !ok {
			continue
		}
		for _, opt := range q.Options {
			if opt.Value == answer {
				res.LeaseScore += opt.LeasePoints
				res.FinanceScore += opt.FinancePoints
				break
			}
		}
	}

	res.Recommendation = "finance"
	if res.LeaseScore > res.FinanceScore {
		res.Recommendation = "lease"
	}
	return res
}

var advisorQuestions = []AdvisorQuestion{
	{
		ID:       1,
		Question: "How long do you typically keep a car?",
		Options: []AdvisorOption{
			{Value: "2-3", Label: "2-3 years", LeasePoints: 3, FinancePoints: 0},
			{Value: "3-5", Label: "3-5 years", LeasePoints: 2, FinancePoints: 1},
			{Value: "5-7", Label: "5-7 years", LeasePoints: 0, FinancePoints: 2},
			{Value: "7+", Label: "7+ years", LeasePoints: 0, FinancePoints: 3},
		},
	},
	{
		ID:       2,
		Question: "What's your average annual mileage?",
		Options: []AdvisorOption{
			{Value: "under-10k", Label: "Under 10,000 miles", LeasePoints: 3, FinancePoints: 1},
			{Value: "10k-15k", Label: "10,000-15,000 miles", LeasePoints: 2, FinancePoints: 2},
			{Value: "15k-20k", Label: "15,000-20,000 miles", LeasePoints: 1, FinancePoints: 2},
			{Value: "over-20k", Label: "Over 20,000 miles", LeasePoints: 0, FinancePoints: 3},
		},
	},
	{
		ID:       3,
		Question: "How important is having the latest technology and features?",
		Options: []AdvisorOption{
			{Value: "very", Label: "Very important", LeasePoints: 3, FinancePoints: 1},
			{Value: "somewhat", Label: "Somewhat important", LeasePoints: 2, FinancePoints: 2},
			{Value: "not-very", Label: "Not very important", LeasePoints: 1, FinancePoints: 2},
			{Value: "not-at-all", Label: "Not important at all", LeasePoints: 0, FinancePoints: 3},
		},
	},
	{
		ID:       4,
		Question: "What's your preference for monthly payments?",
		Options: []AdvisorOption{
			{Value: "lower", Label: "I prefer lower monthly payments", LeasePoints: 3, FinancePoints: 1},
			{Value: "moderate", Label: "I'm okay with moderate payments", LeasePoints: 2, FinancePoints: 2},
			{Value: "higher", Label: "I can handle higher payments for ownership", LeasePoints: 1, FinancePoints: 3},
			{Value: "no-preference", Label: "No strong preference", LeasePoints: 1, FinancePoints: 1},
		},
	},
	{
		ID:       5,
		Question: "How do you feel about vehicle maintenance and repairs?",
		Options: []AdvisorOption{
			{Value: "avoid", Label: "I prefer to avoid unexpected costs", LeasePoints: 3, FinancePoints: 1},
			{Value: "some", Label: "I don't mind some maintenance costs", LeasePoints: 2, FinancePoints: 2},
			{Value: "comfortable", Label: "I'm comfortable with maintenance", LeasePoints: 1, FinancePoints: 2},
			{Value: "diy", Label: "I enjoy working on cars myself", LeasePoints: 0, FinancePoints: 3},
		},
	},
	{
		ID:       6,
		Question: "What's most important to you?",
		Options: []AdvisorOption{
			{Value: "always-new", Label: "Always driving a new car", LeasePoints: 3, FinancePoints: 0},
			{Value: "building-equity", Label: "Building equity/ownership", LeasePoints: 0, FinancePoints: 3},
			{Value: "flexibility", Label: "Flexibility to change cars", LeasePoints: 2, FinancePoints: 1},
			{Value: "long-term-value", Label: "Long-term value", LeasePoints: 1, FinancePoints: 3},
		},
	},
}
