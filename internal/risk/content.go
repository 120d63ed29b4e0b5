package risk

const crisisAdvice = "If you are in crisis or thinking about harming yourself, call or text 988 " +
	"(Suicide & Crisis Lifeline) or your local emergency number now. You do not have to wait."

const selfHarmAdvice = "You told us that thoughts of harming yourself have come up. Please reach out today: " +
	"call or text 988 (Suicide & Crisis Lifeline), contact your local emergency number, " +
	"or tell someone you trust and your healthcare provider."

type tierContent struct {
	title          string
	message        string
	recommendation string
}

var localContent = map[Tier]tierContent{
	TierLow: {
		title:          "Your responses suggest a lower likelihood of postpartum depression",
		message:        "Adjusting to life with a new baby is demanding. Keep looking after yourself and check in with how you feel over the coming weeks.",
		recommendation: "Rest when you can, stay connected with people you trust, and repeat this check-in if your mood changes.",
	},
	TierModerate: {
		title:          "Your responses suggest you may be experiencing some symptoms",
		message:        "Many new parents go through this, and support helps. You deserve care too.",
		recommendation: "Consider talking with a healthcare provider or a postpartum support group in the next couple of weeks.",
	},
	TierHigherRisk: {
		title:          "Your responses suggest a higher likelihood of postpartum depression",
		message:        "What you are feeling is treatable and it is not your fault. Reaching out is a strong first step.",
		recommendation: "Please contact a healthcare provider soon to talk about how you are feeling.",
	},
}

// Resource is a support link shown alongside results.
type Resource struct {
	Title       string
	Description string
	Contact     string
	Urgent      bool
}

// Resources returns the fixed support resources shown with every result.
func Resources() []Resource {
	return []Resource{
		{
			Title:       "Crisis Support",
			Description: "Suicide & Crisis Lifeline, available 24/7",
			Contact:     "Call or text 988",
			Urgent:      true,
		},
		{
			Title:       "Postpartum Support International",
			Description: "Helpline for parents and families",
			Contact:     "Call or text 1-800-944-4773",
		},
		{
			Title:       "Healthcare Provider",
			Description: "Find mental health professionals near you",
			Contact:     "https://www.postpartum.net/get-help/provider-directory/",
		},
		{
			Title:       "Support Groups",
			Description: "Join a postpartum peer support community",
			Contact:     "https://t.me/+BmC6yIbq80E5MTY0",
		},
	}
}
