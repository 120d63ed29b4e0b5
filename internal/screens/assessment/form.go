package assessment

import (
	"errors"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/epds/internal/questionnaire"
	"github.com/abhisek/epds/internal/ui/components"
	"github.com/abhisek/epds/internal/ui/theme"
)

// Form rows, in focus order.
const (
	rowAge = iota
	rowCountry
	rowDelivery
	rowEducation
	rowIncome
	rowPartner
	rowFamily
	rowRecentBirth
	rowContinue
	rowCount
)

const defaultSupport = 5

var (
	deliveryLabels = []string{"Vaginal", "C-Section"}
	incomeLabels   = []string{"Low", "Medium", "High"}
	yesNoLabels    = []string{"Yes", "No"}
)

// demographicsForm is the intake form. It holds raw widget state; the
// engine only sees values when the form is committed.
type demographicsForm struct {
	age       components.NumberInput
	country   components.Selector
	delivery  components.Selector
	education components.Selector
	income    components.Selector
	partner   components.Slider
	family    components.Slider
	recent    components.Selector
	cont      components.Button

	focus  int
	errMsg string
}

// newDemographicsForm builds the form, prefilled from d.
func newDemographicsForm(d questionnaire.Demographics) demographicsForm {
	f := demographicsForm{
		age:       components.NewNumberInput("Age", "years", 3),
		country:   components.NewSelector("Country", questionnaire.Countries),
		delivery:  components.NewSelector("Delivery type", deliveryLabels),
		education: components.NewSelector("Education", questionnaire.EducationLevels),
		income:    components.NewSelector("Household income", incomeLabels),
		partner:   components.NewSlider("Partner support", questionnaire.MinSupport, questionnaire.MaxSupport, defaultSupport),
		family:    components.NewSlider("Family support", questionnaire.MinSupport, questionnaire.MaxSupport, defaultSupport),
		recent:    components.NewSelector("Gave birth in the last 12 months", yesNoLabels),
		cont:      components.NewButton("Continue", nil),
	}

	if d.Age != 0 {
		f.age.SetValue(strconv.Itoa(d.Age))
	}
	f.country.Select(d.Country)
	f.education.Select(d.EducationLevel)
	for i, t := range questionnaire.DeliveryTypes {
		if t == d.DeliveryType {
			f.delivery.Index = i
		}
	}
	for i, l := range questionnaire.IncomeLevels {
		if l == d.IncomeLevel {
			f.income.Index = i
		}
	}
	if d.PartnerSupport != nil {
		f.partner.Set(*d.PartnerSupport)
		f.partner.Touched = true
	}
	if d.FamilySupport != nil {
		f.family.Set(*d.FamilySupport)
		f.family.Touched = true
	}
	if d.RecentBirth != nil {
		if *d.RecentBirth {
			f.recent.Index = 0
		} else {
			f.recent.Index = 1
		}
	}

	f.setFocus(rowAge)
	return f
}

func (f *demographicsForm) focusCmd() tea.Cmd {
	if f.focus == rowAge {
		return f.age.Focus()
	}
	return nil
}

func (f *demographicsForm) setFocus(row int) tea.Cmd {
	f.focus = (row + rowCount) % rowCount
	f.age.Blur()
	f.country.Focused = f.focus == rowCountry
	f.delivery.Focused = f.focus == rowDelivery
	f.education.Focused = f.focus == rowEducation
	f.income.Focused = f.focus == rowIncome
	f.partner.Focused = f.focus == rowPartner
	f.family.Focused = f.focus == rowFamily
	f.recent.Focused = f.focus == rowRecentBirth
	f.cont.Focused = f.focus == rowContinue
	return f.focusCmd()
}

// update routes a key to the focused row. It reports submit=true when
// the user asked to continue.
func (f *demographicsForm) update(msg tea.KeyMsg) (cmd tea.Cmd, submit bool) {
	switch msg.String() {
	case "tab", "down":
		return f.setFocus(f.focus + 1), false
	case "shift+tab", "up":
		return f.setFocus(f.focus - 1), false
	case "enter":
		if f.focus == rowContinue {
			return nil, true
		}
		return f.setFocus(f.focus + 1), false
	}

	switch f.focus {
	case rowAge:
		f.age, cmd = f.age.Update(msg)
	case rowCountry:
		f.country, cmd = f.country.Update(msg)
	case rowDelivery:
		f.delivery, cmd = f.delivery.Update(msg)
	case rowEducation:
		f.education, cmd = f.education.Update(msg)
	case rowIncome:
		f.income, cmd = f.income.Update(msg)
	case rowPartner:
		f.partner, cmd = f.partner.Update(msg)
	case rowFamily:
		f.family, cmd = f.family.Update(msg)
	case rowRecentBirth:
		f.recent, cmd = f.recent.Update(msg)
	}
	f.errMsg = ""
	return cmd, false
}

// commit pushes every provided value into the engine, stopping at the
// first rejection so a bad value never lands. Focus moves to the row
// that needs attention.
func (f *demographicsForm) commit(e *questionnaire.Engine) error {
	var steps []func() error
	// An empty age box clears any age committed earlier.
	age, _ := f.age.Int()
	steps = append(steps, func() error { return e.SetAge(age) })
	if v, ok := f.country.Value(); ok {
		steps = append(steps, func() error { return e.SetCountry(v) })
	}
	if i := f.delivery.Index; i >= 0 {
		steps = append(steps, func() error { return e.SetDeliveryType(questionnaire.DeliveryTypes[i]) })
	}
	if v, ok := f.education.Value(); ok {
		steps = append(steps, func() error { return e.SetEducationLevel(v) })
	}
	if i := f.income.Index; i >= 0 {
		steps = append(steps, func() error { return e.SetIncomeLevel(questionnaire.IncomeLevels[i]) })
	}
	if f.partner.Touched {
		steps = append(steps, func() error { return e.SetPartnerSupport(f.partner.Value) })
	}
	if f.family.Touched {
		steps = append(steps, func() error { return e.SetFamilySupport(f.family.Value) })
	}
	if i := f.recent.Index; i >= 0 {
		steps = append(steps, func() error { return e.SetRecentBirth(i == 0) })
	}
	steps = append(steps, e.Begin)

	for _, step := range steps {
		if err := step(); err != nil {
			f.reject(err)
			return err
		}
	}
	return nil
}

func (f *demographicsForm) reject(err error) {
	var ve *questionnaire.ValidationError
	if !errors.As(err, &ve) {
		f.errMsg = err.Error()
		return
	}
	f.errMsg = ve.Reason
	f.setFocus(fieldRow(ve.Field))
	if ve.Field == questionnaire.FieldAge {
		f.age.Reject(ve.Reason)
	}
}

func fieldRow(field string) int {
	switch field {
	case questionnaire.FieldAge:
		return rowAge
	case questionnaire.FieldCountry:
		return rowCountry
	case questionnaire.FieldDeliveryType:
		return rowDelivery
	case questionnaire.FieldEducation:
		return rowEducation
	case questionnaire.FieldIncome:
		return rowIncome
	case questionnaire.FieldPartnerSupport:
		return rowPartner
	case questionnaire.FieldFamilySupport:
		return rowFamily
	case questionnaire.FieldRecentBirth:
		return rowRecentBirth
	default:
		return rowContinue
	}
}

func (f demographicsForm) view() string {
	rows := []string{
		f.age.View(),
		f.country.View(),
		f.delivery.View(),
		f.education.View(),
		f.income.View(),
		f.partner.View(),
		f.family.View(),
		f.recent.View(),
		"",
		f.cont.View(),
	}

	var b strings.Builder
	b.WriteString(theme.Body.Bold(true).Render("A few questions about you"))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Every field is required. None of this changes your score."))
	b.WriteString("\n\n")
	b.WriteString(strings.Join(rows, "\n"))
	if f.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.ErrorText.Render("  " + f.errMsg))
	}
	return b.String()
}
