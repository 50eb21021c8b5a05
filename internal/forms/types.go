package forms

import (
	forms "google.golang.org/api/forms/v1"
)

// Form is the readable view of a form.
type Form struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	ResponderURL string     `json:"responderUrl,omitempty"`
	IsQuiz       bool       `json:"isQuiz,omitempty"`
	Items        []FormItem `json:"items,omitempty"`
}

// FormItem is one question or static element on a form.
type FormItem struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Type     string   `json:"type"`
	Required bool     `json:"required,omitempty"`
	Options  []string `json:"options,omitempty"`
}

// FormResponse is one submitted response with answers keyed by question ID.
type FormResponse struct {
	ID            string              `json:"id"`
	SubmittedTime string              `json:"submittedTime,omitempty"`
	Email         string              `json:"email,omitempty"`
	TotalScore    float64             `json:"totalScore,omitempty"`
	Answers       map[string][]string `json:"answers,omitempty"`
}

// Question types accepted by AddQuestion, mapped to the API's choice types
// where applicable.
var choiceTypes = map[string]string{
	"multiple_choice": "RADIO",
	"checkbox":        "CHECKBOX",
	"dropdown":        "DROP_DOWN",
}

func toForm(f *forms.Form) Form {
	if f == nil {
		return Form{}
	}
	out := Form{
		ID:           f.FormId,
		ResponderURL: f.ResponderUri,
	}
	if f.Info != nil {
		out.Title = f.Info.Title
		out.Description = f.Info.Description
	}
	if f.Settings != nil && f.Settings.QuizSettings != nil {
		out.IsQuiz = f.Settings.QuizSettings.IsQuiz
	}
	for _, item := range f.Items {
		out.Items = append(out.Items, toItem(item))
	}
	return out
}

func toItem(item *forms.Item) FormItem {
	if item == nil {
		return FormItem{}
	}
	out := FormItem{
		ID:    item.ItemId,
		Title: item.Title,
		Type:  "text_block",
	}
	qi := item.QuestionItem
	if qi == nil || qi.Question == nil {
		return out
	}
	q := qi.Question
	out.Required = q.Required
	switch {
	case q.TextQuestion != nil:
		if q.TextQuestion.Paragraph {
			out.Type = "paragraph"
		} else {
			out.Type = "short_answer"
		}
	case q.ChoiceQuestion != nil:
		out.Type = choiceTypeName(q.ChoiceQuestion.Type)
		for _, opt := range q.ChoiceQuestion.Options {
			out.Options = append(out.Options, opt.Value)
		}
	case q.ScaleQuestion != nil:
		out.Type = "scale"
	case q.DateQuestion != nil:
		out.Type = "date"
	case q.TimeQuestion != nil:
		out.Type = "time"
	default:
		out.Type = "question"
	}
	return out
}

func choiceTypeName(apiType string) string {
	for name, t := range choiceTypes {
		if t == apiType {
			return name
		}
	}
	return "choice"
}

func toResponse(r *forms.FormResponse) FormResponse {
	if r == nil {
		return FormResponse{}
	}
	out := FormResponse{
		ID:            r.ResponseId,
		SubmittedTime: r.LastSubmittedTime,
		Email:         r.RespondentEmail,
	}
	if r.TotalScore != 0 {
		out.TotalScore = r.TotalScore
	}
	for questionID, answer := range r.Answers {
		if answer.TextAnswers == nil {
			continue
		}
		var values []string
		for _, ta := range answer.TextAnswers.Answers {
			values = append(values, ta.Value)
		}
		if out.Answers == nil {
			out.Answers = make(map[string][]string)
		}
		out.Answers[questionID] = values
	}
	return out
}
