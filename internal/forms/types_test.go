package forms

import (
	"testing"

	forms "google.golang.org/api/forms/v1"
)

func TestToForm(t *testing.T) {
	f := toForm(&forms.Form{
		FormId:       "form-1",
		ResponderUri: "https://docs.google.com/forms/d/e/abc/viewform",
		Info: &forms.Info{
			Title:       "Team survey",
			Description: "Quick pulse check",
		},
		Settings: &forms.FormSettings{
			QuizSettings: &forms.QuizSettings{IsQuiz: true},
		},
		Items: []*forms.Item{
			{
				ItemId: "item-1",
				Title:  "Your name",
				QuestionItem: &forms.QuestionItem{
					Question: &forms.Question{
						Required:     true,
						TextQuestion: &forms.TextQuestion{},
					},
				},
			},
			{
				ItemId: "item-2",
				Title:  "Favorite day",
				QuestionItem: &forms.QuestionItem{
					Question: &forms.Question{
						ChoiceQuestion: &forms.ChoiceQuestion{
							Type: "RADIO",
							Options: []*forms.Option{
								{Value: "Monday"},
								{Value: "Friday"},
							},
						},
					},
				},
			},
			{ItemId: "item-3", Title: "Section header"},
		},
	})

	if f.ID != "form-1" || f.Title != "Team survey" || !f.IsQuiz {
		t.Errorf("form = %+v", f)
	}
	if len(f.Items) != 3 {
		t.Fatalf("got %d items", len(f.Items))
	}
	if f.Items[0].Type != "short_answer" || !f.Items[0].Required {
		t.Errorf("item 1 = %+v", f.Items[0])
	}
	if f.Items[1].Type != "multiple_choice" || len(f.Items[1].Options) != 2 {
		t.Errorf("item 2 = %+v", f.Items[1])
	}
	if f.Items[2].Type != "text_block" {
		t.Errorf("item 3 = %+v", f.Items[2])
	}
}

func TestToItemQuestionTypes(t *testing.T) {
	tests := []struct {
		question *forms.Question
		want     string
	}{
		{&forms.Question{TextQuestion: &forms.TextQuestion{Paragraph: true}}, "paragraph"},
		{&forms.Question{ChoiceQuestion: &forms.ChoiceQuestion{Type: "CHECKBOX"}}, "checkbox"},
		{&forms.Question{ChoiceQuestion: &forms.ChoiceQuestion{Type: "DROP_DOWN"}}, "dropdown"},
		{&forms.Question{ScaleQuestion: &forms.ScaleQuestion{Low: 1, High: 10}}, "scale"},
		{&forms.Question{DateQuestion: &forms.DateQuestion{}}, "date"},
		{&forms.Question{TimeQuestion: &forms.TimeQuestion{}}, "time"},
	}
	for _, tt := range tests {
		item := toItem(&forms.Item{
			ItemId:       "i",
			QuestionItem: &forms.QuestionItem{Question: tt.question},
		})
		if item.Type != tt.want {
			t.Errorf("type = %q, want %q", item.Type, tt.want)
		}
	}
}

func TestToResponse(t *testing.T) {
	r := toResponse(&forms.FormResponse{
		ResponseId:        "resp-1",
		LastSubmittedTime: "2026-08-20T09:30:00Z",
		RespondentEmail:   "student@example.com",
		TotalScore:        8,
		Answers: map[string]forms.Answer{
			"item-1": {
				TextAnswers: &forms.TextAnswers{
					Answers: []*forms.TextAnswer{{Value: "Alice"}},
				},
			},
			"item-2": {
				TextAnswers: &forms.TextAnswers{
					Answers: []*forms.TextAnswer{{Value: "Monday"}, {Value: "Friday"}},
				},
			},
		},
	})

	if r.ID != "resp-1" || r.Email != "student@example.com" || r.TotalScore != 8 {
		t.Errorf("response = %+v", r)
	}
	if got := r.Answers["item-1"]; len(got) != 1 || got[0] != "Alice" {
		t.Errorf("answer 1 = %v", got)
	}
	if got := r.Answers["item-2"]; len(got) != 2 {
		t.Errorf("answer 2 = %v", got)
	}
}
