package forms

import (
	"context"
	"fmt"
	"strings"

	forms "google.golang.org/api/forms/v1"

	"github.com/rlarsen/workspace-mcp/internal/google"
)

// Client wraps the Forms service for one account.
type Client struct {
	svc     *forms.Service
	account string
}

// NewClient creates a Forms client authenticated through the credential
// manager.
func NewClient(ctx context.Context, manager google.TokenManager, account string) (*Client, error) {
	svc, err := forms.NewService(ctx, google.ClientOptions(ctx, manager, account)...)
	if err != nil {
		return nil, fmt.Errorf("create Forms service: %w", err)
	}
	return &Client{svc: svc, account: account}, nil
}

// Account returns the account this client acts as.
func (c *Client) Account() string {
	return c.account
}

// CreateForm creates a form. The Forms API only accepts a title at creation;
// a description is applied with a follow-up update.
func (c *Client) CreateForm(ctx context.Context, title, description string) (*Form, error) {
	created, err := c.svc.Forms.Create(&forms.Form{
		Info: &forms.Info{Title: title},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("create form %q: %w", title, err)
	}

	if description != "" {
		err = c.batchUpdate(ctx, created.FormId, &forms.Request{
			UpdateFormInfo: &forms.UpdateFormInfoRequest{
				Info:       &forms.Info{Description: description},
				UpdateMask: "description",
			},
		})
		if err != nil {
			return nil, err
		}
	}
	return c.GetForm(ctx, created.FormId)
}

// GetForm retrieves a form with its items.
func (c *Client) GetForm(ctx context.Context, formID string) (*Form, error) {
	f, err := c.svc.Forms.Get(formID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get form %s: %w", formID, err)
	}
	result := toForm(f)
	return &result, nil
}

// QuestionInput describes a question for AddQuestion. Type is short_answer,
// paragraph, multiple_choice, checkbox, dropdown, scale, date, or time.
// Options apply to the choice types; Low and High to scale.
type QuestionInput struct {
	Title    string
	Type     string
	Required bool
	Options  []string
	Low      int64
	High     int64
}

// AddQuestion appends a question to the form and returns its item ID.
func (c *Client) AddQuestion(ctx context.Context, formID string, input QuestionInput) (string, error) {
	question := &forms.Question{Required: input.Required}

	switch qType := strings.ToLower(input.Type); qType {
	case "short_answer", "":
		question.TextQuestion = &forms.TextQuestion{}
	case "paragraph":
		question.TextQuestion = &forms.TextQuestion{Paragraph: true}
	case "multiple_choice", "checkbox", "dropdown":
		if len(input.Options) == 0 {
			return "", fmt.Errorf("%s question requires options", qType)
		}
		cq := &forms.ChoiceQuestion{Type: choiceTypes[qType]}
		for _, opt := range input.Options {
			cq.Options = append(cq.Options, &forms.Option{Value: opt})
		}
		question.ChoiceQuestion = cq
	case "scale":
		low, high := input.Low, input.High
		if low == 0 && high == 0 {
			low, high = 1, 5
		}
		if high <= low {
			return "", fmt.Errorf("scale bounds %d..%d are invalid", low, high)
		}
		question.ScaleQuestion = &forms.ScaleQuestion{Low: low, High: high}
	case "date":
		question.DateQuestion = &forms.DateQuestion{}
	case "time":
		question.TimeQuestion = &forms.TimeQuestion{}
	default:
		return "", fmt.Errorf("unknown question type %q", input.Type)
	}

	res, err := c.svc.Forms.BatchUpdate(formID, &forms.BatchUpdateFormRequest{
		Requests: []*forms.Request{{
			CreateItem: &forms.CreateItemRequest{
				Item: &forms.Item{
					Title:        input.Title,
					QuestionItem: &forms.QuestionItem{Question: question},
				},
				Location: &forms.Location{
					Index:           0,
					ForceSendFields: []string{"Index"},
				},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("add question to form %s: %w", formID, err)
	}
	for _, reply := range res.Replies {
		if reply.CreateItem != nil {
			return reply.CreateItem.ItemId, nil
		}
	}
	return "", fmt.Errorf("no item in create reply")
}

// DeleteQuestion removes an item from the form by item ID.
func (c *Client) DeleteQuestion(ctx context.Context, formID, itemID string) error {
	f, err := c.svc.Forms.Get(formID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("get form %s: %w", formID, err)
	}
	index := int64(-1)
	for i, item := range f.Items {
		if item.ItemId == itemID {
			index = int64(i)
			break
		}
	}
	if index < 0 {
		return fmt.Errorf("item %s not found in form %s", itemID, formID)
	}
	return c.batchUpdate(ctx, formID, &forms.Request{
		DeleteItem: &forms.DeleteItemRequest{
			Location: &forms.Location{
				Index:           index,
				ForceSendFields: []string{"Index"},
			},
		},
	})
}

// SetQuizMode turns quiz grading on or off for the form.
func (c *Client) SetQuizMode(ctx context.Context, formID string, isQuiz bool) error {
	return c.batchUpdate(ctx, formID, &forms.Request{
		UpdateSettings: &forms.UpdateSettingsRequest{
			Settings: &forms.FormSettings{
				QuizSettings: &forms.QuizSettings{
					IsQuiz:          isQuiz,
					ForceSendFields: []string{"IsQuiz"},
				},
			},
			UpdateMask: "quizSettings.isQuiz",
		},
	})
}

// ListResponses lists submitted responses.
func (c *Client) ListResponses(ctx context.Context, formID string) ([]FormResponse, error) {
	var responses []FormResponse
	pageToken := ""
	for {
		req := c.svc.Forms.Responses.List(formID)
		if pageToken != "" {
			req = req.PageToken(pageToken)
		}
		res, err := req.Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("list responses of form %s: %w", formID, err)
		}
		for _, r := range res.Responses {
			responses = append(responses, toResponse(r))
		}
		if res.NextPageToken == "" {
			return responses, nil
		}
		pageToken = res.NextPageToken
	}
}

// GetResponse retrieves one submitted response.
func (c *Client) GetResponse(ctx context.Context, formID, responseID string) (*FormResponse, error) {
	r, err := c.svc.Forms.Responses.Get(formID, responseID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get response %s of form %s: %w", responseID, formID, err)
	}
	result := toResponse(r)
	return &result, nil
}

func (c *Client) batchUpdate(ctx context.Context, formID string, requests ...*forms.Request) error {
	_, err := c.svc.Forms.BatchUpdate(formID, &forms.BatchUpdateFormRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update form %s: %w", formID, err)
	}
	return nil
}
