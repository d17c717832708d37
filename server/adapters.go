package server

import (
	"github.com/umputun/tripscope/pkg/preference"
	"github.com/umputun/tripscope/pkg/service"
)

// resolveRequest is the body of a stateless resolve call
type resolveRequest struct {
	Text        string            `json:"text"`
	Preferences map[string]string `json:"preferences,omitempty"`
	Threshold   float64           `json:"threshold,omitempty"`
}

func (r *resolveRequest) text() string { return r.Text }

// messageRequest is the body of a conversation message
type messageRequest struct {
	Text string `json:"text"`
}

func (r *messageRequest) text() string { return r.Text }

// turnResponse is the state of preferences after a message
type turnResponse struct {
	SessionID   string            `json:"session_id,omitempty"`
	Preferences preference.Record `json:"preferences"`
	Filled      []string          `json:"filled"`
	Missing     []string          `json:"missing"`
	NextField   string            `json:"next_field,omitempty"`
	Question    string            `json:"question,omitempty"`
	Complete    bool              `json:"complete"`
	Turns       int               `json:"turns"`
}

// schemaResponse lists preference fields in canonical order
type schemaResponse struct {
	Fields []schemaField `json:"fields"`
}

type schemaField struct {
	ID          string             `json:"id"`
	Description string             `json:"description"`
	Values      []preference.Value `json:"values"`
}

func toTurnResponse(t *service.Turn) turnResponse {
	return turnResponse{
		SessionID:   t.SessionID,
		Preferences: t.Preferences,
		Filled:      fieldNames(t.Filled),
		Missing:     fieldNames(t.Missing),
		NextField:   string(t.NextField),
		Question:    t.Question,
		Complete:    t.Complete,
		Turns:       t.Turns,
	}
}

func toSchemaResponse(s *preference.Schema) schemaResponse {
	res := schemaResponse{Fields: []schemaField{}}
	for _, id := range s.AllFields() {
		values := s.Values(id)
		if values == nil {
			values = []preference.Value{}
		}
		res.Fields = append(res.Fields, schemaField{ID: string(id), Description: s.Description(id), Values: values})
	}
	return res
}

// fieldNames converts ids to strings, never nil so JSON has an empty array
func fieldNames(ids []preference.FieldID) []string {
	res := make([]string, 0, len(ids))
	for _, id := range ids {
		res = append(res, string(id))
	}
	return res
}
