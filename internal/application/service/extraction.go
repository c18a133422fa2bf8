package service

import (
	"context"
	"encoding/json"
)

// StringList decodes JSON that should be a list of strings but tolerates
// shape drift from the extraction model: a bare string becomes a one-element
// list, null becomes empty, and non-string elements are skipped.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	*l = StringList{}

	var asList []any
	if err := json.Unmarshal(data, &asList); err == nil {
		for _, v := range asList {
			if s, ok := v.(string); ok && s != "" {
				*l = append(*l, s)
			}
		}
		return nil
	}

	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		if asString != "" {
			*l = append(*l, asString)
		}
		return nil
	}

	// null, object, number: nothing usable, keep the empty list.
	return nil
}

type Role struct {
	Title string `json:"title"`
	Org   string `json:"org"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// RoleList tolerates the model returning a single role object where a list
// was requested.
type RoleList []Role

func (l *RoleList) UnmarshalJSON(data []byte) error {
	*l = RoleList{}

	type plain Role
	var asList []plain
	if err := json.Unmarshal(data, &asList); err == nil {
		for _, r := range asList {
			*l = append(*l, Role(r))
		}
		return nil
	}

	var single plain
	if err := json.Unmarshal(data, &single); err == nil {
		*l = append(*l, Role(single))
		return nil
	}

	return nil
}

type SkillBuckets struct {
	Tech   StringList `json:"tech"`
	Domain StringList `json:"domain"`
}

// ParseResult is the fixed-shape record the extraction collaborator returns.
// Every field is defaultable; an all-zero ParseResult is the valid "model
// unavailable" fallback.
type ParseResult struct {
	Name      string       `json:"name"`
	Headline  string       `json:"headline"`
	Roles     RoleList     `json:"roles"`
	Skills    SkillBuckets `json:"skills"`
	Interests StringList   `json:"interests"`
	Education StringList   `json:"education"`
	Links     StringList   `json:"links"`
}

// Extractor turns raw resume/profile text into structured fields. It must not
// fail the caller when the model is down: implementations degrade to an empty
// ParseResult after bounded retries.
type Extractor interface {
	Extract(ctx context.Context, rawText string) (*ParseResult, error)
}
