package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringList_UnmarshalJSON(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected StringList
	}{
		{"list", `["go","python"]`, StringList{"go", "python"}},
		{"bare string", `"go"`, StringList{"go"}},
		{"null", `null`, StringList{}},
		{"empty list", `[]`, StringList{}},
		{"mixed element types", `["go", 3, null, "sql"]`, StringList{"go", "sql"}},
		{"object", `{"a":1}`, StringList{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got StringList
			err := json.Unmarshal([]byte(tc.input), &got)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestRoleList_UnmarshalJSON_SingleObject(t *testing.T) {
	var got RoleList
	err := json.Unmarshal([]byte(`{"title":"Engineer","org":"Acme"}`), &got)

	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "Engineer", got[0].Title)
	assert.Equal(t, "Acme", got[0].Org)
}

func TestParseResult_DriftedPayload(t *testing.T) {
	payload := `{
		"name": "Ada",
		"headline": "Backend engineer",
		"roles": {"title": "SWE", "org": "Initech"},
		"skills": {"tech": "go", "domain": ["fintech"]},
		"interests": null
	}`

	var got ParseResult
	err := json.Unmarshal([]byte(payload), &got)

	assert.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, RoleList{{Title: "SWE", Org: "Initech"}}, got.Roles)
	assert.Equal(t, StringList{"go"}, got.Skills.Tech)
	assert.Equal(t, StringList{"fintech"}, got.Skills.Domain)
	assert.Equal(t, StringList{}, got.Interests)
}
