package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestID_Unmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want TestID
	}{
		{name: "number", in: `{"id": 5}`, want: "5"},
		{name: "string", in: `{"id": "42"}`, want: "42"},
		{name: "non numeric string", in: `{"id": "abc"}`, want: "abc"},
		{name: "null", in: `{"id": null}`, want: ""},
		{name: "absent", in: `{}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got SubmitTest
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.want, got.ID)
		})
	}
}

func TestResponses_KeepsRawPayload(t *testing.T) {
	body := `{"responses": [
		{"question_id": 7, "selected_option": "A", "correct_option": "A"},
		{"question_id": 8, "selected_option": "B", "correct_option": "C"}
	]}`

	var req SubmitRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	require.NotNil(t, req.Responses)

	assert.Len(t, req.Responses.Items, 2)
	assert.Equal(t, Option(`"A"`), req.Responses.Items[0].SelectedOption)
	assert.Equal(t, Option(`"C"`), req.Responses.Items[1].CorrectOption)
	assert.JSONEq(t,
		`[{"question_id":7,"selected_option":"A","correct_option":"A"},{"question_id":8,"selected_option":"B","correct_option":"C"}]`,
		string(req.Responses.Raw))
	assert.NotContains(t, string(req.Responses.Raw), "\n")
}

func TestResponses_NullLeavesPointerNil(t *testing.T) {
	var req SubmitRequest
	require.NoError(t, json.Unmarshal([]byte(`{"responses": null}`), &req))
	assert.Nil(t, req.Responses)
}

func TestResponses_RejectsNonArray(t *testing.T) {
	var req SubmitRequest
	assert.Error(t, json.Unmarshal([]byte(`{"responses": "A,B"}`), &req))
}

func TestResponses_Marshal(t *testing.T) {
	out, err := json.Marshal(Responses{Items: []ResponseItem{{SelectedOption: Option(`"A"`), CorrectOption: Option(`"B"`)}}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"selected_option":"A","correct_option":"B"}]`, string(out))

	out, err = json.Marshal(Responses{})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(out))
}

func TestOption_KeepsNonStringLabels(t *testing.T) {
	body := `[
		{"selected_option": 1, "correct_option": 1},
		{"selected_option": 1, "correct_option": "1"},
		{"selected_option": null, "correct_option": null},
		{"selected_option": {"k": [1, 2]}, "correct_option": {"k":[1,2]}},
		{"correct_option": null}
	]`

	var items []ResponseItem
	require.NoError(t, json.Unmarshal([]byte(body), &items))
	require.Len(t, items, 5)

	assert.Equal(t, Option("1"), items[0].SelectedOption)
	assert.True(t, items[0].SelectedOption.Equal(items[0].CorrectOption))
	assert.False(t, items[1].SelectedOption.Equal(items[1].CorrectOption))
	assert.True(t, items[2].SelectedOption.Equal(items[2].CorrectOption))
	assert.True(t, items[3].SelectedOption.Equal(items[3].CorrectOption))
	assert.True(t, items[4].SelectedOption.Equal(items[4].CorrectOption))
}

func TestOption_MarshalEmptyAsNull(t *testing.T) {
	out, err := json.Marshal(ResponseItem{CorrectOption: Option(`2`)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"selected_option":null,"correct_option":2}`, string(out))
}

func TestSubmitTest_MarksPresence(t *testing.T) {
	var absent SubmitTest
	require.NoError(t, json.Unmarshal([]byte(`{"id": 1}`), &absent))
	assert.Nil(t, absent.Marks)

	var zero SubmitTest
	require.NoError(t, json.Unmarshal([]byte(`{"id": 1, "marks": 0}`), &zero))
	require.NotNil(t, zero.Marks)
	assert.Equal(t, 0, *zero.Marks)
}
