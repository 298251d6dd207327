package task

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{name: "valid date", input: "2024-02-29", want: NewDate(2024, time.February, 29)},
		{name: "not a leap year", input: "2023-02-29", wantErr: true},
		{name: "with time component", input: "2024-01-01T10:00:00", wantErr: true},
		{name: "wrong order", input: "01-02-2024", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidArgument))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToday(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	now := time.Date(2024, time.March, 5, 23, 30, 0, 0, loc)

	assert.Equal(t, "2024-03-05", Today(now).String())
}

func TestDate_JSON(t *testing.T) {
	type wrapper struct {
		DueDate *Date `json:"dueDate"`
	}

	data, err := json.Marshal(wrapper{DueDate: ptrDate(NewDate(2025, time.December, 31))})
	require.NoError(t, err)
	assert.JSONEq(t, `{"dueDate":"2025-12-31"}`, string(data))

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"dueDate":"2025-01-15"}`), &w))
	require.NotNil(t, w.DueDate)
	assert.Equal(t, NewDate(2025, time.January, 15), *w.DueDate)

	w = wrapper{}
	require.NoError(t, json.Unmarshal([]byte(`{"dueDate":null}`), &w))
	assert.Nil(t, w.DueDate)

	assert.Error(t, json.Unmarshal([]byte(`{"dueDate":"15/01/2025"}`), &w))
	assert.Error(t, json.Unmarshal([]byte(`{"dueDate":20250115}`), &w))
}

func TestDate_Scan(t *testing.T) {
	want := NewDate(2024, time.July, 1)

	tests := []struct {
		name    string
		value   any
		wantErr bool
	}{
		{name: "time value", value: time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)},
		{name: "string", value: "2024-07-01"},
		{name: "bytes", value: []byte("2024-07-01")},
		{name: "timestamp string", value: "2024-07-01 00:00:00+00:00"},
		{name: "unsupported type", value: 42, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := d.Scan(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, want, d)
		})
	}
}

func TestDate_Value(t *testing.T) {
	v, err := NewDate(2024, time.July, 1).Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-07-01", v)
}

func ptrDate(d Date) *Date {
	return &d
}
