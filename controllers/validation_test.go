package controllers

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-api/constants"
)

type sample struct {
	Email   string `json:"email" binding:"required,email"`
	Name    string `json:"name" binding:"max=3"`
	Minutes *int   `json:"time_minutes" binding:"required,min=0"`
}

func TestBindingErrors(t *testing.T) {
	RegisterValidation()

	negative := -1
	err := binding.Validator.ValidateStruct(&sample{Email: "nope", Name: "toolong", Minutes: &negative})
	require.Error(t, err)

	fields, ok := bindingErrors(err)
	require.True(t, ok)
	assert.Equal(t, []string{constants.ErrInvalidEmail}, fields["email"])
	assert.Equal(t, []string{"Ensure this field has no more than 3 characters."}, fields["name"])
	assert.Equal(t, []string{"Ensure this value is greater than or equal to 0."}, fields["time_minutes"])

	err = binding.Validator.ValidateStruct(&sample{})
	fields, ok = bindingErrors(err)
	require.True(t, ok)
	assert.Equal(t, []string{constants.ErrFieldRequired}, fields["email"])
	assert.Equal(t, []string{constants.ErrFieldRequired}, fields["time_minutes"])
}

func TestParseIDList(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []uint
		wantErr bool
	}{
		{name: "empty", raw: "", want: nil},
		{name: "single", raw: "4", want: []uint{4}},
		{name: "several with spaces", raw: "1, 2,3", want: []uint{1, 2, 3}},
		{name: "not a number", raw: "1,x", wantErr: true},
		{name: "negative", raw: "-1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseIDList(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
