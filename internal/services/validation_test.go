package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateMessages(t *testing.T) {
	err := Validate(SignupInput{Email: "not-an-email"})
	if assert.Error(t, err) {
		assert.True(t, errors.Is(err, ErrValidation))
		assert.Contains(t, err.Error(), "field name is a required field")
		assert.Contains(t, err.Error(), "field email must be a valid email")
	}

	err = Validate(CreateEPKInput{UserID: "u", ArtistName: "a", ArtistType: "b", ManagedBy: "label"})
	if assert.Error(t, err) {
		assert.Equal(t, "field managedBy must be one of [artist manager]", err.Error())
	}

	assert.NoError(t, Validate(ResetPasswordInput{Email: "a@b.co", OTP: "1", NewPassword: "x", ConfirmPassword: "x"}))
}

func TestApplyPatchResetsListedKeys(t *testing.T) {
	type doc struct {
		Tags  []string          `json:"tags"`
		Attrs map[string]string `json:"attrs"`
		Name  string            `json:"name"`
	}
	d := doc{Tags: []string{"a"}, Attrs: map[string]string{"k": "v"}, Name: "old"}

	err := applyPatch([]byte(`{"attrs":{"n":"m"}}`), &d, map[string]func(){
		"attrs": func() { d.Attrs = nil },
		"tags":  func() { d.Tags = nil },
	})
	assert.NoError(t, err)
	assert.Equal(t, map[string]string{"n": "m"}, d.Attrs)
	assert.Equal(t, []string{"a"}, d.Tags)
	assert.Equal(t, "old", d.Name)

	err = applyPatch([]byte(`{"name":5}`), &d, nil)
	assert.True(t, errors.Is(err, ErrValidation))
}
