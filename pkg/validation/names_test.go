package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRepositoryName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "myapp", false},
		{"nested", "team/app", false},
		{"separators", "my-app_v2.beta", false},
		{"empty", "", true},
		{"uppercase", "MyApp", true},
		{"traversal", "team/../app", true},
		{"leading separator", "-app", true},
		{"too long", strings.Repeat("a", MaxRepositoryNameLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRepositoryName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateTag(t *testing.T) {
	assert.NoError(t, ValidateTag("latest"))
	assert.NoError(t, ValidateTag("v1.2.3-rc_1"))
	assert.Error(t, ValidateTag(""))
	assert.Error(t, ValidateTag(".hidden"))
	assert.Error(t, ValidateTag(strings.Repeat("x", 129)))
}

func TestValidateImageReference(t *testing.T) {
	assert.NoError(t, ValidateImageReference("myhost:5000/team/app:v2"))
	assert.NoError(t, ValidateImageReference("nginx"))
	assert.Error(t, ValidateImageReference("Team/App:v2"))
	assert.Error(t, ValidateImageReference("app:-bad"))
}

func TestValidateImageReference_RejectsDigest(t *testing.T) {
	for _, ref := range []string{
		"registry.example.com/app@sha256:abc123",
		"nginx@sha256:0123456789abcdef",
		"myhost:5000/team/app:v2@sha256:abc",
	} {
		t.Run(ref, func(t *testing.T) {
			assert.ErrorIs(t, ValidateImageReference(ref), ErrDigestReference)
		})
	}
}

func TestHasDigest(t *testing.T) {
	assert.True(t, HasDigest("app@sha256:abc"))
	assert.False(t, HasDigest("myhost:5000/app:v1"))
}
