package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccessModeLevels(t *testing.T) {
	assert.Equal(t, []PrivacyLevel{PrivacyPublic, PrivacyInternal, PrivacyPrivate}, AccessAll.Levels())
	assert.Equal(t, []PrivacyLevel{PrivacyPublic, PrivacyInternal}, AccessInternalAndPublic.Levels())
	assert.Equal(t, []PrivacyLevel{PrivacyPublic}, AccessPublicOnly.Levels())
}

func TestAccessModeAllows(t *testing.T) {
	assert.True(t, AccessAll.Allows(PrivacyPrivate))
	assert.False(t, AccessInternalAndPublic.Allows(PrivacyPrivate))
	assert.True(t, AccessInternalAndPublic.Allows(PrivacyInternal))
	assert.False(t, AccessPublicOnly.Allows(PrivacyInternal))
	assert.True(t, AccessPublicOnly.Allows(PrivacyPublic))
}

func TestAccessModeFor(t *testing.T) {
	assert.Equal(t, AccessAll, AccessModeFor(true, true))
	assert.Equal(t, AccessAll, AccessModeFor(false, true), "private implies internal")
	assert.Equal(t, AccessInternalAndPublic, AccessModeFor(true, false))
	assert.Equal(t, AccessPublicOnly, AccessModeFor(false, false))
}

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, NormalizeTags([]string{" a", "b", "a", "", "  "}))
	assert.Equal(t, []string{}, NormalizeTags(nil))
}

func TestHasTag(t *testing.T) {
	tags := []string{"billing", "urgent"}
	assert.True(t, HasTag(tags, "urgent"))
	assert.False(t, HasTag(tags, "later"))
}
