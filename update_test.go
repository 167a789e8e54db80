package pacbucket_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pacbucket/pacbucket"
)

func TestFindUpdates(t *testing.T) {
	tracked := []string{"localsend-bin", "yay-git", "never-built", "missing-from-aur"}

	aurVersions := map[string]string{
		"localsend-bin": "1.14.5-1",
		"yay-git":       "12.3.5.r0.g1234abc-1",
		"never-built":   "0.1.0-1",
	}
	storedVersions := map[string]string{
		"localsend-bin": "1.14.4-1",
		"yay-git":       "12.3.5.r0.g1234abc-1",
	}

	updates := pacbucket.FindUpdates(tracked, aurVersions, storedVersions)

	assert.Equal(t, []pacbucket.Update{
		{Name: "localsend-bin", AURVersion: "1.14.5-1", StoredVersion: "1.14.4-1"},
		{Name: "never-built", AURVersion: "0.1.0-1"},
	}, updates)

	assert.False(t, updates[0].IsNew())
	assert.True(t, updates[1].IsNew())
}

func TestFindUpdates_UpToDate(t *testing.T) {
	updates := pacbucket.FindUpdates(
		[]string{"localsend-bin"},
		map[string]string{"localsend-bin": "1.14.4-1"},
		map[string]string{"localsend-bin": "1.14.4-1"},
	)
	assert.Empty(t, updates)
}

func TestFindUpdates_StoredNewer(t *testing.T) {
	// A store ahead of the AUR (e.g. an epoch bump that was reverted) is not
	// an update.
	updates := pacbucket.FindUpdates(
		[]string{"localsend-bin"},
		map[string]string{"localsend-bin": "1.14.4-1"},
		map[string]string{"localsend-bin": "1:1.0-1"},
	)
	assert.Empty(t, updates)
}
