package pacbucket_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pacbucket/pacbucket"
	"github.com/pacbucket/pacbucket/memory"
)

func newRepoStore() *memory.Store {
	store := memory.NewStore()
	store.Put("repo/localsend-bin-1.14.3-1-x86_64.pkg.tar.zst", []byte("old"), "application/octet-stream")
	store.Put("repo/localsend-bin-1.14.3-1-x86_64.pkg.tar.zst.sig", []byte("oldsig"), "application/octet-stream")
	store.Put("repo/localsend-bin-1.14.4-1-x86_64.pkg.tar.zst", []byte("new"), "application/octet-stream")
	store.Put("repo/localsend-bin-1.14.4-1-x86_64.pkg.tar.zst.sig", []byte("newsig"), "application/octet-stream")
	store.Put("repo/yay-git-12.3.5.r0.g1234abc-1-x86_64.pkg.tar.zst", []byte("yay"), "application/octet-stream")
	store.Put("repo/custom.db.tar.gz", []byte("db"), "application/gzip")
	store.Put("unrelated/file.txt", []byte("nope"), "text/plain")
	return store
}

func TestService_Packages(t *testing.T) {
	service := pacbucket.NewService(newRepoStore(), "repo/")

	pkgs, err := service.Packages(context.Background())
	require.NoError(t, err)

	var names []string
	for _, pkg := range pkgs {
		names = append(names, pkg.Name+" "+pkg.Version)
	}

	// Signatures, the repo database and keys outside the prefix are skipped.
	assert.ElementsMatch(t, []string{
		"localsend-bin 1.14.3-1",
		"localsend-bin 1.14.4-1",
		"yay-git 12.3.5.r0.g1234abc-1",
	}, names)
}

func TestService_Packages_PrefixNormalized(t *testing.T) {
	// "repo" and "repo/" behave the same.
	service := pacbucket.NewService(newRepoStore(), "repo")

	pkgs, err := service.Packages(context.Background())
	require.NoError(t, err)
	assert.Len(t, pkgs, 3)
}

func TestService_StoredVersions(t *testing.T) {
	service := pacbucket.NewService(newRepoStore(), "repo/")

	versions, err := service.StoredVersions(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"localsend-bin": "1.14.4-1",
		"yay-git":       "12.3.5.r0.g1234abc-1",
	}, versions)
}

func TestService_CleanOldVersions(t *testing.T) {
	store := newRepoStore()
	service := pacbucket.NewService(store, "repo/")

	result, err := service.CleanOldVersions(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, []string{"repo/localsend-bin-1.14.3-1-x86_64.pkg.tar.zst"}, result.Deleted)
	assert.Equal(t, 2, result.Kept)

	// The superseded package and its signature are gone.
	_, err = store.Stat(context.Background(), "repo/localsend-bin-1.14.3-1-x86_64.pkg.tar.zst")
	assert.ErrorIs(t, err, pacbucket.ErrNotFound)
	_, err = store.Stat(context.Background(), "repo/localsend-bin-1.14.3-1-x86_64.pkg.tar.zst.sig")
	assert.ErrorIs(t, err, pacbucket.ErrNotFound)

	// The newest version and its signature survive.
	_, err = store.Stat(context.Background(), "repo/localsend-bin-1.14.4-1-x86_64.pkg.tar.zst")
	assert.NoError(t, err)
	_, err = store.Stat(context.Background(), "repo/localsend-bin-1.14.4-1-x86_64.pkg.tar.zst.sig")
	assert.NoError(t, err)
}

func TestService_CleanOldVersions_DryRun(t *testing.T) {
	store := newRepoStore()
	service := pacbucket.NewService(store, "repo/")

	result, err := service.CleanOldVersions(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, []string{"repo/localsend-bin-1.14.3-1-x86_64.pkg.tar.zst"}, result.Deleted)

	// Nothing was actually deleted.
	_, err = store.Stat(context.Background(), "repo/localsend-bin-1.14.3-1-x86_64.pkg.tar.zst")
	assert.NoError(t, err)
}

// mapWriter collects Pull output in memory.
type mapWriter struct {
	files map[string][]byte
}

func (w *mapWriter) Write(ctx context.Context, key string, content io.Reader) (int64, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return 0, err
	}
	w.files[key] = data
	return int64(len(data)), nil
}

func TestService_Pull(t *testing.T) {
	service := pacbucket.NewService(newRepoStore(), "repo/")
	dst := &mapWriter{files: make(map[string][]byte)}

	written, err := service.Pull(context.Background(), dst, pacbucket.PullOptions{})
	require.NoError(t, err)

	// Everything under the prefix, including signatures and the database,
	// but nothing outside it.
	assert.Equal(t, 6, written)
	assert.Equal(t, []byte("new"), dst.files["localsend-bin-1.14.4-1-x86_64.pkg.tar.zst"])
	assert.Equal(t, []byte("db"), dst.files["custom.db.tar.gz"])
	assert.NotContains(t, dst.files, "file.txt")
}

func TestService_Pull_SkipPackage(t *testing.T) {
	service := pacbucket.NewService(newRepoStore(), "repo/")
	dst := &mapWriter{files: make(map[string][]byte)}

	written, err := service.Pull(context.Background(), dst, pacbucket.PullOptions{SkipPackage: "localsend-bin"})
	require.NoError(t, err)

	// Both versions of localsend-bin and their signatures are skipped.
	assert.Equal(t, 2, written)
	assert.NotContains(t, dst.files, "localsend-bin-1.14.4-1-x86_64.pkg.tar.zst")
	assert.NotContains(t, dst.files, "localsend-bin-1.14.4-1-x86_64.pkg.tar.zst.sig")
	assert.Contains(t, dst.files, "yay-git-12.3.5.r0.g1234abc-1-x86_64.pkg.tar.zst")
}
