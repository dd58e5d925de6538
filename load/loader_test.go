package load

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modelvault/db"
	"modelvault/file"
	"modelvault/models"
)

type testEnv struct {
	loader   *Loader
	storage  *file.Storage
	projects *db.Memory[models.Project]
	entries  *db.Memory[models.ModelEntry]
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	storage, err := file.New(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)

	env := &testEnv{
		storage:  storage,
		projects: db.NewMemory[models.Project](),
		entries:  db.NewMemory[models.ModelEntry](),
	}
	env.loader = Init(storage, env.projects, env.entries)
	return env
}

// flakyStorage fails the upload numbered failOn (1-based).
type flakyStorage struct {
	*file.Storage
	failOn int
	calls  int
}

func (f *flakyStorage) UploadFile(ctx context.Context, name string, body io.Reader, size int64, contentType string) error {
	f.calls++
	if f.calls == f.failOn {
		return errors.New("disk full")
	}
	return f.Storage.UploadFile(ctx, name, body, size, contentType)
}

func upload(name, content string) *Upload {
	return &Upload{
		OriginalName: name,
		Size:         int64(len(content)),
		Body:         strings.NewReader(content),
	}
}

func readAll(t *testing.T, obj *models.StoredObject) string {
	t.Helper()
	defer obj.Content.Close()
	data, err := io.ReadAll(obj.Content)
	require.NoError(t, err)
	return string(data)
}

func TestStoredName(t *testing.T) {
	tests := []struct {
		original string
		pattern  string
	}{
		{original: "chair.glb", pattern: `^\d+-\d+\.glb$`},
		{original: "scene.tar.gz", pattern: `^\d+-\d+\.gz$`},
		{original: "../../etc/passwd", pattern: `^\d+-\d+$`},
		{original: "noext", pattern: `^\d+-\d+$`},
	}

	for _, tt := range tests {
		t.Run(tt.original, func(t *testing.T) {
			assert.Regexp(t, regexp.MustCompile(tt.pattern), storedName(tt.original))
		})
	}
}

func TestCreateProject_KeepsUploadOrder(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	project, err := env.loader.CreateProject(ctx, ProjectInput{
		Name:        "house",
		Description: "a small house",
		Files:       []*Upload{upload("walls.obj", "walls"), upload("roof.obj", "roof"), upload("door.glb", "door")},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, project.ID)
	assert.Equal(t, "house", project.Name)
	assert.Equal(t, "a small house", project.Description)
	require.Len(t, project.Files, 3)

	for i, want := range []string{"walls", "roof", "door"} {
		obj, err := env.storage.DownloadFile(ctx, project.Files[i])
		require.NoError(t, err)
		assert.Equal(t, want, readAll(t, obj))
	}

	stored, err := env.loader.GetProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, project, stored)
}

func TestCreateProject_NoFiles(t *testing.T) {
	env := newTestEnv(t)

	project, err := env.loader.CreateProject(context.Background(), ProjectInput{Name: "empty"})
	require.NoError(t, err)
	assert.NotNil(t, project.Files)
	assert.Empty(t, project.Files)
}

func TestGetProject_Unknown(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.loader.GetProject(context.Background(), "never-issued")
	assert.ErrorIs(t, err, models.ErrProjectNotFound)
}

func TestUpdateProject_Replaces(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	created, err := env.loader.CreateProject(ctx, ProjectInput{
		Name:        "v1",
		Description: "first",
		Files:       []*Upload{upload("a.glb", "a"), upload("b.glb", "b")},
	})
	require.NoError(t, err)

	updated, err := env.loader.UpdateProject(ctx, created.ID, ProjectInput{
		Name:  "v2",
		Files: []*Upload{upload("c.glb", "c")},
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "v2", updated.Name)
	assert.Empty(t, updated.Description)
	require.Len(t, updated.Files, 1)

	// files of the previous version are kept on disk
	for _, name := range created.Files {
		obj, err := env.storage.DownloadFile(ctx, name)
		require.NoError(t, err)
		obj.Content.Close()
	}
}

func TestUpdateProject_UnknownIDCreates(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.loader.UpdateProject(ctx, "chosen-id", ProjectInput{Name: "late"})
	require.NoError(t, err)

	project, err := env.loader.GetProject(ctx, "chosen-id")
	require.NoError(t, err)
	assert.Equal(t, "late", project.Name)
}

func TestDeleteProject(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	project, err := env.loader.CreateProject(ctx, ProjectInput{
		Name:  "gone",
		Files: []*Upload{upload("a.glb", "a"), upload("b.glb", "b")},
	})
	require.NoError(t, err)

	// one file vanished behind our back
	require.NoError(t, os.Remove(filepath.Join(env.storage.Root(), project.Files[0])))

	require.NoError(t, env.loader.DeleteProject(ctx, project.ID))

	_, err = env.loader.GetProject(ctx, project.ID)
	assert.ErrorIs(t, err, models.ErrProjectNotFound)

	files, err := env.loader.ListModels(ctx)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDeleteProject_UnknownID(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.loader.UploadModel(ctx, upload("keep.glb", "keep"))
	require.NoError(t, err)

	err = env.loader.DeleteProject(ctx, "never-issued")
	assert.ErrorIs(t, err, models.ErrProjectNotFound)

	files, err := env.loader.ListModels(ctx)
	require.NoError(t, err)
	assert.Len(t, files, 1, "nothing is touched for an unknown project")
}

func TestUploadModel_RoundTrip(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	id, err := env.loader.UploadModel(ctx, upload("teapot.obj", "v 1 2 3\n"))
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	obj, err := env.loader.GetModel(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "v 1 2 3\n", readAll(t, obj))
	assert.True(t, strings.HasSuffix(obj.Name, ".obj"))
}

func TestUploadModel_NoFile(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.loader.UploadModel(ctx, nil)
	assert.ErrorIs(t, err, models.ErrNoFile)

	err = env.loader.UpdateModel(ctx, "any", nil)
	assert.ErrorIs(t, err, models.ErrNoFile)

	assert.Equal(t, 0, env.entries.Len())
}

func TestUpdateModel_ReusesID(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	id, err := env.loader.UploadModel(ctx, upload("a.glb", "first"))
	require.NoError(t, err)

	require.NoError(t, env.loader.UpdateModel(ctx, id, upload("a.glb", "second")))

	obj, err := env.loader.GetModel(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "second", readAll(t, obj))

	files, err := env.loader.ListModels(ctx)
	require.NoError(t, err)
	assert.Len(t, files, 2, "previous file is not deleted")
}

func TestGetModel_Unknown(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.loader.GetModel(context.Background(), "never-issued")
	assert.ErrorIs(t, err, models.ErrModelNotFound)
}

func TestDeleteModel(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	id, err := env.loader.UploadModel(ctx, upload("a.glb", "a"))
	require.NoError(t, err)
	entry, err := env.entries.Get(ctx, id)
	require.NoError(t, err)

	require.NoError(t, env.loader.DeleteModel(ctx, id))

	_, err = os.Stat(filepath.Join(env.storage.Root(), entry.Filename))
	assert.True(t, os.IsNotExist(err))

	_, err = env.loader.GetModel(ctx, id)
	assert.ErrorIs(t, err, models.ErrModelNotFound)

	err = env.loader.DeleteModel(ctx, id)
	assert.ErrorIs(t, err, models.ErrModelNotFound)
}

func TestListModels(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	files, err := env.loader.ListModels(ctx)
	require.NoError(t, err)
	assert.NotNil(t, files)
	assert.Empty(t, files)

	project, err := env.loader.CreateProject(ctx, ProjectInput{
		Name:  "p",
		Files: []*Upload{upload("a.glb", "a"), upload("b.glb", "b")},
	})
	require.NoError(t, err)
	id, err := env.loader.UploadModel(ctx, upload("c.glb", "c"))
	require.NoError(t, err)
	entry, err := env.entries.Get(ctx, id)
	require.NoError(t, err)

	files, err = env.loader.ListModels(ctx)
	require.NoError(t, err)

	want := []string{
		filepath.Join(env.storage.Root(), project.Files[0]),
		filepath.Join(env.storage.Root(), project.Files[1]),
		filepath.Join(env.storage.Root(), entry.Filename),
	}
	assert.ElementsMatch(t, want, files)
}

func TestCreateProject_FailedUploadRemovesStoredFiles(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	flaky := &flakyStorage{Storage: env.storage, failOn: 3}
	loader := Init(flaky, env.projects, env.entries)

	_, err := loader.CreateProject(ctx, ProjectInput{
		Name:  "partial",
		Files: []*Upload{upload("a.glb", "a"), upload("b.glb", "b"), upload("c.glb", "c")},
	})
	require.Error(t, err)

	files, err := env.storage.ListFiles(ctx)
	require.NoError(t, err)
	assert.Empty(t, files)
	assert.Equal(t, 0, env.projects.Len())
}
