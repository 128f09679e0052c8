package docker

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/registry"
	"github.com/docker/docker/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/stevedore/internal/domain"
)

const imageID = "sha256:4f53cda18c2baa0c0354bb5f9a3ecbe5ed12ab4d8e11ba873c2f11161202b945"

func mustRef(t *testing.T, s string) domain.Reference {
	t.Helper()
	ref, err := domain.ParseReference(s)
	require.NoError(t, err)
	return ref
}

func TestRuntime_PullByName_StreamsProgressAndInspects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1.41/images/create":
			assert.Equal(t, "app", r.URL.Query().Get("fromImage"))
			assert.Equal(t, "latest", r.URL.Query().Get("tag"))
			assert.Empty(t, r.Header.Get("X-Registry-Auth"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"Pulling from library/app","id":"latest"}
{"status":"Downloading","id":"a1b2","progressDetail":{"current":512,"total":1024}}
{"status":"Pull complete","id":"a1b2"}
`))
		case r.Method == http.MethodGet && r.URL.Path == "/v1.41/images/app:latest/json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"Id":"` + imageID + `","RepoTags":["app:latest"],"Size":2048,"Created":"2024-05-01T10:00:00.5Z"}`))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	runtime := newRuntimeForHTTPServer(t, server)

	var chunks []domain.ProgressChunk
	img, err := runtime.PullByName(context.Background(), mustRef(t, "app"), domain.Credential{}, func(c domain.ProgressChunk) {
		chunks = append(chunks, c)
	})

	require.NoError(t, err)
	require.Len(t, chunks, 3)
	assert.Equal(t, domain.ProgressChunk{ID: "a1b2", Status: "Downloading", Current: 512, Total: 1024}, chunks[1])

	assert.Equal(t, imageID, img.ID)
	assert.Equal(t, []string{"app:latest"}, img.References)
	assert.EqualValues(t, 2048, img.Size)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 500000000, time.UTC), img.Created)
}

func TestRuntime_PullByName_SendsCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/v1.41/images/create":
			assert.Equal(t, "myhost:5000/team/app", r.URL.Query().Get("fromImage"))

			auth, err := registry.DecodeAuthConfig(r.Header.Get("X-Registry-Auth"))
			require.NoError(t, err)
			assert.Equal(t, "ci", auth.Username)
			assert.Equal(t, "s3cret", auth.Password)
			assert.Equal(t, "myhost:5000", auth.ServerAddress)

			_, _ = w.Write([]byte(`{"status":"Status: Image is up to date"}`))
		case strings.HasSuffix(r.URL.Path, "/json"):
			_, _ = w.Write([]byte(`{"Id":"` + imageID + `","RepoTags":["myhost:5000/team/app:v2"]}`))
		}
	}))
	defer server.Close()

	runtime := newRuntimeForHTTPServer(t, server)
	cred := domain.Credential{ServerAddress: "myhost:5000", Username: "ci", Password: "s3cret"}

	img, err := runtime.PullByName(context.Background(), mustRef(t, "myhost:5000/team/app:v2"), cred, nil)

	require.NoError(t, err)
	assert.True(t, img.HasReference("myhost:5000/team/app:v2"))
}

func TestRuntime_PullByName_StreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"Pulling from library/app"}
{"errorDetail":{"message":"manifest unknown"},"error":"manifest unknown"}
`))
	}))
	defer server.Close()

	runtime := newRuntimeForHTTPServer(t, server)
	_, err := runtime.PullByName(context.Background(), mustRef(t, "app:nope"), domain.Credential{}, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.Contains(t, err.Error(), "manifest unknown")
}

func TestRuntime_Inspect_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1.41/images/ghost:latest/json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"No such image: ghost:latest"}`))
	}))
	defer server.Close()

	runtime := newRuntimeForHTTPServer(t, server)
	img, err := runtime.Inspect(context.Background(), "ghost:latest")

	assert.Nil(t, img)
	assert.ErrorIs(t, err, domain.ErrImageNotFound)
	assert.ErrorIs(t, err, domain.ErrTransport)
}

func TestRuntime_Inspect_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"internal error"}`))
	}))
	defer server.Close()

	runtime := newRuntimeForHTTPServer(t, server)
	_, err := runtime.Inspect(context.Background(), "app:latest")

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrImageNotFound)
	assert.ErrorIs(t, err, domain.ErrTransport)
}

func TestRuntime_ListAll(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1.41/images/json", r.URL.Path)

		parsedFilters, err := filters.FromJSON(r.URL.Query().Get("filters"))
		require.NoError(t, err)
		assert.Equal(t, []string{"false"}, parsedFilters.Get("dangling"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"Id":"sha256:aaa","RepoTags":["a:latest","a:v1"],"Size":10,"Created":1714557600,"Containers":2},
			{"Id":"sha256:bbb","RepoTags":["b:latest"],"Size":20,"Created":1714557601,"Containers":0}
		]`))
	}))
	defer server.Close()

	runtime := newRuntimeForHTTPServer(t, server)
	images, err := runtime.ListAll(context.Background())

	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, "sha256:aaa", images[0].ID)
	assert.Equal(t, []string{"a:latest", "a:v1"}, images[0].References)
	assert.EqualValues(t, 2, images[0].Containers)
	assert.Equal(t, time.Unix(1714557600, 0).UTC(), images[0].Created)
	assert.EqualValues(t, 20, images[1].Size)
}

func TestRuntime_Tag(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1.41/images/"+imageID+"/tag", r.URL.Path)
		assert.Equal(t, "myhost:5000/team/app", r.URL.Query().Get("repo"))
		assert.Equal(t, "v2", r.URL.Query().Get("tag"))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	runtime := newRuntimeForHTTPServer(t, server)
	err := runtime.Tag(context.Background(), &domain.RemoteImage{ID: imageID}, mustRef(t, "myhost:5000/team/app:v2"))

	require.NoError(t, err)
}

func TestRuntime_Untag(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/v1.41/images/app:latest", r.URL.Path)
		assert.NotEqual(t, "1", r.URL.Query().Get("force"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"Untagged":"app:latest"}]`))
	}))
	defer server.Close()

	runtime := newRuntimeForHTTPServer(t, server)
	err := runtime.Untag(context.Background(), &domain.RemoteImage{ID: imageID}, "app:latest")

	require.NoError(t, err)
}

func TestRuntime_Push(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1.41/images/myhost:5000/team/app/push", r.URL.Path)
		assert.Equal(t, "v2", r.URL.Query().Get("tag"))
		assert.NotEmpty(t, r.Header.Get("X-Registry-Auth"))

		_, _ = w.Write([]byte(`{"status":"Pushing","id":"c3d4","progressDetail":{"current":1,"total":4}}
{"status":"v2: digest: sha256:123 size: 527"}
`))
	}))
	defer server.Close()

	runtime := newRuntimeForHTTPServer(t, server)

	var statuses []string
	err := runtime.Push(context.Background(), mustRef(t, "myhost:5000/team/app:v2"), domain.Credential{}, func(c domain.ProgressChunk) {
		statuses = append(statuses, c.Status)
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"Pushing", "v2: digest: sha256:123 size: 527"}, statuses)
}

func newRuntimeForHTTPServer(t *testing.T, server *httptest.Server) *Runtime {
	t.Helper()

	host := strings.TrimPrefix(server.URL, "http://")
	cli, err := client.NewClientWithOpts(client.WithHost("tcp://"+host), client.WithVersion("1.41"), client.WithHTTPClient(server.Client()))
	require.NoError(t, err)

	return NewRuntimeWithClient(cli)
}
