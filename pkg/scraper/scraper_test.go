package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFetchURL(t *testing.T) {
	var gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	client, err := NewClient(ClientOptions{})
	require.NoError(t, err)

	body, err := client.FetchURL(context.Background(), srv.URL, map[string]string{"user-agent": "Custom"})
	require.NoError(t, err)
	require.Equal(t, "<html>ok</html>", string(body))
	require.Equal(t, "Custom", gotAgent)
}

func TestFetchURLRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client, err := NewClient(ClientOptions{})
	require.NoError(t, err)

	_, err = client.FetchURL(context.Background(), srv.URL, nil)
	require.Error(t, err)
}

func TestPostFormWithDump(t *testing.T) {
	var gotLeague string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		gotLeague = r.PostForm.Get("league")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	dumpDir := filepath.Join(t.TempDir(), "dump")
	client, err := NewClient(ClientOptions{DumpDir: dumpDir})
	require.NoError(t, err)

	body, err := client.PostForm(context.Background(), srv.URL, map[string]string{"league": "EPL"}, nil)
	require.NoError(t, err)
	require.JSONEq(t, `{"success":true}`, string(body))
	require.Equal(t, "EPL", gotLeague)

	dumped, err := os.ReadFile(filepath.Join(dumpDir, "00001.txt"))
	require.NoError(t, err)
	require.Contains(t, string(dumped), "league=EPL")
	require.Contains(t, string(dumped), `{"success":true}`)
}

func TestFilesystemOutputReplacesPreviousDump(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "00001.txt"), []byte("old"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "00002.txt"), []byte("old"), 0600))

	_, err := NewFilesystemOutput(dir)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestFilesystemOutputRefusesForeignDirectory(t *testing.T) {
	dir := t.TempDir()
	keep := filepath.Join(dir, "go.mod")
	require.NoError(t, os.WriteFile(keep, []byte("module x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "00001.txt"), []byte("old"), 0600))

	_, err := NewFilesystemOutput(dir)
	require.Error(t, err)

	content, err := os.ReadFile(keep)
	require.NoError(t, err)
	require.Equal(t, "module x", string(content))
	_, err = os.Stat(filepath.Join(dir, "00001.txt"))
	require.NoError(t, err)
}

func TestSaveContentToFileCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "out.json")
	require.NoError(t, SaveContentToFile(path, []byte("{}")))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "{}", string(content))
}
