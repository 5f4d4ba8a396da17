package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/swfilms/config"
)

func fakeSWAPI(t *testing.T, filmsStatus int) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/films":
			if filmsStatus != http.StatusOK {
				http.Error(w, "unavailable", filmsStatus)
				return
			}
			w.Write([]byte(`{"count":1,"results":[{"title":"A New Hope","episode_id":4,"release_date":"1977-05-25","characters":["` + srv.URL + `/api/people/1/"]}]}`))
		case "/api/people/1/":
			w.Write([]byte(`{"name":"Luke Skywalker"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeConfig(t *testing.T, baseURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "api:\n  base_url: \"" + baseURL + "/api/\"\n  retries: 0\nlogging:\n  level: error\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestFilmsCommand(t *testing.T) {
	srv := fakeSWAPI(t, http.StatusOK)

	out, err := run(t, "--config", writeConfig(t, srv.URL), "films")
	require.NoError(t, err)

	assert.Contains(t, out, "Films 1")
	assert.Contains(t, out, "A New Hope")
	assert.Contains(t, out, "1977-05-25")
	assert.NotContains(t, out, "Luke Skywalker")
}

func TestFilmsCommandWithNames(t *testing.T) {
	srv := fakeSWAPI(t, http.StatusOK)

	out, err := run(t, "--config", writeConfig(t, srv.URL), "films", "--names")
	require.NoError(t, err)

	assert.Contains(t, out, "Luke Skywalker")
}

func TestFilmsCommandUpstreamFailure(t *testing.T) {
	srv := fakeSWAPI(t, http.StatusInternalServerError)

	_, err := run(t, "--config", writeConfig(t, srv.URL), "films")
	assert.ErrorIs(t, err, errFilmsUnavailable)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "swfilms version dev"), out)
}

func TestParseFilmsTable(t *testing.T) {
	html := `<main><section class="films"><h2>Films 1</h2><table>
		<thead><tr><th>Nr.</th><th>Name</th></tr></thead>
		<tbody><tr><td>1</td><td> A New Hope </td></tr></tbody>
	</table></section></main>`

	tbl, err := parseFilmsTable(strings.NewReader(html))
	require.NoError(t, err)

	assert.Equal(t, "Films 1", tbl.Title)
	assert.Equal(t, []string{"Nr.", "Name"}, tbl.Headers)
	assert.Equal(t, [][]string{{"1", "A New Hope"}}, tbl.Rows)
}

func TestParseFilmsTableFallback(t *testing.T) {
	_, err := parseFilmsTable(strings.NewReader(`<main><h2>Could not fetch films.</h2></main>`))
	assert.ErrorIs(t, err, errFilmsUnavailable)
}

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"WARN", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := setupLogger(config.LoggingConfig{Level: tt.level, Format: "json"}, os.Stderr)
			assert.Equal(t, tt.want, logger.GetLevel())
		})
	}
}
