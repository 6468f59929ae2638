package commands

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"gvmass/internal/scrapers/voice"

	"github.com/stretchr/testify/require"
)

func TestLoginRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>Sign in</body></html>"))
	}))
	defer srv.Close()

	previous := cfg
	t.Cleanup(func() { cfg = previous })
	cfg = Config{
		Email:    "someone@example.com",
		Password: "wrong",
		Endpoints: voice.Endpoints{
			LoginPage:    srv.URL + "/ServiceLogin",
			Authenticate: srv.URL + "/ServiceLoginAuth",
			Continue:     srv.URL + "/voice/",
			Home:         srv.URL + "/voice/",
		},
	}

	_, err := login(context.Background())
	require.ErrorIs(t, err, errLoginRejected)
	require.Equal(t, "Could not log in with provided credentials", err.Error())
}

func TestExecuteReportsErrorOnce(t *testing.T) {
	var cobraOut bytes.Buffer
	rootCmd.SetErr(&cobraOut)
	rootCmd.SetOut(&cobraOut)
	rootCmd.SetArgs([]string{"send", "555", "hello"})
	t.Cleanup(func() { rootCmd.SetArgs([]string{}) })

	err := ExecuteContext(context.Background())
	require.Error(t, err)
	require.Empty(t, cobraOut.String())
}

func TestExclusionsDone(t *testing.T) {
	require.True(t, exclusionsDone(""))
	require.True(t, exclusionsDone("  \t"))
	require.False(t, exclusionsDone("abc"))
	require.False(t, exclusionsDone("1, 3"))
}
