package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/CypherHippie/HeaderHunter/pkg/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags clears flag state left behind by a previous execution of the
// shared command tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func executeCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return buf.String(), err
}

// scanArgs disables the politeness delay so tests run quickly.
func scanArgs(extra ...string) []string {
	return append([]string{"scan", "--min-delay", "0", "--max-delay", "0"}, extra...)
}

func newLeakyServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", "nginx/1.18.0")
		w.Header().Set("X-Custom-Debug", "trace=1")
		w.WriteHeader(http.StatusOK)
	}))
}

func TestVersionCommand(t *testing.T) {
	output, err := executeCmd(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, output, "headerhunter version")
}

func TestScanMissingTargets(t *testing.T) {
	_, err := executeCmd(t, "", scanArgs()...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no targets")
}

func TestScanTextOutput(t *testing.T) {
	srv := newLeakyServer()
	defer srv.Close()

	output, err := executeCmd(t, "", scanArgs("-u", srv.URL, "-o", "text")...)
	require.NoError(t, err)
	assert.Contains(t, output, "URL: "+srv.URL)
	assert.Contains(t, output, "  Server: nginx/1.18.0 (Severity: 13): Consider hiding the server version")
	assert.Contains(t, output, "Pattern match - X-Custom-Debug: trace=1 (Severity: 1)")
	assert.Equal(t, 2, strings.Count(output, "Server: nginx/1.18.0 (Severity: 13)"))
}

func TestScanDedupe(t *testing.T) {
	srv := newLeakyServer()
	defer srv.Close()

	output, err := executeCmd(t, "", scanArgs("-u", srv.URL, "-o", "text", "--dedupe")...)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(output, "Server: nginx/1.18.0 (Severity: 13)"))
}

func TestScanJSONOutput(t *testing.T) {
	srv := newLeakyServer()
	defer srv.Close()

	output, err := executeCmd(t, "", scanArgs(srv.URL, "-o", "json")...)
	require.NoError(t, err)

	var results []types.URLResult
	require.NoError(t, json.Unmarshal([]byte(output), &results))
	require.Len(t, results, 1)
	assert.Equal(t, srv.URL, results[0].URL)
	require.NotEmpty(t, results[0].Findings)
	assert.Equal(t, "Server: nginx/1.18.0", results[0].Findings[0].Label)
	assert.Equal(t, uint(13), results[0].Findings[0].Severity)
}

func TestScanURLFile(t *testing.T) {
	srv := newLeakyServer()
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "urls.txt")
	content := "# targets\n\n" + srv.URL + "\n" + srv.URL + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	output, err := executeCmd(t, "", scanArgs("--url-file", path, "-o", "json")...)
	require.NoError(t, err)

	var results []types.URLResult
	require.NoError(t, json.Unmarshal([]byte(output), &results))
	require.Len(t, results, 1)
	assert.Equal(t, srv.URL, results[0].URL)
}

func TestScanMissingURLFile(t *testing.T) {
	_, err := executeCmd(t, "", scanArgs("--url-file", filepath.Join(t.TempDir(), "missing.txt"))...)
	assert.Error(t, err)
}

func TestScanUnreachableURLOmitted(t *testing.T) {
	srv := newLeakyServer()
	srv.Close()

	output, err := executeCmd(t, "", scanArgs("-u", srv.URL, "-o", "table")...)
	require.NoError(t, err)
	assert.Contains(t, output, "No findings.")
}

func TestScanMinSeverity(t *testing.T) {
	srv := newLeakyServer()
	defer srv.Close()

	output, err := executeCmd(t, "", scanArgs("-u", srv.URL, "-o", "text", "--min-severity", "10")...)
	require.NoError(t, err)
	assert.Contains(t, output, "Server: nginx/1.18.0")
	assert.NotContains(t, output, "Pattern match")
}

func TestScanCustomPattern(t *testing.T) {
	srv := newLeakyServer()
	defer srv.Close()

	output, err := executeCmd(t, "", scanArgs("-u", srv.URL, "-o", "text", "--pattern", "nomatch")...)
	require.NoError(t, err)
	assert.NotContains(t, output, "Pattern match")
}

func TestScanInvalidPattern(t *testing.T) {
	_, err := executeCmd(t, "", scanArgs("-u", "https://example.com", "--pattern", "(unclosed")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid exploit pattern")
}

func TestScanInvalidMethod(t *testing.T) {
	_, err := executeCmd(t, "", scanArgs("-u", "https://example.com", "--method", "POST")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported method")
}

func TestScanInvalidOutputFormat(t *testing.T) {
	_, err := executeCmd(t, "", scanArgs("-u", "https://example.com", "-o", "yaml")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown")
}

func TestScanHelpListsFlags(t *testing.T) {
	output, err := executeCmd(t, "", "scan", "--help")
	require.NoError(t, err)
	for _, flag := range []string{"--url", "--priority", "--pattern", "--dedupe", "--min-delay", "--rate-limit", "--method"} {
		assert.Contains(t, output, flag)
	}
}

func TestScanConfigFile(t *testing.T) {
	srv := newLeakyServer()
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "headerhunter.yaml")
	content := "output_format: text\nmin_delay: 0s\nmax_delay: 0s\ndedupe: true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	output, err := executeCmd(t, "", "scan", "--config", path, "-u", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, output, "URL: "+srv.URL)
	assert.Equal(t, 1, strings.Count(output, "Server: nginx/1.18.0 (Severity: 13)"))
}

func TestScanConfigFileFlagOverrides(t *testing.T) {
	srv := newLeakyServer()
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "headerhunter.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_format: text\n"), 0o644))

	output, err := executeCmd(t, "", scanArgs("--config", path, "-u", srv.URL, "-o", "json")...)
	require.NoError(t, err)

	var results []types.URLResult
	require.NoError(t, json.Unmarshal([]byte(output), &results))
	require.Len(t, results, 1)
}

func TestMissingConfigFile(t *testing.T) {
	_, err := executeCmd(t, "", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "rules")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

func TestConfigFlagHelpShowsDefaultPath(t *testing.T) {
	output, err := executeCmd(t, "", "--help")
	require.NoError(t, err)
	assert.Contains(t, output, "--config")
	assert.Contains(t, output, ".headerhunter.yaml")
}

func TestScanNegativeTimeout(t *testing.T) {
	_, err := executeCmd(t, "", scanArgs("-u", "https://example.com", "--timeout=-1s")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout must not be negative")
}

func TestAnalyzeArgs(t *testing.T) {
	output, err := executeCmd(t, "", "analyze", "Server: nginx/1.18.0", "X-Custom-Debug: trace=1", "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, output, "URL: (input)")
	assert.Contains(t, output, "Server: nginx/1.18.0 (Severity: 13)")
	assert.Contains(t, output, "Pattern match - X-Custom-Debug: trace=1 (Severity: 1): Matched a known exploit pattern.")
}

func TestAnalyzeStdin(t *testing.T) {
	dump := "HTTP/1.1 200 OK\r\nX-Powered-By: PHP/5.6\r\nUser-Agent: curl\r\n\r\n"
	output, err := executeCmd(t, dump, "analyze", "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, output, "X-Powered-By: PHP/5.6 (Severity: 10)")
	assert.NotContains(t, output, "User-Agent")
}

func TestAnalyzeInvalidHeader(t *testing.T) {
	_, err := executeCmd(t, "", "analyze", "not a header")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid header")
}

func TestAnalyzeNoHeaders(t *testing.T) {
	_, err := executeCmd(t, "", "analyze")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no headers")
}

func TestRulesCommand(t *testing.T) {
	output, err := executeCmd(t, "", "rules")
	require.NoError(t, err)
	assert.Contains(t, output, "Strict-Transport-Security")
	assert.Contains(t, output, "nginx/1.18.0")
	assert.Contains(t, output, "User-Agent, Accept")
	assert.Contains(t, output, "Server, X-Powered-By, Content-Type")
}

func TestRootHelpListsCommands(t *testing.T) {
	output, err := executeCmd(t, "", "--help")
	require.NoError(t, err)
	for _, name := range []string{"scan", "analyze", "rules", "serve", "version"} {
		assert.Contains(t, output, name)
	}
}
