package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunMatchesGolden(t *testing.T) {
	for _, name := range []string{"alarm", "chain"} {
		t.Run(name, func(t *testing.T) {
			dir := filepath.Join("..", "..", "testdata", name)
			output := filepath.Join(t.TempDir(), "output.txt")

			_, err := execute(t, "", "run", filepath.Join(dir, "input.txt"), "-o", output, "-w", "3")
			require.NoError(t, err)

			got, err := os.ReadFile(output)
			require.NoError(t, err)
			want, err := os.ReadFile(filepath.Join(dir, "output.golden"))
			require.NoError(t, err)
			assert.Equal(t, string(want), string(got))
		})
	}
}

func TestRunRecordsToStoreAndRunsLists(t *testing.T) {
	tmp := t.TempDir()
	db := filepath.Join(tmp, "runs.db")
	input := filepath.Join("..", "..", "testdata", "chain", "input.txt")

	_, err := execute(t, "", "run", input, "-o", filepath.Join(tmp, "out.txt"), "--store", db)
	require.NoError(t, err)

	out, err := execute(t, "", "runs", "--store", db)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	fields := strings.Fields(lines[1])
	require.NotEmpty(t, fields)
	assert.Equal(t, "chain", fields[1])

	out, err = execute(t, "", "runs", "--store", db, "--id", fields[0])
	require.NoError(t, err)
	assert.Contains(t, out, "P(C=T|A=T)")
	assert.Contains(t, out, "0.76,3,8")
}

func TestQueryArguments(t *testing.T) {
	network := filepath.Join("..", "..", "testdata", "alarm", "alarm_net.xml")

	out, err := execute(t, "", "query", "-n", network, "-a", "2", "P(B=T|J=T,M=T)", "P(J=T|B=T),1")
	require.NoError(t, err)
	assert.Equal(t, "0.28417,7,16\n0.84902,15,64\n", out)

	_, err = execute(t, "", "query", "-n", network, "P(X=T)")
	assert.Error(t, err)

	_, err = execute(t, "", "query", "-n", network, "-a", "4", "P(B=T)")
	assert.Error(t, err)
}

func TestQueryInteractive(t *testing.T) {
	network := filepath.Join("..", "..", "testdata", "chain", "chain.yaml")

	out, err := execute(t, "P(C=T|A=T)\n\nP(C=T|A=T),1\nnonsense\n", "query", "-n", network)
	require.NoError(t, err)
	assert.Contains(t, out, "Network chain: A, B, C")
	assert.Contains(t, out, "0.76,3,4\n")
	assert.Contains(t, out, "0.76,3,8\n")
	assert.Contains(t, out, "error:")
}

func TestInspect(t *testing.T) {
	network := filepath.Join("..", "..", "testdata", "alarm", "alarm_net.xml")

	out, err := execute(t, "", "inspect", "-n", network)
	require.NoError(t, err)
	assert.Contains(t, out, "network alarm_net, 5 variables")
	assert.Contains(t, out, "E,B")
	assert.Contains(t, out, "all distributions sum to 1")

	out, err = execute(t, "", "inspect", "-n", network, "--yaml")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "alarm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(out), 0644))

	out, err = execute(t, "", "query", "-n", path, "-a", "3", "P(B=T|J=T,M=T)")
	require.NoError(t, err)
	assert.Equal(t, "0.28417,7,16\n", out)
}

func TestSettingsFile(t *testing.T) {
	tmp := t.TempDir()
	settings := filepath.Join(tmp, "settings.yaml")
	output := filepath.Join(tmp, "answers.txt")
	require.NoError(t, os.WriteFile(settings, []byte("output: "+output+"\nworkers: 2\nlog_level: warn\n"), 0644))

	_, err := execute(t, "", "--config", settings, "run", filepath.Join("..", "..", "testdata", "chain", "input.txt"))
	require.NoError(t, err)
	_, err = os.Stat(output)
	assert.NoError(t, err)

	require.NoError(t, os.WriteFile(settings, []byte("workers: 0\n"), 0644))
	_, err = execute(t, "", "--config", settings, "version")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "bayesnet dev\n", out)
}
