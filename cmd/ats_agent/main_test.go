package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/ats-scorer/internal/ingestion"
	"github.com/jonathan/ats-scorer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testResume = "Experience\nBuilt a cache.\nSkills\nPython"
	testJob    = "python caching system"
)

// fixture writes a quiet config, a résumé and a job description to a temp dir
type fixture struct {
	dir    string
	config string
	resume string
	job    string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()

	f := fixture{
		dir:    dir,
		config: filepath.Join(dir, "ats.yaml"),
		resume: filepath.Join(dir, "cv.txt"),
		job:    filepath.Join(dir, "job.txt"),
	}
	require.NoError(t, os.WriteFile(f.config, []byte("logging:\n  level: error\n"), 0o644))
	require.NoError(t, os.WriteFile(f.resume, []byte(testResume), 0o644))
	require.NoError(t, os.WriteFile(f.job, []byte(testJob+"\n"), 0o644))
	return f
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestScoreCommand(t *testing.T) {
	f := newFixture(t)

	stdout, _, err := execute(t, "score", "--config", f.config, "--file", f.resume, "--job", f.job)
	require.NoError(t, err)

	assert.Contains(t, stdout, "ATS REPORT: cv.txt")
	assert.Contains(t, stdout, "ATS score:  55 / 100")
	assert.Contains(t, stdout, "Missing keywords: caching, system")
}

func TestScoreCommand_JSON(t *testing.T) {
	f := newFixture(t)

	stdout, _, err := execute(t, "score", "--config", f.config, "-f", f.resume, "-j", f.job, "--json")
	require.NoError(t, err)

	var report types.ScoreReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, 55, report.ATSScore)
	assert.Equal(t, []string{"python"}, report.MatchedKeywords)
}

func TestScoreCommand_Batch(t *testing.T) {
	f := newFixture(t)
	second := filepath.Join(f.dir, "other.md")
	require.NoError(t, os.WriteFile(second, []byte("Summary\nEngineer jane@example.com 555-123-4567"), 0o644))

	stdout, _, err := execute(t, "score", "--config", f.config, "-f", f.resume, "-f", second, "-j", f.job, "--json")
	require.NoError(t, err)

	var results []scoredFile
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))
	require.Len(t, results, 2)
	assert.Equal(t, f.resume, results[0].File)
	assert.Equal(t, second, results[1].File)
	assert.Equal(t, 55, results[0].Report.ATSScore)
	assert.Equal(t, "jane@example.com", results[1].Report.Extracted[types.ContactEmail])
}

func TestScoreCommand_Errors(t *testing.T) {
	f := newFixture(t)
	badPDF := filepath.Join(f.dir, "broken.pdf")
	require.NoError(t, os.WriteFile(badPDF, []byte("not a pdf"), 0o644))

	tests := []struct {
		name        string
		args        []string
		errorString string
	}{
		{
			name:        "no files",
			args:        []string{"score", "--config", f.config},
			errorString: "at least one --file is required",
		},
		{
			name:        "missing file",
			args:        []string{"score", "--config", f.config, "-f", filepath.Join(f.dir, "nope.txt")},
			errorString: "failed to read",
		},
		{
			name:        "missing job description",
			args:        []string{"score", "--config", f.config, "-f", f.resume, "-j", filepath.Join(f.dir, "nope.txt")},
			errorString: "failed to read job description",
		},
		{
			name:        "malformed pdf",
			args:        []string{"score", "--config", f.config, "-f", badPDF},
			errorString: "failed to score",
		},
		{
			name:        "missing config",
			args:        []string{"score", "--config", filepath.Join(f.dir, "missing.yaml"), "-f", f.resume},
			errorString: "config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestScoreCommand_Verbose(t *testing.T) {
	f := newFixture(t)

	_, stderr, err := execute(t, "score", "--config", f.config, "-f", f.resume, "--verbose")
	require.NoError(t, err)

	assert.Contains(t, stderr, "[extract] cv.txt: extracted text")
	assert.Contains(t, stderr, "[score] cv.txt: scored résumé")
}

func TestRefineCommand_Text(t *testing.T) {
	f := newFixture(t)

	stdout, _, err := execute(t, "refine", "--config", f.config, "-f", f.resume, "-j", f.job, "--text")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Summary\nExperienced professional focusing on python, caching, system.")
	assert.Contains(t, stdout, "Skills\n• caching, python, system")
	assert.Contains(t, stdout, "Experience\n• Built a cache")
}

func TestRefineCommand_WithoutLicense(t *testing.T) {
	f := newFixture(t)
	out := filepath.Join(f.dir, "refined.docx")

	_, _, err := execute(t, "refine", "--config", f.config, "-f", f.resume, "-o", out)
	require.Error(t, err)

	assert.True(t, ingestion.IsConfigurationError(err))
	assert.NoFileExists(t, out)
}

func TestRefineCommand_RequiresFile(t *testing.T) {
	f := newFixture(t)

	_, _, err := execute(t, "refine", "--config", f.config, "--text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "file" not set`)
}

func TestServeCommand_InvalidPort(t *testing.T) {
	f := newFixture(t)

	_, _, err := execute(t, "serve", "--config", f.config, "--port", "70000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Port")
}
