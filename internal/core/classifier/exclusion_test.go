package classifier

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeExclusionFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "excluded_processes.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestExclusionListMatchesCaseInsensitively(t *testing.T) {
	path := writeExclusionFile(t, t.TempDir(), "KeePass.exe\n\n  teams.exe  \n")

	excl, err := NewExclusionList(path, RefreshAlways, 0)
	require.NoError(t, err)
	defer excl.Close()

	assert.True(t, excl.Excluded("keepass.exe"))
	assert.True(t, excl.Excluded("TEAMS.EXE"))
	assert.False(t, excl.Excluded("winword.exe"))
	assert.False(t, excl.Excluded(""))
}

func TestExclusionListMissingFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.txt")

	excl, err := NewExclusionList(path, RefreshAlways, 0)
	require.NoError(t, err)
	defer excl.Close()

	assert.False(t, excl.Excluded("keepass.exe"))
}

func TestExclusionListAlwaysModeSeesEdits(t *testing.T) {
	dir := t.TempDir()
	path := writeExclusionFile(t, dir, "keepass.exe\n")

	excl, err := NewExclusionList(path, RefreshAlways, 0)
	require.NoError(t, err)
	defer excl.Close()

	assert.True(t, excl.Excluded("keepass.exe"))

	writeExclusionFile(t, dir, "slack.exe\n")
	assert.False(t, excl.Excluded("keepass.exe"))
	assert.True(t, excl.Excluded("slack.exe"))
}

func TestExclusionListTTLModeCachesUntilExpiry(t *testing.T) {
	dir := t.TempDir()
	path := writeExclusionFile(t, dir, "keepass.exe\n")

	excl, err := NewExclusionList(path, RefreshTTL, time.Hour)
	require.NoError(t, err)
	defer excl.Close()

	assert.True(t, excl.Excluded("keepass.exe"))

	// Within the TTL the cached list still applies.
	writeExclusionFile(t, dir, "slack.exe\n")
	assert.True(t, excl.Excluded("keepass.exe"))
	assert.False(t, excl.Excluded("slack.exe"))
}

func TestExclusionListWatchModeReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := writeExclusionFile(t, dir, "keepass.exe\n")

	excl, err := NewExclusionList(path, RefreshWatch, 0)
	require.NoError(t, err)
	defer excl.Close()

	assert.True(t, excl.Excluded("keepass.exe"))

	writeExclusionFile(t, dir, "slack.exe\n")

	assert.Eventually(t, func() bool {
		return excl.Excluded("slack.exe") && !excl.Excluded("keepass.exe")
	}, 2*time.Second, 10*time.Millisecond)
}

func TestShouldExclude(t *testing.T) {
	path := writeExclusionFile(t, t.TempDir(), "keepass.exe\n")
	excl, err := NewExclusionList(path, RefreshAlways, 0)
	require.NoError(t, err)
	defer excl.Close()

	tests := []struct {
		name        string
		processName string
		windowTitle string
		expected    bool
	}{
		{name: "excluded process", processName: "keepass.exe", windowTitle: "vault", expected: true},
		{name: "shell boilerplate title", processName: "explorer.exe", windowTitle: "Program Manager", expected: true},
		{name: "task switcher", processName: "explorer.exe", windowTitle: "Task Switching", expected: true},
		{name: "normal window", processName: "winword.exe", windowTitle: "report.docx - Word", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ShouldExclude(excl, tt.processName, tt.windowTitle))
		})
	}
}

func TestShouldExcludeNilExcluder(t *testing.T) {
	assert.True(t, ShouldExclude(nil, "explorer.exe", "Action Center"))
	assert.False(t, ShouldExclude(nil, "winword.exe", "report.docx"))
}
