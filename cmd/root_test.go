package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// executeCommand runs the command tree with args and returns combined output.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	a := &app{}
	root := newRootCmd(a)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	a.teardown()
	return out.String(), err
}

// isolate runs the test from an empty working directory with no user config.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	return dir
}

func writeTestConfig(t *testing.T, dir, soundsDir string, extra string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	content := "sounds_dir: " + soundsDir + "\nui:\n  style: notty\n" + extra
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRoot_FreshRunPrintsInstructions(t *testing.T) {
	dir := isolate(t)
	soundsDir := filepath.Join(dir, "public", "sounds")
	cfgPath := writeTestConfig(t, dir, soundsDir, "")

	out, err := executeCommand(t, "", "--config", cfgPath)
	require.NoError(t, err)

	require.Contains(t, out, "Mindshift Ambient Sounds Downloader")
	require.Contains(t, out, "publicly accessible")
	require.Contains(t, out, "Manual download instructions")
	require.NotContains(t, out, "re-download")

	info, err := os.Stat(soundsDir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestRoot_DefaultSoundsDirRelativeToWorkingDir(t *testing.T) {
	dir := isolate(t)

	_, err := executeCommand(t, "", "--log-level", "error")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "public", "sounds"))
	require.NoError(t, err)
}

func TestRoot_ExistingFilesDeclined(t *testing.T) {
	dir := isolate(t)
	soundsDir := filepath.Join(dir, "sounds")
	require.NoError(t, os.MkdirAll(soundsDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(soundsDir, "rain.mp3"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(soundsDir, "readme.txt"), []byte("x"), 0644))
	cfgPath := writeTestConfig(t, dir, soundsDir, "fallbacks: true\n")

	out, err := executeCommand(t, "n\n", "--config", cfgPath)
	require.NoError(t, err)

	require.Contains(t, out, "Found 1 existing audio files:")
	require.Contains(t, out, "rain.mp3")
	require.NotContains(t, out, "readme.txt")
	require.Contains(t, out, "Skipping download.")
	require.NotContains(t, out, "Downloading")
}

func TestRoot_RejectsArguments(t *testing.T) {
	isolate(t)
	_, err := executeCommand(t, "", "extra")
	require.Error(t, err)
}

func TestRoot_InvalidConfig(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timeout: 0s\n"), 0644))

	_, err := executeCommand(t, "", "--config", path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "timeout")
}

func TestRoot_InvalidLogLevelFlag(t *testing.T) {
	isolate(t)
	_, err := executeCommand(t, "", "--log-level", "shouty")
	require.Error(t, err)
}

func TestURL(t *testing.T) {
	out, err := executeCommand(t, "", "url", "abc123")
	require.NoError(t, err)
	require.Equal(t, "https://drive.google.com/uc?export=download&id=abc123\n", out)
}

func TestURL_RequiresOneArg(t *testing.T) {
	_, err := executeCommand(t, "", "url")
	require.Error(t, err)
}

func TestSounds_ListsCatalog(t *testing.T) {
	dir := isolate(t)
	soundsDir := filepath.Join(dir, "sounds")
	require.NoError(t, os.MkdirAll(soundsDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(soundsDir, "ocean.mp3"), []byte("x"), 0644))
	cfgPath := writeTestConfig(t, dir, soundsDir, "drive:\n  file_ids:\n    rain: abc123\n")

	out, err := executeCommand(t, "", "--config", cfgPath, "sounds")
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Contains(t, lines[0], soundsDir)

	var rainLine, oceanLine, windLine string
	for _, line := range lines {
		switch {
		case strings.Contains(line, "rain.mp3"):
			rainLine = line
		case strings.Contains(line, "ocean.mp3"):
			oceanLine = line
		case strings.Contains(line, "wind.mp3"):
			windLine = line
		}
	}
	require.Contains(t, rainLine, "1 source(s)")
	require.Contains(t, rainLine, "drive:abc123")
	require.Contains(t, oceanLine, "0 source(s)")
	require.Contains(t, oceanLine, "✓")
	require.NotContains(t, windLine, "✓")
}

func TestSounds_UnknownFileIDName(t *testing.T) {
	dir := isolate(t)
	cfgPath := writeTestConfig(t, dir, filepath.Join(dir, "sounds"), "drive:\n  file_ids:\n    thunder: x\n")

	_, err := executeCommand(t, "", "--config", cfgPath, "sounds")
	require.Error(t, err)
	require.Contains(t, err.Error(), "thunder")
}

func TestConfigInit(t *testing.T) {
	dir := isolate(t)

	out, err := executeCommand(t, "", "config", "init")
	require.NoError(t, err)
	require.Contains(t, out, "Wrote .soundfetch.yaml")

	data, err := os.ReadFile(filepath.Join(dir, ".soundfetch.yaml"))
	require.NoError(t, err)
	require.Contains(t, string(data), "sounds_dir: public/sounds")

	_, err = executeCommand(t, "", "config", "init")
	require.Error(t, err, "existing file must not be overwritten")

	_, err = executeCommand(t, "", "config", "init", "--force")
	require.NoError(t, err)
}

func TestConfigInit_CustomPath(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "etc", "soundfetch.yaml")

	_, err := executeCommand(t, "", "config", "init", path)
	require.NoError(t, err)
	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestConfigShow(t *testing.T) {
	dir := isolate(t)
	cfgPath := writeTestConfig(t, dir, "assets", "timeout: 10s\n")

	out, err := executeCommand(t, "", "--config", cfgPath, "config", "show")
	require.NoError(t, err)
	require.Contains(t, out, "# loaded from "+cfgPath)
	require.Contains(t, out, "sounds_dir: assets")
	require.Contains(t, out, "timeout: 10s")
	require.Contains(t, out, "style: notty")
}

func TestConfigShow_Defaults(t *testing.T) {
	isolate(t)
	out, err := executeCommand(t, "", "config", "show")
	require.NoError(t, err)
	require.Contains(t, out, "# loaded from defaults")
	require.Contains(t, out, "timeout: 30s")
}
