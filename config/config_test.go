package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/peco/termevent/event"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.False(t, cfg.Mouse)
	require.Empty(t, cfg.KeyboardEnhancement)
	require.Equal(t, event.NewRune('c', event.ModControl), cfg.QuitKey.KeyEvent)
	require.NoError(t, cfg.Validate())
}

func TestReadRCYAML(t *testing.T) {
	txt := `
Mouse: true
FocusChange: true
KeyboardEnhancement:
  - disambiguate-escape-codes
  - report-event-types
QuitKey: Esc
`
	cfg := Default()
	require.NoError(t, yaml.Unmarshal([]byte(txt), cfg), "Unmarshalling YAML config should succeed")
	require.True(t, cfg.Mouse)
	require.False(t, cfg.BracketedPaste)
	require.True(t, cfg.FocusChange)
	require.Equal(t, event.NewKey(event.KeyEsc, event.ModNone), cfg.QuitKey.KeyEvent)

	flags, err := cfg.KeyboardEnhancement.Flags()
	require.NoError(t, err)
	require.Equal(t, event.DisambiguateEscapeCodes|event.ReportEventTypes, flags)
}

func TestReadRCInvalidKey(t *testing.T) {
	cfg := Default()
	err := yaml.Unmarshal([]byte("QuitKey: C-NoSuchKey"), cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "NoSuchKey")
}

func TestKey(t *testing.T) {
	var k Key
	require.NoError(t, k.UnmarshalFlag("M-x"))

	require.True(t, k.Matches(event.NewRune('x', event.ModAlt)))
	require.False(t, k.Matches(event.NewRune('x', event.ModNone)))
	require.False(t, k.Matches(event.FocusGainedEvent{}))

	release := event.NewRune('x', event.ModAlt)
	release.Kind = event.KindRelease
	require.False(t, k.Matches(release), "releases do not count")

	require.Error(t, k.UnmarshalFlag(""))
}

func TestEnhancements(t *testing.T) {
	flags, err := Enhancements{"report-alternate-keys", " report-associated-text "}.Flags()
	require.NoError(t, err)
	require.Equal(t, event.ReportAlternateKeys|event.ReportAssociatedText, flags)

	_, err = Enhancements{"bogus"}.Flags()
	require.Error(t, err)
	require.Contains(t, err.Error(), "bogus")
}

func TestReadFilename(t *testing.T) {
	dir := t.TempDir()

	t.Run("yaml", func(t *testing.T) {
		file := filepath.Join(dir, "config.yaml")
		require.NoError(t, os.WriteFile(file, []byte("BracketedPaste: true\nCursorOnStart: true\n"), 0o644))

		cfg := Default()
		require.NoError(t, cfg.ReadFilename(file))
		require.True(t, cfg.BracketedPaste)
		require.True(t, cfg.CursorOnStart)
		require.Equal(t, event.NewRune('c', event.ModControl), cfg.QuitKey.KeyEvent, "unset fields keep their defaults")
	})
	t.Run("json", func(t *testing.T) {
		file := filepath.Join(dir, "config.json")
		require.NoError(t, os.WriteFile(file, []byte(`{"Mouse": true, "QuitKey": "q"}`), 0o644))

		cfg := Default()
		require.NoError(t, cfg.ReadFilename(file))
		require.True(t, cfg.Mouse)
		require.Equal(t, event.NewRune('q', event.ModNone), cfg.QuitKey.KeyEvent)
	})
	t.Run("invalid flag", func(t *testing.T) {
		file := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(file, []byte("KeyboardEnhancement: [nope]\n"), 0o644))

		require.Error(t, Default().ReadFilename(file))
	})
	t.Run("missing", func(t *testing.T) {
		require.Error(t, Default().ReadFilename(filepath.Join(dir, "nope.yaml")))
	})
}

func TestLocateRcfile(t *testing.T) {
	dir := t.TempDir()

	homedirFunc = func() (string, error) {
		return dir, nil
	}

	expected := []string{
		filepath.Join(dir, "termevent"),
		filepath.Join(dir, "1", "termevent"),
		filepath.Join(dir, "2", "termevent"),
		filepath.Join(dir, "3", "termevent"),
	}

	i := 0
	locater := LocatorFunc(func(dir string) (string, error) {
		t.Logf("looking for file in %s", dir)
		require.True(t, i <= len(expected)-1, "Got %d directories, only have %d", i+1, len(expected))
		require.Equal(t, expected[i], dir, "Expected %s, got %s", expected[i], dir)
		i++
		return "", errors.New("error: Not found")
	})

	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_CONFIG_DIRS", strings.Join(
		[]string{
			filepath.Join(dir, "1"),
			filepath.Join(dir, "2"),
			filepath.Join(dir, "3"),
		},
		fmt.Sprintf("%c", filepath.ListSeparator),
	))

	_, err := LocateRcfile(locater)
	require.Error(t, err)
	require.Equal(t, len(expected), i)

	expected[0] = filepath.Join(dir, ".config", "termevent")
	t.Setenv("XDG_CONFIG_HOME", "")
	i = 0
	_, err = LocateRcfile(locater)
	require.Error(t, err)
	require.Equal(t, len(expected), i)
}

func TestLocateRcfileIgnoresDotDir(t *testing.T) {
	dir := t.TempDir()

	rcDir := filepath.Join(dir, ".termevent")
	require.NoError(t, os.MkdirAll(rcDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(rcDir, "config.yaml"), []byte("{}"), 0o644))

	homedirFunc = func() (string, error) {
		return dir, nil
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_DIRS", "")

	_, err := LocateRcfile(DefaultConfigLocator)
	require.Error(t, err, "~/.termevent is not a search location")
}

func TestLocateRcfileYAML(t *testing.T) {
	dir := t.TempDir()

	rcDir := filepath.Join(dir, ".config", "termevent")
	require.NoError(t, os.MkdirAll(rcDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(rcDir, "config.yml"), []byte("{}"), 0o644))

	homedirFunc = func() (string, error) {
		return dir, nil
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_DIRS", "")

	file, err := LocateRcfile(DefaultConfigLocator)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(rcDir, "config.yml"), file)
}
