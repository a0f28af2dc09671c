package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/peco/termevent/event"
	"github.com/peco/termevent/internal/util"
	"github.com/pkg/errors"
)

// DefaultQuitKey is the key that ends an event dump when none is configured.
const DefaultQuitKey = "C-c"

// Key is a key specification such as "C-c" or "Esc", checked when it is
// decoded.
type Key struct {
	event.KeyEvent
}

func (k *Key) unmarshal(s string) error {
	ev, err := event.ParseKey(s)
	if err != nil {
		return errors.Wrapf(err, "invalid key %q", s)
	}
	k.KeyEvent = ev
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler (used by the YAML decoder).
func (k *Key) UnmarshalText(b []byte) error {
	return k.unmarshal(string(b))
}

// UnmarshalFlag implements go-flags Unmarshaler.
func (k *Key) UnmarshalFlag(s string) error {
	return k.unmarshal(s)
}

// Matches reports whether ev is a press of this key.
func (k Key) Matches(ev event.Event) bool {
	kev, ok := ev.(event.KeyEvent)
	if !ok || kev.Kind == event.KindRelease {
		return false
	}
	return kev.Code == k.Code && kev.Rune == k.Rune && kev.Modifiers == k.Modifiers
}

// Enhancements lists kitty keyboard protocol flags by name, for example
// "disambiguate-escape-codes".
type Enhancements []string

// Flags combines the named flags.
func (e Enhancements) Flags() (event.KeyboardEnhancementFlags, error) {
	var flags event.KeyboardEnhancementFlags
	for _, name := range e {
		f, ok := event.ParseKeyboardEnhancementFlag(strings.TrimSpace(name))
		if !ok {
			return 0, errors.Errorf("invalid keyboard enhancement flag %q", name)
		}
		flags |= f
	}
	return flags, nil
}

// Config holds the terminal modes a host enables before reading events.
type Config struct {
	Mouse               bool         `json:"Mouse" yaml:"Mouse"`
	BracketedPaste      bool         `json:"BracketedPaste" yaml:"BracketedPaste"`
	FocusChange         bool         `json:"FocusChange" yaml:"FocusChange"`
	KeyboardEnhancement Enhancements `json:"KeyboardEnhancement" yaml:"KeyboardEnhancement"`

	// QuitKey ends the event loop of the dump tool.
	QuitKey Key `json:"QuitKey" yaml:"QuitKey"`

	// CursorOnStart reports the cursor position before the first event.
	CursorOnStart bool `json:"CursorOnStart" yaml:"CursorOnStart"`
}

var homedirFunc = util.Homedir

// Default returns a Config with no optional modes enabled.
func Default() *Config {
	var c Config
	if err := c.QuitKey.unmarshal(DefaultQuitKey); err != nil {
		panic(err)
	}
	return &c
}

// Validate checks the fields that the decoder does not.
func (c *Config) Validate() error {
	if _, err := c.KeyboardEnhancement.Flags(); err != nil {
		return err
	}
	return nil
}

// ReadFilename reads the config from the given file. JSON files are read
// by the same decoder, as JSON is a subset of YAML.
func (c *Config) ReadFilename(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to open file %s", filename)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(c); err != nil {
		return errors.Wrapf(err, "failed to decode %s", filename)
	}
	return c.Validate()
}

// Locator locates a config file in a given directory.
type Locator interface {
	Locate(string) (string, error)
}

// LocatorFunc is a function that implements Locator.
type LocatorFunc func(string) (string, error)

// Locate calls the underlying function.
func (f LocatorFunc) Locate(dir string) (string, error) {
	return f(dir)
}

var configFilenames = []string{"config.yaml", "config.yml", "config.json"}

// DefaultConfigLocator looks for config.yaml, config.yml or config.json
// in the given directory.
var DefaultConfigLocator = LocatorFunc(func(dir string) (string, error) {
	for _, basename := range configFilenames {
		file := filepath.Join(dir, basename)
		if _, err := os.Stat(file); err == nil {
			return file, nil
		}
	}
	return "", errors.Errorf("config file not found in %s", dir)
})

// searchDirs lists the directories a settings file may live in, most
// specific first: the user's config directory, then each system one.
func searchDirs() []string {
	var dirs []string
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		dirs = append(dirs, dir)
	} else if home, err := homedirFunc(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config"))
	}
	for _, dir := range filepath.SplitList(os.Getenv("XDG_CONFIG_DIRS")) {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}
	for i, dir := range dirs {
		dirs[i] = filepath.Join(dir, "termevent")
	}
	return dirs
}

// LocateRcfile returns the first file locater finds in the termevent
// directory under $XDG_CONFIG_HOME (~/.config when unset) or under one of
// the $XDG_CONFIG_DIRS entries.
func LocateRcfile(locater Locator) (string, error) {
	dirs := searchDirs()
	for _, dir := range dirs {
		if file, err := locater.Locate(dir); err == nil {
			return file, nil
		}
	}
	return "", errors.Errorf("config file not found in %d directories", len(dirs))
}
