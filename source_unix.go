//go:build unix

package termevent

import "github.com/peco/termevent/internal/source"

func openPlatformSource() (source.Source, error) {
	return source.OpenTTY()
}
