package config

import (
	"fmt"
	"path/filepath"

	"github.com/go-ini/ini"
	homedir "github.com/mitchellh/go-homedir"
)

// DefaultConfigFile is checked when --config was not given, mirroring the
// historical "examples/fathom_config.ini" convention: a per-user file
// under the home directory, not a hardcoded absolute path.
const DefaultConfigFile = ".config/fathom/config.ini"

// LoadFileDefaults reads an optional INI file and overlays any settings it
// carries onto c, only where the corresponding flag was left at its zero
// value — CLI flags always win over the file. path == "" looks up
// DefaultConfigFile under the user's home directory; if that file is also
// absent, it is not an error and only DefaultThreads is applied.
func LoadFileDefaults(path string, c *Common) error {
	if path == "" {
		home, err := homedir.Dir()
		if err != nil {
			if c.Threads <= 0 {
				c.Threads = DefaultThreads
			}
			return nil
		}
		path = filepath.Join(home, DefaultConfigFile)
	}

	cfg, err := ini.LooseLoad(path)
	if err != nil {
		return fmt.Errorf("loading config file %s: %w", path, err)
	}

	sec := cfg.Section("fathom")
	if c.Threads == 0 && sec.HasKey("threads") {
		if n, err := sec.Key("threads").Int(); err == nil {
			c.Threads = n
		}
	}
	if !c.NoProgressBar && sec.HasKey("no_progress_bar") {
		c.NoProgressBar, _ = sec.Key("no_progress_bar").Bool()
	}
	if !c.NoBanner && sec.HasKey("no_banner") {
		c.NoBanner, _ = sec.Key("no_banner").Bool()
	}
	if !c.ExitOnConnectionErrors && sec.HasKey("exit_on_connection_errors") {
		c.ExitOnConnectionErrors, _ = sec.Key("exit_on_connection_errors").Bool()
	}
	if c.Output == "" && sec.HasKey("output") {
		c.Output = sec.Key("output").String()
	}

	// -threads/-t now default to 0 (unset) so this override is reachable;
	// apply the real default last, after both the flag and the file had a
	// chance to set it.
	if c.Threads <= 0 {
		c.Threads = DefaultThreads
	}

	return nil
}
