// Package paths decides where rankaroo keeps its config.yaml and its data
// files. Each directory is the first non-empty entry of a precedence chain;
// the resolved path is absolute and reported together with the link of the
// chain that produced it.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultDataDirName is the data directory created under the working
// directory when nothing else selects one.
const DefaultDataDirName = ".rankaroo-db"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "RANKAROO_CONFIG_DIR"
	EnvDataDir   = "RANKAROO_DATA_DIR"
)

const appName = "rankaroo"

// Source names the link of a precedence chain a directory came from.
type Source string

const (
	SourceFlag     Source = "flag"
	SourceGlobal   Source = "global"
	SourceConfig   Source = "config"
	SourceEnv      Source = "env"
	SourcePlatform Source = "platform"
	SourceCWD      Source = "cwd"
)

// userDirs holds the host lookups; tests replace them.
var userDirs = struct {
	goos    string
	home    func() (string, error)
	appData func() (string, error)
	getwd   func() (string, error)
}{
	goos:    runtime.GOOS,
	home:    os.UserHomeDir,
	appData: os.UserConfigDir,
	getwd:   os.Getwd,
}

// platformRoot describes where a kind of directory lives on Linux; other
// systems keep both kinds under os.UserConfigDir.
type platformRoot struct {
	xdgVar   string
	fallback []string // below $HOME
}

var (
	configRoot = platformRoot{xdgVar: "XDG_CONFIG_HOME", fallback: []string{".config"}}
	dataRoot   = platformRoot{xdgVar: "XDG_DATA_HOME", fallback: []string{".local", "share"}}
)

func (p platformRoot) dir() (string, error) {
	if userDirs.goos != "linux" {
		base, err := userDirs.appData()
		if err != nil {
			return "", err
		}
		return filepath.Join(base, appName), nil
	}
	if xdg := os.Getenv(p.xdgVar); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := userDirs.home()
	if err != nil {
		return "", err
	}
	return filepath.Join(append(append([]string{home}, p.fallback...), appName)...), nil
}

// DefaultConfigDir returns the platform configuration directory:
// $XDG_CONFIG_HOME/rankaroo or ~/.config/rankaroo on Linux, the user config
// directory elsewhere.
func DefaultConfigDir() (string, error) { return configRoot.dir() }

// DefaultDataDir returns the platform data directory used by --global:
// $XDG_DATA_HOME/rankaroo or ~/.local/share/rankaroo on Linux, the user config
// directory elsewhere.
func DefaultDataDir() (string, error) { return dataRoot.dir() }

// link is one entry of a precedence chain. Exactly one of dir and lookup is
// used; a lookup runs only when every earlier link was empty.
type link struct {
	source Source
	dir    string
	lookup func() (string, error)
}

func resolve(chain []link) (string, Source, error) {
	for _, l := range chain {
		dir := l.dir
		if l.lookup != nil {
			var err error
			if dir, err = l.lookup(); err != nil {
				return "", l.source, err
			}
		}
		if dir == "" {
			continue
		}
		abs, err := filepath.Abs(dir)
		return abs, l.source, err
	}
	return "", "", os.ErrNotExist
}

// ResolveConfigDir picks the configuration directory:
// --config-dir, then RANKAROO_CONFIG_DIR, then the platform directory.
func ResolveConfigDir(flag string) (string, Source, error) {
	return resolve([]link{
		{source: SourceFlag, dir: flag},
		{source: SourceEnv, dir: os.Getenv(EnvConfigDir)},
		{source: SourcePlatform, lookup: DefaultConfigDir},
	})
}

// DataDirInput collects the settings that can choose a data directory.
type DataDirInput struct {
	Flag   string // --data-dir
	Global bool   // --global
	Config string // data_dir in config.yaml
}

// ResolveDataDir picks the data directory: --data-dir, then --global (the
// platform directory), then data_dir from config.yaml, then RANKAROO_DATA_DIR,
// then .rankaroo-db under the working directory.
func ResolveDataDir(in DataDirInput) (string, Source, error) {
	chain := []link{{source: SourceFlag, dir: in.Flag}}
	if in.Global {
		chain = append(chain, link{source: SourceGlobal, lookup: DefaultDataDir})
	}
	chain = append(chain,
		link{source: SourceConfig, dir: in.Config},
		link{source: SourceEnv, dir: os.Getenv(EnvDataDir)},
		link{source: SourceCWD, lookup: func() (string, error) {
			cwd, err := userDirs.getwd()
			if err != nil {
				return "", err
			}
			return filepath.Join(cwd, DefaultDataDirName), nil
		}},
	)
	return resolve(chain)
}
