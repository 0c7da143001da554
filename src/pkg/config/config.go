// Package config loads the shared JSON configuration file and hands each
// package its own section. Packages register a section loader from init(),
// so this package never has to import them back.
package config

import (
	"encoding/json"
	"os"
	"runtime"
	"strings"
	"sync"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

type sectionLoader struct {
	name string
	load func(raw json.RawMessage)
}

var (
	mu      sync.Mutex
	loaders []sectionLoader
)

/*
RegisterSection registers a named config-file section and the function that
receives its raw JSON once InitializeConfig runs. A missing section invokes
the loader with nil so the package keeps its defaults.
*/
func RegisterSection(name string, load func(raw json.RawMessage)) {
	mu.Lock()
	defer mu.Unlock()
	loaders = append(loaders, sectionLoader{name: name, load: load})
}

/*
InitializeConfig reads the JSON configuration file at configPath and
distributes its top-level sections to every registered package.

A missing file is not fatal: every package keeps its default values. A file
that exists but cannot be parsed is fatal, since silently ignoring a broken
config is worse than refusing to start.
*/
func InitializeConfig(configPath string) {
	trimmedPath := strings.TrimSpace(configPath)
	if trimmedPath == "" {
		trimmedPath = "./cfg/config.json"
	}

	fileBytes, readErr := os.ReadFile(trimmedPath)
	if readErr != nil {
		tl.Log(
			tl.Info, palette.Purple, "Config file '%s' is %s, using %s",
			trimmedPath, "not readable", "default values everywhere",
		)
		distribute(nil)
		return
	}

	var sections map[string]json.RawMessage
	parseErr := json.Unmarshal(fileBytes, &sections)
	xerr.QuitIfError(parseErr, "Unable to parse config file "+trimmedPath)

	tl.Log(tl.Info, palette.Green, "Loaded config from '%s' (%d sections)", trimmedPath, len(sections))
	distribute(sections)
}

func distribute(sections map[string]json.RawMessage) {
	mu.Lock()
	defer mu.Unlock()
	for _, loader := range loaders {
		if sections == nil {
			loader.load(nil)
			continue
		}
		loader.load(sections[loader.name])
	}
}

/*
CheckIfEnvVarsPresent warns about every missing environment variable in the
list. It does not exit: some entrypoints list the union of variables their
optional providers might need.
*/
func CheckIfEnvVarsPresent(names ...string) {
	for _, name := range names {
		if strings.TrimSpace(os.Getenv(name)) == "" {
			tl.Log(tl.Warning, palette.YellowBold, "Environment variable %s is %s", name, "not set")
		}
	}
}

/*
GetPackageName returns the package name of the caller, for log messages that
want to say which package is talking without hardcoding the name.
*/
func GetPackageName() string {
	pc, _, _, ok := runtime.Caller(1)
	if !ok {
		return "unknown"
	}
	fullName := runtime.FuncForPC(pc).Name() // e.g. splitbill/src/pkg/ocr.initConfig
	lastSlash := strings.LastIndex(fullName, "/")
	tail := fullName[lastSlash+1:]
	if dot := strings.Index(tail, "."); dot > 0 {
		return tail[:dot]
	}
	return tail
}
