package llm

import (
	"encoding/json"
	"fmt"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"

	"splitbill/src/pkg/config"
)

type Config struct {
	Model           string `json:"model,omitempty"`
	ReasoningEffort string `json:"reasoning_effort,omitempty"`
	MaxOutputTokens int    `json:"max_output_tokens,omitempty"`
}

func DefaultValueConfig() Config {
	return Config{
		Model:           "gpt-5-mini",
		ReasoningEffort: "low",
		MaxOutputTokens: 20000,
	}
}

// create config with default values before config gets initialized
var Cfg Config = DefaultValueConfig() // this one we use to access config values from anywhere

func init() {
	config.RegisterSection("llm", loadConfigSection)
}

func loadConfigSection(raw json.RawMessage) {
	if raw == nil {
		tl.Log(tl.Info, palette.Purple, "%s config is %s, keeping %s", "llm", "not provided", "default llm config")
		return
	}

	localConfig := Config{}
	if err := json.Unmarshal(raw, &localConfig); err != nil {
		tl.Log(tl.Warning, palette.YellowBold, "%s config section is %s: %v", "llm", "not parseable", err)
		return
	}

	defaultConfig := DefaultValueConfig()
	Cfg = localConfig

	tl.ApplyDefaults(&Cfg, defaultConfig, func(field string, defVal any) {
		tl.Log(
			tl.Info, palette.Purple,
			"%s field is %s in %s configuration. Using default value: %v",
			field, "missing", config.GetPackageName(), tl.PrettyForStderr(defVal),
		)
	})

	tl.Log(tl.Info, palette.Green, "%s config was %s, using %s", "llm", "provided", "local llm config")
	tl.LogJSON(tl.Verbose, palette.CyanDim, fmt.Sprintf("%s configuration", config.GetPackageName()), Cfg)
}
