package gateway

import (
	"encoding/json"
	"fmt"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"

	"splitbill/src/pkg/config"
)

type Config struct {
	URL            string `json:"url,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"`
	BearerToken    string `json:"bearer_token,omitempty"`
}

func DefaultValueConfig() Config {
	return Config{
		URL:            "http://127.0.0.1:8401/api/parse-receipt",
		TimeoutSeconds: 60,
	}
}

// create config with default values before config gets initialized
var Cfg Config = DefaultValueConfig()

func init() {
	config.RegisterSection("gateway", loadConfigSection)
}

func loadConfigSection(raw json.RawMessage) {
	if raw == nil {
		tl.Log(tl.Info, palette.Purple, "%s config is %s, keeping %s", "gateway", "not provided", "default gateway config")
		return
	}

	localConfig := Config{}
	if err := json.Unmarshal(raw, &localConfig); err != nil {
		tl.Log(tl.Warning, palette.YellowBold, "%s config section is %s: %v", "gateway", "not parseable", err)
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

	tl.Log(tl.Info, palette.Green, "%s config was %s, using %s", "gateway", "provided", "local gateway config")
	tl.LogJSON(tl.Verbose, palette.CyanDim, fmt.Sprintf("%s configuration", config.GetPackageName()), Cfg)
}
