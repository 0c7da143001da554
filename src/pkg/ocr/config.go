package ocr

import (
	"encoding/json"
	"fmt"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"

	"splitbill/src/pkg/config"
	"splitbill/src/pkg/preprocess"
)

type Config struct {
	TessdataPath string `json:"tessdata_path,omitempty"`
	Languages    string `json:"languages,omitempty"`
	MaxDimension int    `json:"max_dimension,omitempty"`
}

func DefaultValueConfig() Config {
	return Config{
		TessdataPath: "/usr/share/tesseract-ocr/5/tessdata",
		Languages:    "eng+ind",
		MaxDimension: preprocess.DefaultMaxDimension,
	}
}

// create config with default values before config gets initialized
var Cfg Config = DefaultValueConfig() // this one we use to access config values from anywhere

func init() {
	config.RegisterSection("ocr", loadConfigSection)
}

/*
loadConfigSection receives the "ocr" section of the shared config file.
Missing section or missing fields keep the default values.
*/
func loadConfigSection(raw json.RawMessage) {
	if raw == nil {
		tl.Log(tl.Info, palette.Purple, "%s config is %s, keeping %s", "ocr", "not provided", "default ocr config")
		return
	}

	localConfig := Config{}
	if err := json.Unmarshal(raw, &localConfig); err != nil {
		tl.Log(tl.Warning, palette.YellowBold, "%s config section is %s: %v", "ocr", "not parseable", err)
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

	tl.Log(tl.Info, palette.Green, "%s config was %s, using %s", "ocr", "provided", "local ocr config")
	tl.LogJSON(tl.Verbose, palette.CyanDim, fmt.Sprintf("%s configuration", config.GetPackageName()), Cfg)
}
