package email

import (
	"encoding/json"
	"fmt"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"

	"splitbill/src/pkg/config"
)

type Config struct {
	Provider      string `json:"provider,omitempty"`
	SenderAddress string `json:"sender_address,omitempty"`
	SendEmails    bool   `json:"send_emails,omitempty"` // dry-run guard, off by default
}

func DefaultValueConfig() Config {
	return Config{
		Provider:      string(ProviderMailgun),
		SenderAddress: "",
		SendEmails:    false,
	}
}

// create config with default values before config gets initialized
var Cfg Config = DefaultValueConfig() // this one we use to access config values from anywhere

func init() {
	config.RegisterSection("email", loadConfigSection)
}

func loadConfigSection(raw json.RawMessage) {
	if raw == nil {
		tl.Log(tl.Info, palette.Purple, "%s config is %s, keeping %s", "email", "not provided", "default email config")
		return
	}

	localConfig := Config{}
	if err := json.Unmarshal(raw, &localConfig); err != nil {
		tl.Log(tl.Warning, palette.YellowBold, "%s config section is %s: %v", "email", "not parseable", err)
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

	tl.Log(tl.Info, palette.Green, "%s config was %s, using %s", "email", "provided", "local email config")
	tl.LogJSON(tl.Verbose, palette.CyanDim, fmt.Sprintf("%s configuration", config.GetPackageName()), Cfg)
}
