// pkg/provision/config.go

package provision

import (
	"os"
	"path/filepath"

	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// Settings are the tunables read from config and flags. Everything has a
// working default; the config file is optional.
type Settings struct {
	ScriptsDir string   `mapstructure:"scripts_dir"`
	Variant    string   `mapstructure:"variant"`
	PipCommand []string `mapstructure:"pip_command"`
}

// LoadSettings reads hostprep.yaml from /etc/hostprep or the user's home
// directory, with HOSTPREP_* environment overrides.
func LoadSettings() (*Settings, error) {
	v := viper.New()
	v.SetConfigName("hostprep")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/hostprep")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".hostprep"))
	}
	v.SetEnvPrefix("HOSTPREP")
	v.AutomaticEnv()

	v.SetDefault("scripts_dir", "/usr/local/share/hostprep/scripts")
	v.SetDefault("variant", "default")
	v.SetDefault("pip_command", []string{"python3", "-m", "pip"})

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !cerr.As(err, &notFound) {
			return nil, cerr.Wrap(err, "reading hostprep config")
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, cerr.Wrap(err, "parsing hostprep config")
	}
	return &settings, nil
}
