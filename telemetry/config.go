package telemetry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	homeDir   = ".cascade"
	fileName  = "config"
	fileType  = "yaml"
	envPrefix = "CASCADE"

	keyEnabled = "telemetry.enabled"
	keySink    = "telemetry.sink"
)

// Dir returns the path to the user-level config directory (~/.cascade/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", homeDir)
	}
	return filepath.Join(home, homeDir)
}

// FilePath returns the full path to the config file (~/.cascade/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// LoadConfig initializes Viper to read from the config file and environment.
// Reporting is opt-in: telemetry.enabled defaults to false and can be
// flipped either in the file or via CASCADE_TELEMETRY_ENABLED.
func LoadConfig() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(envPrefix)
	// Dotted keys must map to underscored env names, so that
	// telemetry.enabled is reachable as CASCADE_TELEMETRY_ENABLED.
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	viper.SetDefault(keyEnabled, false)
	viper.SetDefault(keySink, filepath.Join(Dir(), "events.jsonl"))

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Enabled reports whether the user opted in to event recording.
func Enabled() bool {
	return viper.GetBool(keyEnabled)
}

// SetEnabled writes the opt-in flag and saves the config file.
func SetEnabled(on bool) error {
	if err := os.MkdirAll(Dir(), 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", Dir(), err)
	}

	viper.Set(keyEnabled, on)

	configFile := FilePath()
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// FromConfig builds a Recorder honoring user configuration: a FileSink at
// the configured path when enabled, a Discard handler otherwise. Call
// LoadConfig first.
func FromConfig(opts ...RecorderOption) *Recorder {
	if !Enabled() {
		return NewRecorder(Discard{}, opts...)
	}
	return NewRecorder(NewFileSink(viper.GetString(keySink)), opts...)
}
