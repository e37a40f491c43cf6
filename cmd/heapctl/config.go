package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// The prefix for configuration keys inside environment.
	envPrefix = "HEAPCTL"
	// The default name for config file.
	defaultConfigFile = "heapctl.yaml"
)

// initializeConfig reads the config file and HEAPCTL_* environment variables
// and applies them to every flag the user did not set explicitly.
func initializeConfig(cmd *cobra.Command) error {
	v := viper.New()

	path := cfgFile
	if path == "" {
		path = defaultConfigFile
	}
	if fileExists(path) {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
	} else if cfgFile != "" {
		return fmt.Errorf("config file %s: %w", cfgFile, os.ErrNotExist)
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := bindFlags(cmd, v); err != nil {
		return fmt.Errorf("bind flags failed: %w", err)
	}
	return nil
}

// bindFlags binds each cobra flag to its viper key (config file and
// environment variable).
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var errs []error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// Environment variables can't have dashes in them, so bind them to their
		// equivalent keys with underscores, e.g. --max-request to HEAPCTL_MAX_REQUEST.
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name, fmt.Sprintf("%s_%s", envPrefix, envVarSuffix)); err != nil {
				errs = append(errs, fmt.Errorf("could not bind env to flag %s: %w", f.Name, err))
				return
			}
		}

		// Apply the viper value when the flag is not set and viper has one.
		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				errs = append(errs, fmt.Errorf("could not set flag %s: %w", f.Name, err))
			}
		}
	})
	return errors.Join(errs...)
}

func fileExists(name string) bool {
	_, err := os.Stat(name)
	return err == nil
}
