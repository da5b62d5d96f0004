package config

import (
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-items/internal/errors"
)

// EnvPrefix prefixes every environment override, e.g. RPG_ITEMS_MAX_LEVEL
const EnvPrefix = "RPG_ITEMS_"

// Load builds rules from the defaults, a YAML overlay at path (optional) and
// environment overrides, in that order. Tables in the file are merged into
// the default tables key by key.
func Load(path string) (*Rules, error) {
	rules := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read rules file %s", path)
		}
		if err := yaml.Unmarshal(data, rules); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse rules file")
		}
	}

	if err := env.ParseWithOptions(rules, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse rules environment")
	}

	if err := rules.Validate(); err != nil {
		return nil, err
	}

	return rules, nil
}
