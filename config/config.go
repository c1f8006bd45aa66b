package config

import (
	"os"

	"github.com/pkg/errors"
	"github.com/wormhole-foundation/stone-prover-sdk/types"
	"gopkg.in/yaml.v3"
)

type Binaries struct {
	CairoRun string `yaml:"cairo_run"`
	Prover   string `yaml:"prover"`
	Verifier string `yaml:"verifier"`
}

type WebAPI struct {
	Listen string `yaml:"listen"`
}

// Config is shared by every command. Layout and verifier are kept as text so
// that Validate can report them by name.
type Config struct {
	Layout               string             `yaml:"layout"`
	Verifier             string             `yaml:"verifier"`
	AllowMissingBuiltins bool               `yaml:"allow_missing_builtins"`
	Binaries             Binaries           `yaml:"binaries"`
	ProverConfig         types.ProverConfig `yaml:"prover_config"`
	WebAPI               WebAPI             `yaml:"web_api"`
}

func Default() Config {
	return Config{
		Layout:               types.LayoutStarknetWithKeccak.String(),
		Verifier:             types.VerifierStone.String(),
		AllowMissingBuiltins: false,
		Binaries: Binaries{
			CairoRun: "cairo-run",
			Prover:   "cpu_air_prover",
			Verifier: "cpu_air_verifier",
		},
		ProverConfig: types.DefaultProverConfig(),
		WebAPI: WebAPI{
			Listen: "0.0.0.0:8010",
		},
	}
}

// Load reads path on top of the defaults. Keys missing from the file keep
// their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if _, err := c.ParsedLayout(); err != nil {
		return err
	}
	if _, err := c.ParsedVerifier(); err != nil {
		return err
	}
	if c.Binaries.CairoRun == "" || c.Binaries.Prover == "" || c.Binaries.Verifier == "" {
		return errors.New("binaries must not be empty")
	}
	if c.WebAPI.Listen == "" {
		return errors.New("web_api.listen must not be empty")
	}
	return nil
}

func (c *Config) ParsedLayout() (types.Layout, error) {
	return types.ParseLayout(c.Layout)
}

func (c *Config) ParsedVerifier() (types.Verifier, error) {
	return types.ParseVerifier(c.Verifier)
}
