// Package config loads the configuration of the car rental and
// shortcut maze experiments from an optional file and the environment
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/samuelfneumann/tabular/agent"
	"github.com/samuelfneumann/tabular/agent/tabular/dyna"
	"github.com/samuelfneumann/tabular/dp"
	"github.com/samuelfneumann/tabular/environment/carrental"
	"github.com/samuelfneumann/tabular/environment/shortcutmaze"
	"github.com/samuelfneumann/tabular/experiment"
)

// EnvPrefix prefixes environment variables that override configuration
// values, e.g. TABULAR_SHORTCUT_RUNS
const EnvPrefix = "TABULAR"

// Config is the root configuration struct containing all settings
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	CarRental CarRentalConfig `mapstructure:"car_rental"`
	Shortcut  ShortcutConfig  `mapstructure:"shortcut"`
	Output    OutputConfig    `mapstructure:"output"`
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // trace, debug, info, ...
	Format     string `mapstructure:"format"`      // json or text
	OutputPath string `mapstructure:"output_path"` // file path, stdout or stderr
}

// OutputConfig determines where results are written
type OutputConfig struct {
	Dir      string `mapstructure:"dir"`
	Progress bool   `mapstructure:"progress"`
}

// CarRentalConfig configures the car rental problem and policy
// iteration on it
type CarRentalConfig struct {
	Requests     []float64 `mapstructure:"requests"`
	Returns      []float64 `mapstructure:"returns"`
	MaxCars      int       `mapstructure:"max_cars"`
	MaxMoves     int       `mapstructure:"max_moves"`
	RentalReward float64   `mapstructure:"rental_reward"`
	MoveCost     float64   `mapstructure:"move_cost"`
	Modified     bool      `mapstructure:"modified"`
	ParkingLimit int       `mapstructure:"parking_limit"`
	ParkingCost  float64   `mapstructure:"parking_cost"`

	Discount            float64 `mapstructure:"discount"`
	Threshold           float64 `mapstructure:"threshold"`
	MaxIterations       int     `mapstructure:"max_iterations"`
	MaxPolicyIterations int     `mapstructure:"max_policy_iterations"`
	Delta               string  `mapstructure:"delta"` // sweep_max or last_column
}

// ShortcutConfig configures the shortcut maze experiments
type ShortcutConfig struct {
	Agents      []string `mapstructure:"agents"`
	Runs        int      `mapstructure:"runs"`
	Steps       int      `mapstructure:"steps"`
	SwitchStep  int      `mapstructure:"switch_step"`
	Parallelism int      `mapstructure:"parallelism"`
	Seed        uint64   `mapstructure:"seed"`

	Epsilon       float64 `mapstructure:"epsilon"`
	LearningRate  float64 `mapstructure:"learning_rate"`
	Discount      float64 `mapstructure:"discount"`
	PlanningSteps int     `mapstructure:"planning_steps"`
	Kappa         float64 `mapstructure:"kappa"`
}

// Load loads configuration from a file and environment variables. An
// empty path uses only defaults and environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("load: failed to read config file: %w",
				err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("load: failed to unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	return &c, nil
}

// Validate ensures that the Config is valid
func (c *Config) Validate() error {
	if _, err := c.CarRental.Problem(); err != nil {
		return fmt.Errorf("validate: car_rental: %w", err)
	}
	if _, err := c.CarRental.Solver(); err != nil {
		return fmt.Errorf("validate: car_rental: %w", err)
	}

	variants, err := c.Shortcut.Variants()
	if err != nil {
		return fmt.Errorf("validate: shortcut: %w", err)
	}
	for _, variant := range variants {
		if _, err := c.Shortcut.Experiment(variant); err != nil {
			return fmt.Errorf("validate: shortcut: %w", err)
		}
	}
	return nil
}

// Problem returns the car rental problem described by c
func (c CarRentalConfig) Problem() (carrental.Config, error) {
	if len(c.Requests) != 2 || len(c.Returns) != 2 {
		return carrental.Config{}, fmt.Errorf("problem: requests and " +
			"returns need one rate per location")
	}

	p := carrental.Config{
		Requests:     [2]float64{c.Requests[0], c.Requests[1]},
		Returns:      [2]float64{c.Returns[0], c.Returns[1]},
		MaxCars:      c.MaxCars,
		MaxMoves:     c.MaxMoves,
		RentalReward: c.RentalReward,
		MoveCost:     c.MoveCost,
		Modified:     c.Modified,
		ParkingLimit: c.ParkingLimit,
		ParkingCost:  c.ParkingCost,
	}
	if err := p.Validate(); err != nil {
		return carrental.Config{}, fmt.Errorf("problem: %w", err)
	}
	return p, nil
}

// Solver returns the policy iteration settings described by c
func (c CarRentalConfig) Solver() (dp.Config, error) {
	s := dp.Config{
		Discount:            c.Discount,
		Threshold:           c.Threshold,
		MaxIterations:       c.MaxIterations,
		MaxPolicyIterations: c.MaxPolicyIterations,
	}

	switch c.Delta {
	case "sweep_max":
		s.Delta = dp.SweepMax
	case "last_column":
		s.Delta = dp.LastColumn
	default:
		return dp.Config{}, fmt.Errorf("solver: no such delta mode %q",
			c.Delta)
	}

	if err := s.Validate(); err != nil {
		return dp.Config{}, fmt.Errorf("solver: %w", err)
	}
	return s, nil
}

// Variants returns the agent types named by c.Agents
func (c ShortcutConfig) Variants() ([]agent.Type, error) {
	variants := make([]agent.Type, 0, len(c.Agents))
	for _, name := range c.Agents {
		variant, ok := parseVariant(name)
		if !ok {
			return nil, fmt.Errorf("variants: %q: %w", name,
				dyna.ErrUnknownVariant)
		}
		variants = append(variants, variant)
	}
	return variants, nil
}

// Experiment returns the experiment configuration for agents of type
// variant. QLearning never plans, whatever the configured planning
// steps.
func (c ShortcutConfig) Experiment(variant agent.Type) (experiment.Config,
	error) {
	if c.Runs < 1 {
		return experiment.Config{}, fmt.Errorf("experiment: runs must be "+
			"positive, got %v", c.Runs)
	}
	if c.Parallelism < 1 {
		return experiment.Config{}, fmt.Errorf("experiment: parallelism "+
			"must be positive, got %v", c.Parallelism)
	}

	planning := c.PlanningSteps
	if variant == agent.QLearning {
		planning = 0
	}

	e := experiment.Config{
		Steps:       c.Steps,
		Runs:        c.Runs,
		Parallelism: c.Parallelism,
		Seed:        c.Seed,
		Schedule: experiment.SwitchAt(c.SwitchStep, shortcutmaze.FirstWall,
			shortcutmaze.SecondWall),
		Agent: dyna.Config{
			Variant:       variant,
			Epsilon:       c.Epsilon,
			LearningRate:  c.LearningRate,
			Discount:      c.Discount,
			PlanningSteps: planning,
			Kappa:         c.Kappa,
		},
	}
	if err := e.Validate(); err != nil {
		return experiment.Config{}, fmt.Errorf("experiment: %w", err)
	}
	return e, nil
}

// parseVariant accepts both agent Type names and snake case names
func parseVariant(name string) (agent.Type, bool) {
	normal := strings.NewReplacer("_", "", "-", "", "plus", "+").Replace(
		strings.ToLower(name))
	for _, t := range agent.Types() {
		if strings.ToLower(string(t)) == normal {
			return t, true
		}
	}
	return "", false
}
