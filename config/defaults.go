package config

import (
	"github.com/spf13/viper"

	"github.com/samuelfneumann/tabular/environment/carrental"
)

// setDefaults configures default values for all configuration parameters
func setDefaults(v *viper.Viper) {
	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output_path", "stderr")

	// Output defaults
	v.SetDefault("output.dir", ".")
	v.SetDefault("output.progress", true)

	// Car rental defaults
	v.SetDefault("car_rental.requests", []float64{3, 4})
	v.SetDefault("car_rental.returns", []float64{3, 2})
	v.SetDefault("car_rental.max_cars", carrental.DefaultMaxCars)
	v.SetDefault("car_rental.max_moves", carrental.DefaultMaxMoves)
	v.SetDefault("car_rental.rental_reward", carrental.DefaultRentalReward)
	v.SetDefault("car_rental.move_cost", carrental.DefaultMoveCost)
	v.SetDefault("car_rental.modified", false)
	v.SetDefault("car_rental.parking_limit", carrental.DefaultParkingLimit)
	v.SetDefault("car_rental.parking_cost", carrental.DefaultParkingCost)
	v.SetDefault("car_rental.discount", 0.9)
	v.SetDefault("car_rental.threshold", 1e-2)
	v.SetDefault("car_rental.max_iterations", 1000)
	v.SetDefault("car_rental.max_policy_iterations", 0)
	v.SetDefault("car_rental.delta", "sweep_max")

	// Shortcut maze defaults
	v.SetDefault("shortcut.agents", []string{"QLearning", "DynaQ", "DynaQ+",
		"DynaQ+V2"})
	v.SetDefault("shortcut.runs", 20)
	v.SetDefault("shortcut.steps", 6000)
	v.SetDefault("shortcut.switch_step", 3000)
	v.SetDefault("shortcut.parallelism", 4)
	v.SetDefault("shortcut.seed", 0)
	v.SetDefault("shortcut.epsilon", 0.1)
	v.SetDefault("shortcut.learning_rate", 1.0)
	v.SetDefault("shortcut.discount", 0.95)
	v.SetDefault("shortcut.planning_steps", 50)
	v.SetDefault("shortcut.kappa", 1e-3)
}
