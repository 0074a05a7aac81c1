package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/McebisiMK/ElevatorChallenge/lift"
)

const (
	DefaultElevators    = 3
	DefaultCapacity     = 8
	DefaultFloors       = 10
	DefaultTickInterval = 3 * time.Second

	// floor 0 plus two distinct request floors
	minFloors = 3
)

// Environment keys, read from the .env file first and then from the process environment.
const (
	EnvElevators    = "ELEVATOR_COUNT"
	EnvCapacity     = "ELEVATOR_CAPACITY"
	EnvFloors       = "ELEVATOR_FLOORS"
	EnvTickInterval = "ELEVATOR_TICK_INTERVAL"
	EnvLogLevel     = "ELEVATOR_LOG_LEVEL"
)

var (
	ErrInvalidCapacity     = errors.New("elevator capacity must be greater than 0")
	ErrInvalidFloors       = errors.New("number of floors must be at least 3")
	ErrInvalidTickInterval = errors.New("tick interval must not be negative")
)

type Config struct {
	Elevators    int           `yaml:"elevators"`
	Capacity     int           `yaml:"capacity"`
	Floors       int           `yaml:"floors"`
	TickInterval time.Duration `yaml:"tick_interval"`
	LogLevel     string        `yaml:"log_level"`
}

func Default() Config {
	return Config{
		Elevators:    DefaultElevators,
		Capacity:     DefaultCapacity,
		Floors:       DefaultFloors,
		TickInterval: DefaultTickInterval,
		LogLevel:     "info",
	}
}

// Load reads the YAML file at path over the defaults, then applies overrides from envPath
// and from the environment. Either path may be empty or point at a missing file.
func Load(path, envPath string) (Config, error) {
	c := Default()

	if path != "" {
		if err := c.readFile(path); err != nil {
			return c, err
		}
	}

	env := map[string]string{}
	if envPath != "" {
		vars, err := godotenv.Read(envPath)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return c, fmt.Errorf("reading %s: %w", envPath, err)
		}
		for k, v := range vars {
			env[k] = v
		}
	}
	for _, k := range []string{EnvElevators, EnvCapacity, EnvFloors, EnvTickInterval, EnvLogLevel} {
		if v, ok := os.LookupEnv(k); ok {
			env[k] = v
		}
	}
	if err := c.applyEnv(env); err != nil {
		return c, err
	}

	return c, c.Validate()
}

func (c *Config) readFile(path string) error {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	err = yaml.NewDecoder(file).Decode(c)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(env map[string]string) error {
	ints := []struct {
		key string
		dst *int
	}{
		{EnvElevators, &c.Elevators},
		{EnvCapacity, &c.Capacity},
		{EnvFloors, &c.Floors},
	}
	for _, i := range ints {
		v, ok := env[i.key]
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", i.key, err)
		}
		*i.dst = n
	}

	if v, ok := env[EnvTickInterval]; ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTickInterval, err)
		}
		c.TickInterval = d
	}
	if v, ok := env[EnvLogLevel]; ok {
		c.LogLevel = v
	}
	return nil
}

func (c Config) Validate() error {
	var errs []error
	if err := lift.ValidateFleetSize(c.Elevators); err != nil {
		errs = append(errs, err)
	}
	if c.Capacity <= 0 {
		errs = append(errs, fmt.Errorf("%w: got %d", ErrInvalidCapacity, c.Capacity))
	}
	if c.Floors < minFloors {
		errs = append(errs, fmt.Errorf("%w: got %d", ErrInvalidFloors, c.Floors))
	}
	if c.TickInterval < 0 {
		errs = append(errs, fmt.Errorf("%w: got %s", ErrInvalidTickInterval, c.TickInterval))
	}
	return errors.Join(errs...)
}
