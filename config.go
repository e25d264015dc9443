package debounce

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config describes a debouncer in a form that can be loaded from YAML:
//
//	name: search
//	wait: 300ms
//	max_wait: 1s
//	leading: false
//	trailing: true
//
// Durations are Go duration strings or plain numbers of milliseconds.
// Values that are neither are treated as zero rather than rejected.
type Config struct {
	Name     string    `yaml:"name"`
	Wait     Duration  `yaml:"wait"`
	MaxWait  *Duration `yaml:"max_wait"`
	Leading  bool      `yaml:"leading"`
	Trailing *bool     `yaml:"trailing"`
}

// Duration is a time.Duration which unmarshals leniently from YAML.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	*d = Duration(parseDuration(value))

	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func parseDuration(value *yaml.Node) time.Duration {
	if value.Kind != yaml.ScalarNode {
		return 0
	}

	s := strings.TrimSpace(value.Value)
	if ms, err := strconv.ParseFloat(s, 64); err == nil {
		ns := ms * float64(time.Millisecond)
		if math.IsNaN(ns) || math.Abs(ns) >= math.MaxInt64 {
			return 0
		}

		return time.Duration(ns)
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}

	return 0
}

// DefaultConfig returns the configuration of a trailing-only debouncer with
// no wait.
func DefaultConfig() Config {
	return Config{Name: defaultName}
}

// ParseConfig parses a YAML debouncer configuration. Fields missing from data
// keep their DefaultConfig values.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal debounce config: %w", err)
	}

	return cfg, nil
}

// LoadConfig reads and parses a YAML debouncer configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("read debounce config %s: %w", path, err)
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Options returns the options described by c. The wait duration is not an
// option, see NewDebouncerFromConfig.
func (c Config) Options() []Option {
	opts := []Option{
		WithName(c.Name),
		WithLeading(c.Leading),
	}
	if c.Trailing != nil {
		opts = append(opts, WithTrailing(*c.Trailing))
	}
	if c.MaxWait != nil {
		opts = append(opts, WithMaxWait(time.Duration(*c.MaxWait)))
	}

	return opts
}

// New returns a debounced function and its cancel function like New, using
// the wait duration and options described by c. Additional opts are applied
// after the ones from c.
func (c Config) New(f func(), opts ...Option) (debounced func(), cancel func()) {
	return New(time.Duration(c.Wait), f, append(c.Options(), opts...)...)
}

// NewDebouncerFromConfig creates a Debouncer invoking fn as described by cfg.
// Additional opts are applied after the ones from cfg.
func NewDebouncerFromConfig[A, R any](
	cfg Config,
	fn Func[A, R],
	opts ...Option,
) (*Debouncer[A, R], error) {
	return NewDebouncer(time.Duration(cfg.Wait), fn, append(cfg.Options(), opts...)...)
}
