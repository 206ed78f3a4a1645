package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/tidwall/sjson"

	"github.com/tujuhre12/vlist/internal/vlist/reconcile"
	"github.com/tujuhre12/vlist/internal/vlist/scroll"
)

const (
	appName = "vlist"

	// EnvConfigPath overrides the location of the options file.
	EnvConfigPath = "VLIST_CONFIG"
)

var (
	ErrInvalidItemHeight = errors.New("item_height must not be negative")
	ErrInvalidBuffer     = errors.New("buffers must not be negative")
	ErrInvalidFrame      = errors.New("frame_ms must be positive")
	ErrInvalidDuration   = errors.New("durations must not be negative")
	ErrInvalidThreshold  = errors.New("smooth_threshold must not be negative")
	ErrUnknownField      = errors.New("unknown config field")
)

// Options configures a list.
type Options struct {
	ItemHeight      int  `json:"item_height" yaml:"item_height" jsonschema:"description=Height in rows assumed for items that have not been measured yet,minimum=0,default=1"`
	LeadingBuffer   int  `json:"leading_buffer" yaml:"leading_buffer" jsonschema:"description=Rows above the viewport in which items stay mounted,minimum=0,default=30"`
	TrailingBuffer  int  `json:"trailing_buffer" yaml:"trailing_buffer" jsonschema:"description=Rows below the viewport in which items stay mounted,minimum=0,default=30"`
	ScrollDuration  int  `json:"scroll_duration_ms" yaml:"scroll_duration_ms" jsonschema:"description=Duration of a smooth scroll in milliseconds,minimum=0,default=300"`
	Frame           int  `json:"frame_ms" yaml:"frame_ms" jsonschema:"description=Interval between animation frames in milliseconds,minimum=1,default=16"`
	SmoothThreshold int  `json:"smooth_threshold" yaml:"smooth_threshold" jsonschema:"description=Distance in rows from which scrolls jump instead of animating,minimum=0,default=500"`
	IdleDelay       int  `json:"idle_ms" yaml:"idle_ms" jsonschema:"description=Milliseconds without movement after which scrolling is considered stopped,minimum=0,default=100"`
	SmoothScroll    bool `json:"smooth_scroll" yaml:"smooth_scroll" jsonschema:"description=Animate scrolls triggered by keys,default=true"`
	Mouse           bool `json:"mouse" yaml:"mouse" jsonschema:"description=Scroll with the mouse wheel,default=true"`
	Debug           bool `json:"debug,omitempty" yaml:"debug,omitempty" jsonschema:"description=Enable debug logging"`
}

// Defaults returns the default options.
func Defaults() Options {
	return Options{
		ItemHeight:      1,
		LeadingBuffer:   30,
		TrailingBuffer:  30,
		ScrollDuration:  300,
		Frame:           16,
		SmoothThreshold: 500,
		IdleDelay:       100,
		SmoothScroll:    true,
		Mouse:           true,
	}
}

// Validate reports every invalid field.
func (o Options) Validate() error {
	var errs []error
	if o.ItemHeight < 0 {
		errs = append(errs, ErrInvalidItemHeight)
	}
	if o.LeadingBuffer < 0 || o.TrailingBuffer < 0 {
		errs = append(errs, ErrInvalidBuffer)
	}
	if o.Frame <= 0 {
		errs = append(errs, ErrInvalidFrame)
	}
	if o.ScrollDuration < 0 || o.IdleDelay < 0 {
		errs = append(errs, ErrInvalidDuration)
	}
	if o.SmoothThreshold < 0 {
		errs = append(errs, ErrInvalidThreshold)
	}
	return errors.Join(errs...)
}

// ScrollConfig returns the animation settings.
func (o Options) ScrollConfig() scroll.Config {
	return scroll.Config{
		Duration:        o.ScrollDurationTime(),
		Frame:           time.Duration(o.Frame) * time.Millisecond,
		SmoothThreshold: o.SmoothThreshold,
	}
}

// ReconcileConfig returns the buffer zones.
func (o Options) ReconcileConfig() reconcile.Config {
	return reconcile.Config{
		LeadingBuffer:  o.LeadingBuffer,
		TrailingBuffer: o.TrailingBuffer,
	}
}

func (o Options) ScrollDurationTime() time.Duration {
	return time.Duration(o.ScrollDuration) * time.Millisecond
}

func (o Options) IdleDelayTime() time.Duration {
	return time.Duration(o.IdleDelay) * time.Millisecond
}

// GlobalConfig returns the path of the options file. VLIST_CONFIG takes
// precedence over the user config directory.
func GlobalConfig() string {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return path
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, appName, appName+".json")
}

// GlobalLogFile returns the path of the log file used by interactive runs.
func GlobalLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, appName, "logs", appName+".log")
}

// Load reads the options file at path over the defaults. A missing file
// yields the defaults.
func Load(path string) (Options, error) {
	opts := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return opts, nil
		}
		return opts, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := json.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := opts.Validate(); err != nil {
		return opts, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return opts, nil
}

// SetField writes a single field of the options file at path, creating the
// file when needed. The file is left untouched if the result would not be
// valid.
func SetField(path, key string, value any) error {
	if !slices.Contains(FieldNames(), key) {
		return fmt.Errorf("%w: %s", ErrUnknownField, key)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			data = []byte("{}")
		} else {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	newValue, err := sjson.Set(string(data), key, value)
	if err != nil {
		return fmt.Errorf("failed to set config field %s: %w", key, err)
	}
	opts := Defaults()
	if err := json.Unmarshal([]byte(newValue), &opts); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := opts.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(newValue), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// FieldNames returns the keys of the options file.
func FieldNames() []string {
	t := reflect.TypeFor[Options]()
	names := make([]string, 0, t.NumField())
	for i := range t.NumField() {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		names = append(names, name)
	}
	return names
}
