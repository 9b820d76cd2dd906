package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Daniel-dg-conta1/math-Suite/diagram"
	"github.com/Daniel-dg-conta1/math-Suite/exercise"
	"github.com/Daniel-dg-conta1/math-Suite/geom"
	"github.com/Daniel-dg-conta1/math-Suite/pdf/layout"
	"github.com/Daniel-dg-conta1/math-Suite/sheet"
	"github.com/Daniel-dg-conta1/math-Suite/trig"
)

// Common errors
var (
	ErrConfigurationError = errors.New("configuration error")
	ErrInvalidRange       = errors.New("invalid range")
)

// Limits applied to generation requests.
const (
	MaxQuestions = 200
	MaxAttempts  = 10000
)

// ConfigError represents a configuration error with context.
type ConfigError struct {
	Field   string
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error in '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

func (e *ConfigError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrConfigurationError
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

func wrapConfigError(field string, err error) *ConfigError {
	return &ConfigError{Field: field, Message: err.Error(), Err: err}
}

// VectorsConfig bounds the vector exercise generator.
type VectorsConfig struct {
	// Questions is the number of exercises per batch.
	Questions int `yaml:"questions" json:"questions"`

	// Kinds lists the exercise shapes: "2", "3", "4" and "missing".
	Kinds []string `yaml:"kinds" json:"kinds"`

	// MinMagnitude and MaxMagnitude bound the integer vector magnitudes.
	MinMagnitude int `yaml:"min-magnitude" json:"min_magnitude"`
	MaxMagnitude int `yaml:"max-magnitude" json:"max_magnitude"`

	// MinSeparation is the smallest angle, in degrees, between two given
	// vectors of one exercise.
	MinSeparation float64 `yaml:"min-separation" json:"min_separation"`

	// HalfSteps allows angles ending in 5.
	HalfSteps *bool `yaml:"half-steps" json:"half_steps,omitempty"`

	// Parametrizations lists how given vectors are stated: cartesian,
	// polar or legs.
	Parametrizations []string `yaml:"parametrizations" json:"parametrizations"`
}

// SetDefaults fills zero fields with the generator defaults.
func (c *VectorsConfig) SetDefaults() {
	def := exercise.DefaultVectorConfig()
	if c.Questions == 0 {
		c.Questions = def.Questions
	}
	if len(c.Kinds) == 0 {
		for _, k := range def.Kinds {
			c.Kinds = append(c.Kinds, string(k))
		}
	}
	if c.MinMagnitude == 0 {
		c.MinMagnitude = def.MinMagnitude
	}
	if c.MaxMagnitude == 0 {
		c.MaxMagnitude = def.MaxMagnitude
	}
	if c.MinSeparation == 0 {
		c.MinSeparation = def.MinSeparation
	}
	if c.HalfSteps == nil {
		c.HalfSteps = &def.HalfSteps
	}
	if len(c.Parametrizations) == 0 {
		for _, k := range def.Parametrizations {
			c.Parametrizations = append(c.Parametrizations, k.String())
		}
	}
}

// Generator converts the section into generator bounds.
func (c *VectorsConfig) Generator() (exercise.VectorConfig, error) {
	out := exercise.VectorConfig{
		Questions:     c.Questions,
		MinMagnitude:  c.MinMagnitude,
		MaxMagnitude:  c.MaxMagnitude,
		MinSeparation: c.MinSeparation,
		HalfSteps:     c.HalfSteps == nil || *c.HalfSteps,
	}
	if err := checkQuestions("vectors.questions", c.Questions); err != nil {
		return out, err
	}
	if c.MinMagnitude < 1 || c.MaxMagnitude < c.MinMagnitude {
		return out, &ConfigError{
			Field:   "vectors.min-magnitude",
			Message: fmt.Sprintf("magnitudes must satisfy 1 <= min <= max, got %d..%d", c.MinMagnitude, c.MaxMagnitude),
			Err:     ErrInvalidRange,
		}
	}
	if c.MinSeparation < 0 || c.MinSeparation >= 180 {
		return out, &ConfigError{
			Field:   "vectors.min-separation",
			Message: fmt.Sprintf("must be in [0, 180), got %v", c.MinSeparation),
			Err:     ErrInvalidRange,
		}
	}
	for _, s := range c.Kinds {
		k, err := exercise.ParseVectorKind(s)
		if err != nil {
			return out, wrapConfigError("vectors.kinds", err)
		}
		out.Kinds = append(out.Kinds, k)
	}
	for _, s := range c.Parametrizations {
		k, err := geom.ParseKind(s)
		if err != nil {
			return out, wrapConfigError("vectors.parametrizations", err)
		}
		out.Parametrizations = append(out.Parametrizations, k)
	}
	return out, nil
}

// TrianglesConfig bounds the triangle exercise generator.
type TrianglesConfig struct {
	// Questions is the number of exercises per batch.
	Questions int `yaml:"questions" json:"questions"`

	// Cases lists the solving cases: SSS, SAS, ASA, AAS and Right.
	Cases []string `yaml:"cases" json:"cases"`

	// MinSide and MaxSide bound the integer side lengths.
	MinSide int `yaml:"min-side" json:"min_side"`
	MaxSide int `yaml:"max-side" json:"max_side"`

	// MinAngle and MaxAngle bound the integer angles in degrees.
	MinAngle int `yaml:"min-angle" json:"min_angle"`
	MaxAngle int `yaml:"max-angle" json:"max_angle"`
}

// SetDefaults fills zero fields with the generator defaults.
func (c *TrianglesConfig) SetDefaults() {
	def := exercise.DefaultTriangleConfig()
	if c.Questions == 0 {
		c.Questions = def.Questions
	}
	if len(c.Cases) == 0 {
		for _, cs := range def.Cases {
			c.Cases = append(c.Cases, cs.String())
		}
	}
	if c.MinSide == 0 {
		c.MinSide = def.MinSide
	}
	if c.MaxSide == 0 {
		c.MaxSide = def.MaxSide
	}
	if c.MinAngle == 0 {
		c.MinAngle = def.MinAngle
	}
	if c.MaxAngle == 0 {
		c.MaxAngle = def.MaxAngle
	}
}

// Generator converts the section into generator bounds.
func (c *TrianglesConfig) Generator() (exercise.TriangleConfig, error) {
	out := exercise.TriangleConfig{
		Questions: c.Questions,
		MinSide:   c.MinSide,
		MaxSide:   c.MaxSide,
		MinAngle:  c.MinAngle,
		MaxAngle:  c.MaxAngle,
	}
	if err := checkQuestions("triangles.questions", c.Questions); err != nil {
		return out, err
	}
	if c.MinSide < 1 || c.MaxSide < c.MinSide {
		return out, &ConfigError{
			Field:   "triangles.min-side",
			Message: fmt.Sprintf("sides must satisfy 1 <= min <= max, got %d..%d", c.MinSide, c.MaxSide),
			Err:     ErrInvalidRange,
		}
	}
	if c.MinAngle < 1 || c.MaxAngle >= 180 || c.MaxAngle < c.MinAngle {
		return out, &ConfigError{
			Field:   "triangles.min-angle",
			Message: fmt.Sprintf("angles must satisfy 1 <= min <= max < 180, got %d..%d", c.MinAngle, c.MaxAngle),
			Err:     ErrInvalidRange,
		}
	}
	for _, s := range c.Cases {
		cs, err := trig.ParseCase(s)
		if err != nil {
			return out, wrapConfigError("triangles.cases", err)
		}
		out.Cases = append(out.Cases, cs)
	}
	return out, nil
}

func checkQuestions(field string, n int) error {
	if n < 1 || n > MaxQuestions {
		return &ConfigError{
			Field:   field,
			Message: fmt.Sprintf("must be between 1 and %d, got %d", MaxQuestions, n),
			Err:     ErrInvalidRange,
		}
	}
	return nil
}

// GeneratorConfig contains exercise generation settings.
type GeneratorConfig struct {
	// Seed fixes the random source. Zero picks a fresh seed per run.
	Seed uint64 `yaml:"seed" json:"seed,omitempty"`

	// MaxAttempts is the sampling budget per exercise.
	MaxAttempts int `yaml:"max-attempts" json:"max_attempts"`

	Vectors   VectorsConfig   `yaml:"vectors" json:"vectors"`
	Triangles TrianglesConfig `yaml:"triangles" json:"triangles"`
}

// SetDefaults sets default values for generator configuration.
func (c *GeneratorConfig) SetDefaults() {
	if c.MaxAttempts == 0 {
		c.MaxAttempts = exercise.DefaultMaxAttempts
	}
	c.Vectors.SetDefaults()
	c.Triangles.SetDefaults()
}

// Source returns the random source for one run. seed overrides the
// configured seed when non-zero.
func (c *GeneratorConfig) Source(seed uint64) *exercise.PCGSource {
	if seed == 0 {
		seed = c.Seed
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return exercise.NewSource(seed)
}

// DiagramConfig contains diagram layout settings.
type DiagramConfig struct {
	// MinSeparation is the angular gap, in degrees, below which arrows
	// sharing an origin are spread apart in previews and sheets. Zero
	// takes the default and a negative value disables spreading.
	MinSeparation float64 `yaml:"min-separation" json:"min_separation"`
}

// SetDefaults sets default values for diagram configuration.
func (c *DiagramConfig) SetDefaults() {
	if c.MinSeparation == 0 {
		c.MinSeparation = diagram.DefaultMinSeparation
	}
}

// SheetConfig contains PDF worksheet settings.
type SheetConfig struct {
	// PageSize is a named page size such as "A4" or "letter-landscape".
	PageSize string `yaml:"page-size" json:"page_size"`

	// Mode is "full" or "grid".
	Mode string `yaml:"mode" json:"mode"`

	// ItemsPerPage is the grid-mode item count per page.
	ItemsPerPage int `yaml:"items-per-page" json:"items_per_page"`

	// Locale is a BCP 47 tag; en and pt-BR are translated.
	Locale string `yaml:"locale" json:"locale"`

	// VectorTitle and TriangleTitle replace the default headings.
	VectorTitle   string `yaml:"vector-title" json:"vector_title,omitempty"`
	TriangleTitle string `yaml:"triangle-title" json:"triangle_title,omitempty"`
}

// SetDefaults sets default values for sheet configuration.
func (c *SheetConfig) SetDefaults() {
	if c.PageSize == "" {
		c.PageSize = "A4"
	}
	if c.Mode == "" {
		c.Mode = string(sheet.ModeFull)
	}
	if c.ItemsPerPage == 0 {
		c.ItemsPerPage = 4
	}
	if c.Locale == "" {
		c.Locale = "pt-BR"
	}
}

// Options converts the section into sheet rendering options.
func (c *SheetConfig) Options(teacher bool) (sheet.Options, error) {
	opts := sheet.Options{ItemsPerPage: c.ItemsPerPage, Teacher: teacher}
	var err error
	if opts.PageSize, err = layout.ParsePageSize(c.PageSize); err != nil {
		return opts, wrapConfigError("sheet.page-size", err)
	}
	if opts.Mode, err = sheet.ParseMode(c.Mode); err != nil {
		return opts, wrapConfigError("sheet.mode", err)
	}
	if opts.Locale, err = sheet.ParseLocale(c.Locale); err != nil {
		return opts, wrapConfigError("sheet.locale", err)
	}
	if c.ItemsPerPage < 1 {
		return opts, &ConfigError{Field: "sheet.items-per-page", Message: "must be positive", Err: ErrInvalidRange}
	}
	return opts, nil
}

// Validate checks the section and that both vector and triangle sheets,
// student and answer key, fit at least one item per page.
func (c *SheetConfig) Validate() error {
	opts, err := c.Options(false)
	if err != nil {
		return err
	}
	for _, teacher := range []bool{false, true} {
		opts.Teacher = teacher
		if _, err := sheet.PlanVectors(opts); err != nil {
			return wrapConfigError("sheet.page-size", err)
		}
		if _, err := sheet.PlanTriangles(opts); err != nil {
			return wrapConfigError("sheet.page-size", err)
		}
	}
	return nil
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Address is the listen address, e.g. ":8080".
	Address string `yaml:"address" json:"address"`

	// ReadTimeout and WriteTimeout bound a single request.
	ReadTimeout  time.Duration `yaml:"read-timeout" json:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write-timeout" json:"write_timeout"`

	// BodyLimit is the largest accepted request body in bytes.
	BodyLimit int `yaml:"body-limit" json:"body_limit"`
}

// SetDefaults sets default values for server configuration.
func (c *ServerConfig) SetDefaults() {
	if c.Address == "" {
		c.Address = ":8080"
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 10 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 30 * time.Second
	}
	if c.BodyLimit == 0 {
		c.BodyLimit = 1 << 20
	}
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the log level (debug, info, warn, error).
	Level string `yaml:"level" json:"level,omitempty"`

	// Format is the log format (text, json).
	Format string `yaml:"format" json:"format,omitempty"`

	// Output is the log output (stdout, stderr, or file path).
	Output string `yaml:"output" json:"output,omitempty"`
}

// SetDefaults sets default values for logging configuration.
func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "text"
	}
	if c.Output == "" {
		c.Output = "stderr"
	}
}

// Validate checks level and format names.
func (c *LoggingConfig) Validate() error {
	if _, err := c.level(); err != nil {
		return err
	}
	switch strings.ToLower(c.Format) {
	case "", "text", "json":
		return nil
	}
	return NewConfigError("logging.format", fmt.Sprintf("unknown format %q", c.Format))
}

func (c *LoggingConfig) level() (slog.Level, error) {
	var lvl slog.Level
	if c.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(c.Level)); err != nil {
		return lvl, wrapConfigError("logging.level", err)
	}
	return lvl, nil
}

// NewLogger builds a logger for the configured output. The returned close
// function releases a log file and is a no-op for the standard streams.
func (c *LoggingConfig) NewLogger() (*slog.Logger, func() error, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}
	lvl, _ := c.level()

	var w io.Writer
	closeFn := func() error { return nil }
	switch c.Output {
	case "", "stderr":
		w = os.Stderr
	case "stdout":
		w = os.Stdout
	default:
		f, err := os.OpenFile(c.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w, closeFn = f, f.Close
	}
	return NewLoggerTo(w, c.Format, lvl), closeFn, nil
}

// NewLoggerTo builds a text or JSON logger writing to w.
func NewLoggerTo(w io.Writer, format string, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// AppConfig contains the complete application configuration.
type AppConfig struct {
	Generator GeneratorConfig `yaml:"generator" json:"generator"`
	Diagram   DiagramConfig   `yaml:"diagram" json:"diagram"`
	Sheet     SheetConfig     `yaml:"sheet" json:"sheet"`
	Server    ServerConfig    `yaml:"server" json:"server"`
	Logging   LoggingConfig   `yaml:"logging" json:"logging"`
}

// Default returns a configuration with every default applied.
func Default() *AppConfig {
	var c AppConfig
	c.SetDefaults()
	return &c
}

// SetDefaults sets default values for every section.
func (c *AppConfig) SetDefaults() {
	c.Generator.SetDefaults()
	c.Diagram.SetDefaults()
	c.Sheet.SetDefaults()
	c.Server.SetDefaults()
	c.Logging.SetDefaults()
}

// Validate checks every section without modifying it.
func (c *AppConfig) Validate() error {
	if c.Generator.MaxAttempts < 1 || c.Generator.MaxAttempts > MaxAttempts {
		return &ConfigError{
			Field:   "generator.max-attempts",
			Message: fmt.Sprintf("must be between 1 and %d, got %d", MaxAttempts, c.Generator.MaxAttempts),
			Err:     ErrInvalidRange,
		}
	}
	if _, err := c.Generator.Vectors.Generator(); err != nil {
		return err
	}
	if _, err := c.Generator.Triangles.Generator(); err != nil {
		return err
	}
	if c.Diagram.MinSeparation > 45 {
		return &ConfigError{
			Field:   "diagram.min-separation",
			Message: fmt.Sprintf("must be at most 45 (negative disables spreading), got %v", c.Diagram.MinSeparation),
			Err:     ErrInvalidRange,
		}
	}
	if err := c.Sheet.Validate(); err != nil {
		return err
	}
	if c.Server.BodyLimit < 0 || c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return NewConfigError("server", "limits and timeouts must not be negative")
	}
	return c.Logging.Validate()
}

// LoadConfig loads a configuration from a YAML file.
func LoadConfig(filename string) (*AppConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses configuration from YAML data, applies defaults and
// validates the result. Unknown keys are rejected.
func ParseConfig(data []byte) (*AppConfig, error) {
	var config AppConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	config.SetDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}
