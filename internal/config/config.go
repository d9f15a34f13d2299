// Package config loads runtime configuration for the PlantUML MCP server.
//
// Values are resolved in three layers: built-in defaults, an optional YAML
// file named by PLANTUML_MCP_CONFIG, then environment variables. A .env file
// (PLANTUML_MCP_ENV_FILE, default ".env") is loaded into the environment first
// when present. All fields have safe defaults so the binary runs without setup.
package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	errorslib "github.com/goliatone/go-errors"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration.
type Config struct {
	OutputDir       string        // PLANTUML_MCP_OUTPUT_DIR, default: "output" next to the executable
	PlantUMLCommand string        // PLANTUML_MCP_COMMAND, default: "plantuml"
	PlantUMLJar     string        // PLANTUML_MCP_JAR, when set run "java -jar <jar>" instead
	JavaCommand     string        // PLANTUML_MCP_JAVA, default: "java"
	RenderTimeout   time.Duration // PLANTUML_MCP_RENDER_TIMEOUT, default: 0 (unbounded)
	LogLevel        string        // PLANTUML_MCP_LOG_LEVEL, default: "info"
	OCRLanguage     string        // PLANTUML_MCP_OCR_LANGUAGE, default: "eng"
	HTTPAddr        string        // PLANTUML_MCP_HTTP_ADDR, default: "" (stdio)
}

const (
	envKeyConfigFile    = "PLANTUML_MCP_CONFIG"
	envKeyEnvFile       = "PLANTUML_MCP_ENV_FILE"
	envKeyOutputDir     = "PLANTUML_MCP_OUTPUT_DIR"
	envKeyCommand       = "PLANTUML_MCP_COMMAND"
	envKeyJar           = "PLANTUML_MCP_JAR"
	envKeyJava          = "PLANTUML_MCP_JAVA"
	envKeyRenderTimeout = "PLANTUML_MCP_RENDER_TIMEOUT"
	envKeyLogLevel      = "PLANTUML_MCP_LOG_LEVEL"
	envKeyOCRLanguage   = "PLANTUML_MCP_OCR_LANGUAGE"
	envKeyHTTPAddr      = "PLANTUML_MCP_HTTP_ADDR"
)

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		OutputDir:       defaultOutputDir(),
		PlantUMLCommand: "plantuml",
		JavaCommand:     "java",
		LogLevel:        "info",
		OCRLanguage:     "eng",
	}
}

// Load resolves configuration from defaults, the optional YAML file and the
// environment.
func Load() (Config, error) {
	return LoadFrom("")
}

// LoadFrom is Load with an explicit YAML file. A non-empty path takes
// precedence over PLANTUML_MCP_CONFIG.
func LoadFrom(path string) (Config, error) {
	if err := loadEnvFile(envOr(envKeyEnvFile, ".env")); err != nil {
		return Config{}, err
	}

	cfg := Default()
	if path == "" {
		path = os.Getenv(envKeyConfigFile)
	}
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// mergeFile overlays the non-empty values of a YAML file onto cfg.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errorslib.Wrap(err, errorslib.CategoryExternal, "read config file "+path).
			WithTextCode("CONFIG_READ")
	}

	var file struct {
		OutputDir       string `yaml:"output_dir"`
		PlantUMLCommand string `yaml:"plantuml_command"`
		PlantUMLJar     string `yaml:"plantuml_jar"`
		JavaCommand     string `yaml:"java_command"`
		RenderTimeout   string `yaml:"render_timeout"`
		LogLevel        string `yaml:"log_level"`
		OCRLanguage     string `yaml:"ocr_language"`
		HTTPAddr        string `yaml:"http_addr"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return errorslib.Wrap(err, errorslib.CategoryValidation, "parse config file "+path).
			WithTextCode("CONFIG_INVALID")
	}

	setIf(&c.OutputDir, file.OutputDir)
	setIf(&c.PlantUMLCommand, file.PlantUMLCommand)
	setIf(&c.PlantUMLJar, file.PlantUMLJar)
	setIf(&c.JavaCommand, file.JavaCommand)
	setIf(&c.LogLevel, file.LogLevel)
	setIf(&c.OCRLanguage, file.OCRLanguage)
	setIf(&c.HTTPAddr, file.HTTPAddr)
	if file.RenderTimeout != "" {
		d, err := parseDuration("render_timeout", file.RenderTimeout)
		if err != nil {
			return err
		}
		c.RenderTimeout = d
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.OutputDir = envOr(envKeyOutputDir, c.OutputDir)
	c.PlantUMLCommand = envOr(envKeyCommand, c.PlantUMLCommand)
	c.PlantUMLJar = envOr(envKeyJar, c.PlantUMLJar)
	c.JavaCommand = envOr(envKeyJava, c.JavaCommand)
	c.LogLevel = envOr(envKeyLogLevel, c.LogLevel)
	c.OCRLanguage = envOr(envKeyOCRLanguage, c.OCRLanguage)
	c.HTTPAddr = envOr(envKeyHTTPAddr, c.HTTPAddr)
	if v := os.Getenv(envKeyRenderTimeout); v != "" {
		d, err := parseDuration(envKeyRenderTimeout, v)
		if err != nil {
			return err
		}
		c.RenderTimeout = d
	}
	return nil
}

// SlogLevel maps LogLevel onto a slog.Level. Unknown names mean info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// loadEnvFile loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func loadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return errorslib.Wrap(err, errorslib.CategoryValidation, "load env file "+path).
			WithTextCode("CONFIG_ENV_FILE")
	}
	return nil
}

func parseDuration(key, v string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil || d < 0 {
		if err == nil {
			err = errors.New("negative duration")
		}
		return 0, errorslib.Wrap(err, errorslib.CategoryValidation, key+": invalid duration "+v).
			WithTextCode("CONFIG_INVALID")
	}
	return d, nil
}

// defaultOutputDir places generated diagrams in "output" next to the
// executable, falling back to the working directory.
func defaultOutputDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "output"
	}
	if real, err := filepath.EvalSymlinks(exe); err == nil {
		exe = real
	}
	return filepath.Join(filepath.Dir(exe), "output")
}

// envOr returns the value of the environment variable key, or fallback if not set.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
