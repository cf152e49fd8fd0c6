package config

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/boardci/internal/errors"
	"github.com/thoreinstein/boardci/internal/platform"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrMissingCLI indicates the build tool name is empty.
	ErrMissingCLI = errors.New("cli must not be empty")

	// ErrInvalidURL indicates an additional board-manager URL is malformed.
	ErrInvalidURL = errors.New("invalid board manager URL")

	// ErrInvalidExtension indicates the sketch extension does not start with a dot.
	ErrInvalidExtension = errors.New("sketch_extension must start with '.'")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidReportFormat indicates an unsupported report format.
	ErrInvalidReportFormat = errors.New("report_format must be one of json, yaml, toml")

	// ErrInvalidBoard indicates a board entry is malformed.
	ErrInvalidBoard = errors.New("invalid board entry")

	// ErrInvalidGroup indicates a group entry is malformed.
	ErrInvalidGroup = errors.New("invalid group entry")
)

// ReportFormats lists the accepted report_format values.
var ReportFormats = []string{"json", "yaml", "toml"}

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version < 1 {
		errs = append(errs, ErrVersionTooLow)
	}

	if strings.TrimSpace(cfg.CLI) == "" {
		errs = append(errs, ErrMissingCLI)
	}

	for _, raw := range cfg.AdditionalURLs {
		if err := validateURL(raw); err != nil {
			errs = append(errs, &FieldError{Field: "additional_urls", Value: raw, Err: err})
		}
	}

	if cfg.SketchExtension != "" && !strings.HasPrefix(cfg.SketchExtension, ".") {
		errs = append(errs, &FieldError{Field: "sketch_extension", Value: cfg.SketchExtension, Err: ErrInvalidExtension})
	}

	for _, f := range []struct{ field, path string }{
		{"libraries_dir", cfg.LibrariesDir},
		{"report", cfg.Report},
	} {
		if err := validatePath(f.path); err != nil {
			errs = append(errs, &FieldError{Field: f.field, Value: f.path, Err: err})
		}
	}

	if cfg.ReportFormat != "" && !validReportFormat(cfg.ReportFormat) {
		errs = append(errs, &FieldError{Field: "report_format", Value: cfg.ReportFormat, Err: ErrInvalidReportFormat})
	}

	errs = append(errs, validateBoards(cfg.Boards)...)
	errs = append(errs, validateGroups(cfg.Groups)...)

	return errs
}

func validateBoards(boards []BoardEntry) []error {
	var errs []error
	seen := make(map[string]bool, len(boards))
	for _, b := range boards {
		switch {
		case strings.TrimSpace(b.Alias) == "":
			errs = append(errs, &FieldError{Field: "boards", Value: b.FQBN, Err: errors.Wrap(ErrInvalidBoard, "alias is empty")})
			continue
		case seen[b.Alias]:
			errs = append(errs, &FieldError{Field: "boards", Value: b.Alias, Err: errors.Wrap(ErrInvalidBoard, "duplicate alias")})
			continue
		}
		seen[b.Alias] = true
		if _, err := platform.ParseFQBN(b.FQBN); err != nil {
			errs = append(errs, &FieldError{Field: "boards", Value: b.Alias, Err: errors.Mark(err, ErrInvalidBoard)})
		}
	}
	return errs
}

func validateGroups(groups []GroupEntry) []error {
	var errs []error
	seen := make(map[string]bool, len(groups))
	for _, g := range groups {
		switch {
		case strings.TrimSpace(g.Alias) == "":
			errs = append(errs, &FieldError{Field: "groups", Err: errors.Wrap(ErrInvalidGroup, "alias is empty")})
		case seen[g.Alias]:
			errs = append(errs, &FieldError{Field: "groups", Value: g.Alias, Err: errors.Wrap(ErrInvalidGroup, "duplicate alias")})
		case len(g.Members) == 0:
			errs = append(errs, &FieldError{Field: "groups", Value: g.Alias, Err: errors.Wrap(ErrInvalidGroup, "no members")})
		}
		seen[g.Alias] = true
	}
	return errs
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return errors.Mark(err, ErrInvalidURL)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidURL
	}
	return nil
}

func validReportFormat(format string) bool {
	for _, f := range ReportFormats {
		if strings.EqualFold(f, format) {
			return true
		}
	}
	return false
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	// Empty paths are valid (they mean "use default")
	if path == "" {
		return nil
	}

	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}

	return nil
}

// FieldError represents an error for a specific configuration field.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return e.Field + ": " + e.Err.Error()
	}
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
