package service

import (
	"fmt"

	"github.com/ludo-technologies/prexpr/domain"
)

// OutputFormatResolver resolves the output format from the shorthand
// format flags.
type OutputFormatResolver struct{}

func NewOutputFormatResolver() *OutputFormatResolver { return &OutputFormatResolver{} }

// Determine returns the format selected by the shorthand flags together
// with its file extension. At most one flag may be true; ok is false when
// none is, leaving the choice to --format or the configuration.
func (r *OutputFormatResolver) Determine(json, yaml, csv bool) (format domain.OutputFormat, ext string, ok bool, err error) {
	count := 0
	if json {
		count++
		format, ext = domain.OutputFormatJSON, "json"
	}
	if yaml {
		count++
		format, ext = domain.OutputFormatYAML, "yaml"
	}
	if csv {
		count++
		format, ext = domain.OutputFormatCSV, "csv"
	}

	switch count {
	case 0:
		return "", "", false, nil
	case 1:
		return format, ext, true, nil
	default:
		return "", "", false, fmt.Errorf("only one of --json, --yaml, --csv can be specified")
	}
}

// Parse validates a format name given with --format
func (r *OutputFormatResolver) Parse(name string) (domain.OutputFormat, error) {
	format := domain.OutputFormat(name)
	if !format.IsValid() {
		return "", domain.NewUnsupportedFormatError(name)
	}
	return format, nil
}
