// Package schema turns JSON Schema validation errors into short,
// path-qualified messages.
package schema

import (
	"errors"
	"slices"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is a default English printer for localized error messages.
var printer = message.NewPrinter(language.English)

// Messages flattens a validation error into sorted, deduplicated
// "/instance/path: message" lines. Errors that are not validation errors
// yield their own text.
func Messages(err error) []string {
	if err == nil {
		return nil
	}
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return []string{err.Error()}
	}

	var result []string
	collectErrors(validationErr, &result)
	sort.Strings(result)
	return slices.Compact(result)
}

// collectErrors collects leaf errors (those without causes).
func collectErrors(err *jsonschema.ValidationError, out *[]string) {
	if err.ErrorKind != nil && len(err.Causes) == 0 {
		errMsg := err.ErrorKind.LocalizedString(printer)
		if !strings.HasPrefix(errMsg, "$ref ") && !strings.HasPrefix(errMsg, "doesn't validate with") {
			if len(err.InstanceLocation) > 0 {
				errMsg = "/" + strings.Join(err.InstanceLocation, "/") + ": " + errMsg
			}
			*out = append(*out, errMsg)
		}
	}

	for _, cause := range err.Causes {
		collectErrors(cause, out)
	}
}
