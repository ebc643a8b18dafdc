package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"

	proposaerrors "github.com/alexisbeaulieu97/proposa/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	hexColorPattern  = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	funcColorPattern = regexp.MustCompile(`^(?:rgb|rgba|hsl|hsla)\(\s*[0-9.%\s,/]+\)$`)
	namedColor       = regexp.MustCompile(`^[a-z]+$`)
	gradientPattern  = regexp.MustCompile(`^(?:repeating-)?(?:linear|radial|conic)-gradient\(.+\)$`)
	sshGitPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+:[a-zA-Z0-9._/~-]+$`)
)

// Instance returns the shared validator with the project's custom tags
// registered: csscolor, gradient, iso4217, locale and git_url.
func Instance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("csscolor", func(fl validator.FieldLevel) bool {
			return IsColor(fl.Field().String())
		})

		_ = v.RegisterValidation("gradient", func(fl validator.FieldLevel) bool {
			value := strings.TrimSpace(fl.Field().String())
			return value == "" || gradientPattern.MatchString(value)
		})

		_ = v.RegisterValidation("iso4217", func(fl validator.FieldLevel) bool {
			_, err := currency.ParseISO(fl.Field().String())
			return err == nil
		})

		_ = v.RegisterValidation("locale", func(fl validator.FieldLevel) bool {
			_, err := language.Parse(fl.Field().String())
			return err == nil
		})

		_ = v.RegisterValidation("git_url", func(fl validator.FieldLevel) bool {
			return IsGitURL(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// Struct validates s and converts the first failure into a ValidationError.
func Struct(s any) error {
	return Convert(Instance().Struct(s))
}

// Convert normalizes validator errors into proposa validation errors.
func Convert(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok && len(ves) > 0 {
		fe := ves[0]
		field := fieldName(fe)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, fe.Tag())
		return proposaerrors.NewValidationError(field, msg, err)
	}

	return proposaerrors.NewValidationError("", err.Error(), err)
}

func fieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, part := range parts {
		parts[i] = strings.ToLower(part)
	}
	return strings.Join(parts, ".")
}

// IsColor accepts hex, functional (rgb/hsl) and named CSS colors.
func IsColor(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	return hexColorPattern.MatchString(value) ||
		funcColorPattern.MatchString(value) ||
		namedColor.MatchString(value)
}

// IsGitURL accepts http(s) URLs, scp-style ssh remotes and absolute or
// explicitly relative local paths.
func IsGitURL(raw string) bool {
	if strings.TrimSpace(raw) == "" || strings.Contains(raw, "\x00") {
		return false
	}
	if parsed, err := url.Parse(raw); err == nil {
		switch strings.ToLower(parsed.Scheme) {
		case "http", "https", "ssh", "git":
			return parsed.Host != ""
		case "file":
			return parsed.Path != ""
		}
	}
	if sshGitPattern.MatchString(raw) {
		return true
	}
	return strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "./") || strings.HasPrefix(raw, "../")
}
