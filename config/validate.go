package config

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

//nolint:gochecknoglobals // validator caches struct metadata; one instance per process.
var validate = newValidator()

// fieldNamePattern extracts the quoted field name mapstructure puts in its
// error messages, e.g. "'scraper.reddit' expected a map, got 'string'".
var fieldNamePattern = regexp.MustCompile(`'([^']*)'`)

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	err := v.RegisterValidation("pathlike", isPathLike)
	if err != nil {
		panic(fmt.Sprintf("config: register pathlike validation: %v", err))
	}

	return v
}

// isPathLike accepts any string the OS could use as a path; empty is allowed.
func isPathLike(fl validator.FieldLevel) bool {
	return !strings.ContainsRune(fl.Field().String(), 0)
}

// Validate decodes tree into an AppConfig, rejecting unknown keys at any
// depth, values of the wrong type and missing required fields.
//
// A string is accepted where a list of strings is declared: it is split on
// commas and each element trimmed, so "news" becomes ["news"] and
// "news, python" becomes ["news", "python"]. No other coercion happens.
func Validate(tree Tree) (*AppConfig, error) {
	var (
		cfg      AppConfig
		metadata mapstructure.Metadata
	)

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: stringToListHook,
		Metadata:   &metadata,
		Result:     &cfg,
		MatchName: func(mapKey, fieldName string) bool {
			return mapKey == fieldName
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create config decoder: %w", err)
	}

	err = decoder.Decode(tree)
	if err != nil {
		return nil, decodeError(err)
	}

	if len(metadata.Unused) > 0 {
		slices.Sort(metadata.Unused)

		return nil, &ValidationError{Path: metadata.Unused[0], Reason: "unknown field"}
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate applies the field rules declared in the struct tags.
func (c *AppConfig) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Reason: err.Error(), Err: err}
	}

	fieldErr := fieldErrs[0]

	return &ValidationError{
		Path:   fieldPath(fieldErr.Namespace()),
		Reason: describeRule(fieldErr),
		Err:    err,
	}
}

func stringToListHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf([]string(nil)) {
		return data, nil
	}

	raw, _ := data.(string)
	if strings.TrimSpace(raw) == "" {
		return []string{}, nil
	}

	parts := strings.Split(raw, ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}

	return parts, nil
}

// decodeError converts a mapstructure failure into a *ValidationError
// pointing at the first offending field.
func decodeError(err error) *ValidationError {
	message := firstCause(err).Error()

	match := fieldNamePattern.FindStringSubmatch(message)
	if match == nil {
		return &ValidationError{Reason: message, Err: err}
	}

	reason := message
	if strings.HasPrefix(message, match[0]) {
		reason = strings.TrimLeft(strings.TrimPrefix(message, match[0]), ": ")
	}

	return &ValidationError{Path: match[1], Reason: reason, Err: err}
}

// firstCause descends through wrapped and joined errors and returns the
// first leaf.
func firstCause(err error) error {
	for {
		switch wrapped := err.(type) {
		case interface{ Unwrap() []error }:
			causes := wrapped.Unwrap()
			if len(causes) == 0 {
				return err
			}

			err = causes[0]
		case interface{ Unwrap() error }:
			cause := wrapped.Unwrap()
			if cause == nil {
				return err
			}

			err = cause
		default:
			return err
		}
	}
}

// fieldPath drops the root struct name from a validator namespace:
// "AppConfig.scraper.reddit.subreddits" -> "scraper.reddit.subreddits".
func fieldPath(namespace string) string {
	_, path, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}

	return path
}

func describeRule(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		if fieldErr.Kind() == reflect.String {
			return "must not be empty"
		}

		return "required field is missing"
	case "pathlike":
		return "must be a filesystem path"
	default:
		return fmt.Sprintf("failed %q rule", fieldErr.Tag())
	}
}
