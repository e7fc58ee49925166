package logx

import (
	"regexp"
	"slices"
)

type SensitiveDataMaskerInterface interface {
	Mask(input []byte) []byte
}

// MaskFunc adapts a plain function to SensitiveDataMaskerInterface.
type MaskFunc func([]byte) []byte

func (f MaskFunc) Mask(input []byte) []byte {
	return f(input)
}

// NopMasker returns input unchanged.
func NopMasker() MaskFunc {
	return func(input []byte) []byte { return input }
}

const masked = "[MASKED]"

//nolint:gochecknoglobals
var (
	sensitiveHeaders = []string{
		"Authorization",
		"X-Vtex-Api-Appkey",
		"X-Vtex-Api-Apptoken",
	}
	sensitiveJSONFields = []string{
		"password",
		"appToken",
		"appKey",
		"botToken",
		"email",
	}
)

// SensitiveDataMasker hides credential headers of dumped HTTP messages and
// string values of credential JSON fields. Field names match case-insensitively.
type SensitiveDataMasker struct {
	patterns []*regexp.Regexp
}

// NewSensitiveDataMasker masks the built-in headers and fields plus extraJSONFields.
func NewSensitiveDataMasker(extraJSONFields ...string) SensitiveDataMasker {
	patterns := make([]*regexp.Regexp, 0, len(sensitiveHeaders)+len(sensitiveJSONFields)+len(extraJSONFields))

	for _, h := range sensitiveHeaders {
		patterns = append(patterns, regexp.MustCompile(`(?im)^(`+regexp.QuoteMeta(h)+`:[ \t]*)[^\r\n]+(\r?)$`))
	}

	for _, f := range slices.Concat(sensitiveJSONFields, extraJSONFields) {
		patterns = append(patterns, regexp.MustCompile(`("(?i:`+regexp.QuoteMeta(f)+`)":\s?")[^"]*(")`))
	}

	return SensitiveDataMasker{patterns: patterns}
}

func (s SensitiveDataMasker) Mask(input []byte) []byte {
	for _, pattern := range s.patterns {
		input = pattern.ReplaceAll(input, []byte("${1}"+masked+"${2}"))
	}

	return input
}
