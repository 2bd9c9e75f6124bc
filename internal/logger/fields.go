package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldSource is the provenance label of a listing or the name of a discovery source.
	FieldSource = "source"
	// FieldURL is the fetched or audited address.
	FieldURL = "url"
	// FieldCategory is the active feed category.
	FieldCategory = "category"
	// FieldQuery is the search query sent to a feed.
	FieldQuery = "query"
	// FieldCompany is the company under investigation.
	FieldCompany = "company"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to logger, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// SearchFields returns the fields that describe a single search request.
func SearchFields(source, query, category string) []zap.Field {
	return StringFields(
		StringField{Key: FieldSource, Value: source},
		StringField{Key: FieldQuery, Value: query},
		StringField{Key: FieldCategory, Value: category},
	)
}

// WithCompany scopes logger to a company investigation.
func WithCompany(logger *zap.Logger, company string) *zap.Logger {
	return WithFields(logger, StringFields(StringField{Key: FieldCompany, Value: company})...)
}
