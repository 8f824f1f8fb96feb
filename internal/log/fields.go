package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldPath      = "path"
	FieldBackend   = "backend"
	FieldDate      = "date"
	FieldEmotion   = "emotion"
	FieldYear      = "year"
	FieldMonth     = "month"
	FieldCount     = "count"
	FieldCacheKey  = "cache_key"
	FieldCity      = "city"
	FieldCountry   = "country"
	FieldMessageID = "message_id"
	FieldExchange  = "exchange"
	FieldQueue     = "queue"
	FieldRowRef    = "row_ref"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentCatalog = "catalog"
	ComponentStorage = "storage"
	ComponentJournal = "journal"
	ComponentWeather = "weather"
	ComponentMenu    = "menu"
	ComponentAMQP    = "amqp"
	ComponentSheets  = "sheets"
	ComponentWorker  = "worker"
	ComponentBackend = "backend"
)

// Operations defines standard operation names
const (
	OpLoad    = "load"
	OpUpsert  = "upsert"
	OpReset   = "reset"
	OpFetch   = "fetch"
	OpPublish = "publish"
	OpExport  = "export"
	OpMigrate = "migrate"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithRecord adds the identifying fields of a journal record.
func (f LogFields) WithRecord(date, emotion string) LogFields {
	f[FieldDate] = date
	f[FieldEmotion] = emotion
	return f
}

// WithLocation adds weather location fields.
func (f LogFields) WithLocation(city, country string) LogFields {
	f[FieldCity] = city
	f[FieldCountry] = country
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
