package log

// Common field names for structured logging.
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldProfileID  = "profile_id"
	FieldKind       = "kind"
	FieldStrategy   = "strategy"
	FieldProvider   = "provider"
	FieldModel      = "model"
	FieldRecordID   = "record_id"
	FieldAmount     = "amount_cents"
	FieldSuccess    = "success"
)

// Components defines standard component names.
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentStorage  = "storage"
	ComponentLedger   = "ledger"
	ComponentAnalysis = "analysis"
	ComponentLLM      = "llm"
	ComponentAMQP     = "amqp"
	ComponentWorker   = "worker"
	ComponentExport   = "export"
)

// Operations defines standard operation names.
const (
	OpCreate    = "create"
	OpRead      = "read"
	OpDelete    = "delete"
	OpList      = "list"
	OpFetch     = "fetch"
	OpAggregate = "aggregate"
	OpGenerate  = "generate"
	OpProbe     = "probe"
	OpExport    = "export"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
