package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldMonth       = "month"
	FieldCategory    = "category"
	FieldAmount      = "amount"
	FieldStatement   = "statement"
	FieldRows        = "rows"
	FieldTxCount     = "transactions"
	FieldIgnored     = "ignored"
	FieldDropped     = "dropped"
	FieldSheetsRange = "sheets_range"
	FieldQueue       = "queue"
	FieldExchange    = "exchange"
	FieldPending     = "pending"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentExtract  = "extract"
	ComponentClassify = "classify"
	ComponentPipeline = "pipeline"
	ComponentSheets   = "sheets"
	ComponentStorage  = "storage"
	ComponentAMQP     = "amqp"
	ComponentWorker   = "worker"
)

// Operations defines standard operation names
const (
	OpExtract  = "extract"
	OpClassify = "classify"
	OpAppend   = "append"
	OpFlush    = "flush"
	OpValidate = "validate"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
