package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldYear        = "year"
	FieldMonth       = "month"
	FieldStartDate   = "start_date"
	FieldEndDate     = "end_date"
	FieldExpenseID   = "expense_id"
	FieldFundID      = "fund_id"
	FieldPeriodID    = "period_id"
	FieldAmount      = "amount"
	FieldExecutor    = "executor"
	FieldCategory    = "category"
	FieldVoucher     = "voucher_number"
	FieldGroupBy     = "group_by"
	FieldRowCount    = "row_count"
	FieldSheetRef    = "sheet_ref"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentExpense = "expense"
	ComponentFund    = "fund"
	ComponentPeriod  = "period"
	ComponentCatalog = "catalog"
	ComponentReport  = "report"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentSheets  = "sheets"
	ComponentExport  = "export"
)
