package handler

// Export for testing
type RequestResponse = requestResponse
type RequestListResponse = requestListResponse
type ToggleBlockResponse = toggleBlockResponse
type BulkActionResponse = bulkActionResponse

var NewRequestHandlerHelper = NewRequestHandler
var NewSweepHandlerHelper = NewSweepHandler

var WriteServiceError = writeServiceError
