package logg

const (
	Layer     = "layer"
	Operation = "operation"
	URL       = "url"
	Hint      = "hint"
	Locator   = "locator"
	Strategy  = "strategy"
	Attribute = "attribute"
	RequestID = "request_id"
)
