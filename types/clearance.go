package types

// Clearance levels accepted on personnel and vendor records.
const (
	ClearanceNone         = "NONE"
	ClearanceConfidential = "CONFIDENTIAL"
	ClearanceSecret       = "SECRET"
	ClearanceTopSecret    = "TOP_SECRET"
)
