package event

// EventSchemaVersion is the current event schema version
const EventSchemaVersion = "1.0"
