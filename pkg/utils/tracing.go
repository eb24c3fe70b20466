package utils

const DefaultServiceName = "waitlist-api"

// TracingEnabled reads OTEL_TRACES_ENABLED; tracing is off unless it parses as true.
func TracingEnabled() bool {
	return GetEnvBool("OTEL_TRACES_ENABLED", false)
}

// ServiceName names the tracer resource and the otelgin server spans.
func ServiceName() string {
	return GetEnvTrimmedOrDefault("OTEL_SERVICE_NAME", DefaultServiceName)
}
