package utils

import (
	"log"
	"strings"
)

// LogEvent emits one structured line per business event, tagged with the
// owning module and the request id when one is known. Keep messages short
// and free of customer data.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	if req == "" {
		req = "-"
	}
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, req, message)
}
