package utils

import (
	"log"
	"strings"
)

// LogEvent writes one line per domain event. Module names the subsystem
// (booking, payment, schedule, pricing, audit); keep message free of
// payload data such as contact details or document numbers.
func LogEvent(requestID, module, action, message string) {
	rid := strings.TrimSpace(requestID)
	if rid == "" {
		rid = "-"
	}
	log.Printf("event module=%s action=%s request_id=%s %s", module, action, rid, message)
}
