package rules

import (
	"bytes"

	"github.com/mctp-emulator/mctpemu-go/pkg/log"
)

// Match scans entries in table order and returns the first rule whose
// expected request, headerPrefix followed by the rule's request body,
// equals payload byte-for-byte. There are no wildcards.
//
// Malformed entries are skipped with a warning; a bad rule never aborts
// the scan.
func Match(entries []Entry, headerPrefix, payload []byte, logger log.Logger) (Rule, bool) {
	logger = log.OrNoop(logger)

	for _, entry := range entries {
		if entry.Err != nil {
			logger.Log(log.Warn(log.StageMatch, "skipping malformed rule", entry.Err))
			continue
		}

		if len(headerPrefix)+len(entry.Rule.Request) != len(payload) {
			continue
		}
		if !bytes.HasPrefix(payload, headerPrefix) {
			continue
		}
		if bytes.Equal(payload[len(headerPrefix):], entry.Rule.Request) {
			return entry.Rule, true
		}
	}

	return Rule{}, false
}
