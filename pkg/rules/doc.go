// Package rules provides the declarative request/response rule table.
//
// A rule table is a document keyed by message category name, where each
// category holds an ordered list of rules. Vendor-defined categories add two
// key levels, vendor name and sub-type code:
//
//	{
//	  "MctpControl": [
//	    {"request": [1], "response": [2, 3], "processing-delay": 50}
//	  ],
//	  "VDPCI": {
//	    "Intel": {
//	      "5": [ {"request": [...], "response": [...]} ]
//	    }
//	  }
//	}
//
// The reference document format is JSON; the loader parses with YAML, of
// which JSON is a subset, so either works. Rule order within a list is
// significant: the first exact match wins.
//
// A rule's processing delay selects the reply policy: 0 replies immediately,
// -1 suppresses the reply, and a positive value defers the reply by that
// many milliseconds.
package rules
