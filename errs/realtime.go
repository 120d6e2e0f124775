package errs

import "strconv"

// RealtimeCode is a protocol error code carried by an "error" control message
// on the market-data socket. The numeric wire value is authoritative; the text
// returned by String follows the vendor documentation for that number.
type RealtimeCode int

const (
	RealtimeInvalidSyntax            RealtimeCode = 400
	RealtimeNotAuthenticated         RealtimeCode = 401
	RealtimeAuthFailed               RealtimeCode = 402
	RealtimeAlreadyAuthenticated     RealtimeCode = 403
	RealtimeAuthTimeout              RealtimeCode = 404
	RealtimeSymbolLimitExceeded      RealtimeCode = 405
	RealtimeConnectionLimitExceeded  RealtimeCode = 406
	RealtimeSlowClient               RealtimeCode = 407
	RealtimeDataV2NotEnabled         RealtimeCode = 408
	RealtimeInsufficientSubscription RealtimeCode = 409
	RealtimeInternalError            RealtimeCode = 500
)

var realtimeText = map[RealtimeCode]string{
	RealtimeInvalidSyntax:            "invalid syntax",
	RealtimeNotAuthenticated:         "not authenticated",
	RealtimeAuthFailed:               "auth failed",
	RealtimeAlreadyAuthenticated:     "already authenticated",
	RealtimeAuthTimeout:              "auth timeout",
	RealtimeSymbolLimitExceeded:      "symbol limit exceeded",
	RealtimeConnectionLimitExceeded:  "connection limit exceeded",
	RealtimeSlowClient:               "slow client",
	RealtimeDataV2NotEnabled:         "v2 not enabled",
	RealtimeInsufficientSubscription: "insufficient subscription",
	RealtimeInternalError:            "internal error",
}

func (c RealtimeCode) String() string {
	if txt, ok := realtimeText[c]; ok {
		return txt
	}
	return "realtime error " + strconv.Itoa(int(c))
}

// Realtime converts an "error" control message into a vendor error envelope.
// msg is the message text received on the wire; the code decides the category.
func Realtime(code RealtimeCode, msg string) *E {
	return New(FamilyStream, CodeVendor,
		WithMessage(code.String()),
		WithRawCode(strconv.Itoa(int(code))),
		WithRawMessage(msg))
}
