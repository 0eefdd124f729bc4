package epp

import "time"

// ResultCode is an EPP result code (RFC 5730 section 3).
type ResultCode uint16

const (
	CommandCompletedSuccessfully              ResultCode = 1000
	CommandCompletedSuccessfullyActionPending ResultCode = 1001
	CommandCompletedSuccessfullyNoMessages    ResultCode = 1300
	CommandCompletedSuccessfullyAckToDequeue  ResultCode = 1301
	CommandCompletedSuccessfullyEndingSession ResultCode = 1500

	UnknownCommand                              ResultCode = 2000
	CommandSyntaxError                          ResultCode = 2001
	CommandUseError                             ResultCode = 2002
	RequiredParameterMissing                    ResultCode = 2003
	ParameterValueRangeError                    ResultCode = 2004
	ParameterValueSyntaxError                   ResultCode = 2005
	UnimplementedProtocolVersion                ResultCode = 2100
	UnimplementedCommand                        ResultCode = 2101
	UnimplementedOption                         ResultCode = 2102
	UnimplementedExtension                      ResultCode = 2103
	BillingFailure                              ResultCode = 2104
	ObjectIsNotEligibleForRenewal               ResultCode = 2105
	ObjectIsNotEligibleForTransfer              ResultCode = 2106
	AuthenticationError                         ResultCode = 2200
	AuthorizationError                          ResultCode = 2201
	InvalidAuthorizationInformation             ResultCode = 2202
	ObjectPendingTransfer                       ResultCode = 2300
	ObjectNotPendingTransfer                    ResultCode = 2301
	ObjectExists                                ResultCode = 2302
	ObjectDoesNotExist                          ResultCode = 2303
	ObjectStatusProhibitsOperation              ResultCode = 2304
	ObjectAssociationProhibitsOperation         ResultCode = 2305
	ParameterValuePolicyError                   ResultCode = 2306
	UnimplementedObjectService                  ResultCode = 2307
	DataManagementPolicyViolation               ResultCode = 2308
	CommandFailed                               ResultCode = 2400
	CommandFailedServerClosingConnection        ResultCode = 2500
	AuthenticationErrorServerClosingConnection  ResultCode = 2501
	SessionLimitExceededServerClosingConnection ResultCode = 2502
)

var resultCodeText = map[ResultCode]string{
	CommandCompletedSuccessfully:                "Command completed successfully",
	CommandCompletedSuccessfullyActionPending:   "Command completed successfully; action pending",
	CommandCompletedSuccessfullyNoMessages:      "Command completed successfully; no messages",
	CommandCompletedSuccessfullyAckToDequeue:    "Command completed successfully; ack to dequeue",
	CommandCompletedSuccessfullyEndingSession:   "Command completed successfully; ending session",
	UnknownCommand:                              "Unknown command",
	CommandSyntaxError:                          "Command syntax error",
	CommandUseError:                             "Command use error",
	RequiredParameterMissing:                    "Required parameter missing",
	ParameterValueRangeError:                    "Parameter value range error",
	ParameterValueSyntaxError:                   "Parameter value syntax error",
	UnimplementedProtocolVersion:                "Unimplemented protocol version",
	UnimplementedCommand:                        "Unimplemented command",
	UnimplementedOption:                         "Unimplemented option",
	UnimplementedExtension:                      "Unimplemented extension",
	BillingFailure:                              "Billing failure",
	ObjectIsNotEligibleForRenewal:               "Object is not eligible for renewal",
	ObjectIsNotEligibleForTransfer:              "Object is not eligible for transfer",
	AuthenticationError:                         "Authentication error",
	AuthorizationError:                          "Authorization error",
	InvalidAuthorizationInformation:             "Invalid authorization information",
	ObjectPendingTransfer:                       "Object pending transfer",
	ObjectNotPendingTransfer:                    "Object not pending transfer",
	ObjectExists:                                "Object exists",
	ObjectDoesNotExist:                          "Object does not exist",
	ObjectStatusProhibitsOperation:              "Object status prohibits operation",
	ObjectAssociationProhibitsOperation:         "Object association prohibits operation",
	ParameterValuePolicyError:                   "Parameter value policy error",
	UnimplementedObjectService:                  "Unimplemented object service",
	DataManagementPolicyViolation:               "Data management policy violation",
	CommandFailed:                               "Command failed",
	CommandFailedServerClosingConnection:        "Command failed; server closing connection",
	AuthenticationErrorServerClosingConnection:  "Authentication error; server closing connection",
	SessionLimitExceededServerClosingConnection: "Session limit exceeded; server closing connection",
}

func (c ResultCode) String() string {
	if s, ok := resultCodeText[c]; ok {
		return s
	}
	return "Unknown result code"
}

// IsSuccess reports a 1xxx code.
func (c ResultCode) IsSuccess() bool {
	return c >= 1000 && c < 2000
}

// ClosesSession reports codes after which the server drops the connection.
func (c ResultCode) ClosesSession() bool {
	return c == CommandCompletedSuccessfullyEndingSession || (c >= 2500 && c < 2600)
}

// Result is the first <result> of a response.
type Result struct {
	Code    ResultCode
	Message string
}

// TrIDs is the client/server transaction id pair.
type TrIDs struct {
	Client string
	Server string
}

// MessageQueue is the optional <msgQ> element.
type MessageQueue struct {
	Count   int
	ID      string
	Date    time.Time
	Message string
}

// Response is one decoded <response>. ResData and Extension are nil when the
// document has no such section.
type Response[T, R any] struct {
	Result    Result
	MsgQueue  *MessageQueue
	ResData   *T
	Extension *R
	TrIDs     TrIDs
}
