package constants

const MessageErrorFormat = "The '%s' format is invalid"

const (
	ErrCodeInvalidRequestBody = "INVALID_REQUEST_BODY"
	ErrCodeValidationFailed   = "VALIDATION_FAILED"
	ErrCodeCourseNotFound     = "COURSE_NOT_FOUND"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodePaymentNotFound    = "PAYMENT_NOT_FOUND"
	ErrCodeGatewayUnavailable = "GATEWAY_UNAVAILABLE"
	ErrCodeGatewayRejected    = "GATEWAY_REJECTED"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidSignature   = "INVALID_SIGNATURE"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

const (
	ErrMsgInvalidRequestBody = "failed to parse request body"
	ErrMsgValidationFailed   = "request validation failed"
	ErrMsgCourseNotFound     = "course not found"
	ErrMsgUserNotFound       = "user not found"
	ErrMsgPaymentNotFound    = "payment not found"
	ErrMsgGatewayUnavailable = "payment gateway unavailable, try again later"
	ErrMsgGatewayRejected    = "payment gateway rejected the request"
	ErrMsgUnauthorized       = "missing or invalid credentials"
	ErrMsgInvalidSignature   = "webhook signature verification failed"
	ErrMsgInternalError      = "Internal server error"
)

var errorMessages = map[string]string{
	ErrCodeInvalidRequestBody: ErrMsgInvalidRequestBody,
	ErrCodeValidationFailed:   ErrMsgValidationFailed,
	ErrCodeCourseNotFound:     ErrMsgCourseNotFound,
	ErrCodeUserNotFound:       ErrMsgUserNotFound,
	ErrCodePaymentNotFound:    ErrMsgPaymentNotFound,
	ErrCodeGatewayUnavailable: ErrMsgGatewayUnavailable,
	ErrCodeGatewayRejected:    ErrMsgGatewayRejected,
	ErrCodeUnauthorized:       ErrMsgUnauthorized,
	ErrCodeInvalidSignature:   ErrMsgInvalidSignature,
	ErrCodeInternalError:      ErrMsgInternalError,
}

func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return ErrMsgInternalError
}

func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeInvalidRequestBody:
		return 400
	case ErrCodeValidationFailed:
		return 422
	case ErrCodeCourseNotFound, ErrCodeUserNotFound, ErrCodePaymentNotFound:
		return 404
	case ErrCodeUnauthorized, ErrCodeInvalidSignature:
		return 401
	case ErrCodeGatewayRejected:
		return 502
	case ErrCodeGatewayUnavailable:
		return 503
	default:
		return 500
	}
}
