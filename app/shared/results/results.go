package results

// OperationResult separates domain outcomes from infrastructure errors.
// A service operation returns (result, err) where err is reserved for
// retryable infrastructure failures; business validation failures travel
// in Failure with a nil error.
type OperationResult struct {
	Success any
	Failure any
}

// SuccessResult wraps a success payload.
func SuccessResult(payload any) OperationResult {
	return OperationResult{Success: payload}
}

// FailureResult wraps a domain failure payload.
func FailureResult(payload any) OperationResult {
	return OperationResult{Failure: payload}
}

// HandlerResult pairs an outbound topic with its payload.
type HandlerResult struct {
	Topic    string
	Payload  any
	Metadata map[string]string
}

// MapToHandlerResults routes the result to the success or failure topic.
// Empty results produce no outbound messages.
func (r OperationResult) MapToHandlerResults(successTopic, failureTopic string) []HandlerResult {
	switch {
	case r.Success != nil:
		return []HandlerResult{{Topic: successTopic, Payload: r.Success}}
	case r.Failure != nil:
		return []HandlerResult{{Topic: failureTopic, Payload: r.Failure}}
	default:
		return nil
	}
}
